package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"careerhub/internal/token"
)

// prompt renders the REPL prompt from the current session and unread count,
// e.g. "careerhub (alice@example.com candidate) [2]> ".
func (a *App) prompt() string {
	s := "careerhub "
	snap := a.session.Snapshot()
	if snap.Authenticated {
		who := snap.Identity.Email
		if who == "" {
			who = snap.Identity.SubjectID
		}
		s += fmt.Sprintf("(%s %s) ", who, snap.Identity.Role)
		if unread := a.notifications.Unread(); unread > 0 {
			s += fmt.Sprintf("[%d] ", unread)
		}
	}
	return s + "> "
}

func (a *App) root(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to CareerHub (type 'help' for commands)")

	for {
		fmt.Fprint(a.out, a.prompt())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(a.out, "Bye!")
				return nil
			}
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "login":
			a.login(ctx)
		case "register":
			a.register(ctx)
		case "logout":
			a.session.Logout(ctx)
			fmt.Fprintln(a.out, "Logged out.")
		case "whoami":
			a.whoami()
		case "jobs":
			a.listJobs(ctx, args)
		case "job":
			a.showJob(ctx, args)
		case "post":
			a.postJob(ctx)
		case "rmjob":
			a.deleteJob(ctx, args)
		case "apply":
			a.apply(ctx, args)
		case "applications":
			a.myApplications(ctx, args)
		case "application":
			a.showApplication(ctx, args)
		case "review":
			a.reviewApplications(ctx)
		case "status":
			a.updateStatus(ctx, args)
		case "resumes":
			a.listResumes(ctx)
		case "upload":
			a.uploadResume(ctx, args)
		case "rmresume":
			a.deleteResume(ctx, args)
		case "notifications":
			a.listNotifications(ctx)
		case "readall":
			a.markAllRead(ctx)
		case "admin":
			a.admin(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func (a *App) help() {
	if !a.session.Snapshot().Authenticated {
		fmt.Fprintln(a.out, "Available commands: login, register, jobs [search], job <n>, help, exit")
		return
	}
	snap := a.session.Snapshot()
	switch {
	case snap.Identity.IsAdmin:
		fmt.Fprintln(a.out, "Available commands: admin users|reports|jobs, admin rmuser <n>, admin rmjob <n>, jobs, logout, whoami, exit")
	case snap.Identity.Role == token.RoleEmployer:
		fmt.Fprintln(a.out, "Available commands: post, rmjob <n>, review, application <n>, status <n> <status>, jobs [search], job <n>, notifications, readall, logout, whoami, exit")
	default:
		fmt.Fprintln(a.out, "Available commands: jobs [search], job <n>, apply <n>, applications, application <n>, resumes, upload <path>, rmresume <n>, notifications, readall, logout, whoami, exit")
	}
}

func (a *App) whoami() {
	snap := a.session.Snapshot()
	if !snap.Authenticated {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}
	fmt.Fprintf(a.out, "%s (%s)", snap.Identity.Email, snap.Identity.Role)
	if snap.Identity.IsAdmin {
		fmt.Fprint(a.out, " [admin]")
	}
	fmt.Fprintf(a.out, "\nrealtime: %s, unread: %d\n", a.channel.State(), a.notifications.Unread())
}

// requireAuth gates commands that need a session.
func (a *App) requireAuth() bool {
	if !a.session.Snapshot().Authenticated {
		fmt.Fprintln(a.out, "Please log in first.")
		return false
	}
	return true
}

// requireRole gates commands to one role.
func (a *App) requireRole(role token.Role) bool {
	if !a.requireAuth() {
		return false
	}
	if a.session.Snapshot().Identity.Role != role {
		fmt.Fprintf(a.out, "Only available to %ss.\n", role)
		return false
	}
	return true
}
