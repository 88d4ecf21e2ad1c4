package cli

import (
	"context"
	"fmt"
	"strconv"

	"careerhub/internal/api"
)

func (a *App) requireAdmin() bool {
	if !a.requireAuth() {
		return false
	}
	if !a.session.Snapshot().Identity.IsAdmin {
		fmt.Fprintln(a.out, "Admin access required.")
		return false
	}
	return true
}

func (a *App) admin(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: admin users|reports|jobs|rmuser <n>|rmjob <n>")
		return
	}
	switch args[0] {
	case "users":
		a.listAdminUsers(ctx)
	case "reports":
		a.listAdminReports(ctx)
	case "jobs":
		a.listAdminJobs(ctx)
	case "rmuser":
		a.adminDeleteUser(ctx, args[1:])
	case "rmjob":
		a.adminDeleteJob(ctx, args[1:])
	default:
		fmt.Fprintln(a.out, "Unknown admin command:", args[0])
	}
}

func (a *App) listAdminUsers(ctx context.Context) {
	users, err := a.api.AdminUsers(ctx)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load users"))
		return
	}
	a.jobsMu.Lock()
	a.adminUsers = users
	a.jobsMu.Unlock()

	for i, u := range users {
		fmt.Fprintf(a.out, "%3d. %s <%s> (%s) %s\n", i+1, u.Name, u.Email, u.Type,
			dimStyle.Render(u.CreatedAt.Format("2006-01-02")))
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users.")
	}
}

func (a *App) listAdminReports(ctx context.Context) {
	reports, err := a.api.AdminReports(ctx)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load reports"))
		return
	}
	if len(reports) == 0 {
		fmt.Fprintln(a.out, "No reports.")
		return
	}
	for i, r := range reports {
		fmt.Fprintf(a.out, "%3d. [%s %s] %s %s\n", i+1, r.TargetType, r.TargetID,
			r.Reason, dimStyle.Render(r.CreatedAt.Format("2006-01-02")))
	}
}

func (a *App) listAdminJobs(ctx context.Context) {
	jobs, err := a.api.AdminJobs(ctx)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load jobs"))
		return
	}
	a.jobsMu.Lock()
	a.adminJobs = jobs
	a.jobsMu.Unlock()

	for i, job := range jobs {
		renderJobLine(a.out, i, job)
	}
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs.")
	}
}

func (a *App) adminDeleteUser(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: admin rmuser <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	a.jobsMu.Lock()
	ok := err == nil && n >= 1 && n <= len(a.adminUsers)
	var user api.AdminUser
	if ok {
		user = a.adminUsers[n-1]
	}
	a.jobsMu.Unlock()
	if !ok {
		fmt.Fprintln(a.out, "No such user; run 'admin users' first.")
		return
	}
	if err := a.api.AdminDeleteUser(ctx, user.ID, user.Type); err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to delete user"))
		return
	}
	a.toasts.Success(fmt.Sprintf("Deleted %s", user.Email))
}

func (a *App) adminDeleteJob(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: admin rmjob <n>")
		return
	}
	n, err := strconv.Atoi(args[0])
	a.jobsMu.Lock()
	ok := err == nil && n >= 1 && n <= len(a.adminJobs)
	var job api.Job
	if ok {
		job = a.adminJobs[n-1]
	}
	a.jobsMu.Unlock()
	if !ok {
		fmt.Fprintln(a.out, "No such job; run 'admin jobs' first.")
		return
	}
	if err := a.api.AdminDeleteJob(ctx, job.ID); err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to delete job"))
		return
	}
	a.toasts.Success(fmt.Sprintf("Deleted %q", job.Title))
}
