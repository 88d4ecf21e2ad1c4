package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"careerhub/internal/api"
	"careerhub/internal/token"
	"careerhub/internal/viewmodel"
)

func (a *App) apply(ctx context.Context, args []string) {
	if !a.requireRole(token.RoleCandidate) {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: apply <n>")
		return
	}
	job, ok := a.jobAt(args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such job; run 'jobs' first.")
		return
	}

	resumes, err := a.api.MyResumes(ctx)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load resumes"))
		return
	}
	if len(resumes) == 0 {
		fmt.Fprintln(a.out, "Upload a resume first ('upload <path>').")
		return
	}
	for i, r := range resumes {
		fmt.Fprintf(a.out, "%3d. %s\n", i+1, r.FileName)
	}
	choice, err := promptLine(a.reader, a.out, "Resume to attach [1]")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	idx := 1
	if choice != "" {
		if idx, err = strconv.Atoi(choice); err != nil || idx < 1 || idx > len(resumes) {
			fmt.Fprintln(a.out, "No such resume.")
			return
		}
	}
	cover, err := promptLine(a.reader, a.out, "Cover letter [blank to skip]")
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}

	_, err = a.api.Apply(ctx, api.ApplyRequest{
		JobID:       job.ID,
		ResumeID:    resumes[idx-1].ID,
		CoverLetter: cover,
	})
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to apply"))
		return
	}
	a.toasts.Success(fmt.Sprintf("Applied to %q", job.Title))
}

func (a *App) myApplications(ctx context.Context, args []string) {
	if !a.requireRole(token.RoleCandidate) {
		return
	}
	apps, err := a.api.MyApplications(ctx)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load applications"))
		return
	}

	status := viewmodel.StatusFilterAll
	if len(args) > 0 {
		status = api.Status(args[0])
		if status != viewmodel.StatusFilterAll && !validStatuses[status] {
			fmt.Fprintln(a.out, "Unknown status:", args[0])
			return
		}
	}
	apps = viewmodel.FilterByStatus(apps, status)

	// The cache holds what was rendered so 'application <n>' indexes match.
	a.jobsMu.Lock()
	a.apps = apps
	a.jobsMu.Unlock()

	if len(apps) == 0 {
		fmt.Fprintln(a.out, "No applications yet.")
		return
	}
	for i, app := range apps {
		renderApplicationLine(a.out, i, app)
	}
}

// appAt resolves a 1-based index from the last 'applications' listing.
func (a *App) appAt(arg string) (*api.Application, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, false
	}
	a.jobsMu.Lock()
	defer a.jobsMu.Unlock()
	if n < 1 || n > len(a.apps) {
		return nil, false
	}
	app := a.apps[n-1]
	return &app, true
}

// showApplication renders one application in full: the candidate's own via
// 'applications', or a received one via 'review' for employers.
func (a *App) showApplication(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: application <n>")
		return
	}

	var (
		cached *api.Application
		ok     bool
		fetch  func(context.Context, string) (*api.Application, error)
	)
	if a.session.Snapshot().Identity.Role == token.RoleEmployer {
		cached, ok = a.reviewAt(args[0])
		fetch = a.api.EmployerApplication
		if !ok {
			fmt.Fprintln(a.out, "No such application; run 'review' first.")
			return
		}
	} else {
		cached, ok = a.appAt(args[0])
		fetch = a.api.MyApplication
		if !ok {
			fmt.Fprintln(a.out, "No such application; run 'applications' first.")
			return
		}
	}

	app, err := fetch(ctx, cached.ID)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load application"))
		return
	}
	renderApplicationLine(a.out, 0, *app)
	if app.Resume != nil {
		fmt.Fprintf(a.out, "Resume: %s\n", app.Resume.FileName)
	}
	if app.CoverLetter != "" {
		fmt.Fprintf(a.out, "Cover letter:\n%s\n", app.CoverLetter)
	}
}

func (a *App) reviewApplications(ctx context.Context) {
	if !a.requireRole(token.RoleEmployer) {
		return
	}
	apps, err := a.api.EmployerApplications(ctx)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load applications"))
		return
	}
	a.jobsMu.Lock()
	a.review = apps
	a.jobsMu.Unlock()

	if len(apps) == 0 {
		fmt.Fprintln(a.out, "No applications to review.")
		return
	}
	for i, app := range apps {
		renderApplicationLine(a.out, i, app)
	}

	counts := viewmodel.CountByStatus(apps)
	summary := make([]string, 0, len(counts))
	for _, s := range []api.Status{api.StatusApplied, api.StatusReviewed, api.StatusShortlisted, api.StatusAccepted, api.StatusRejected} {
		if counts[s] > 0 {
			summary = append(summary, fmt.Sprintf("%s %d", s, counts[s]))
		}
	}
	fmt.Fprintln(a.out, dimStyle.Render(strings.Join(summary, ", ")))
}

// reviewAt resolves a 1-based index from the last 'review' listing.
func (a *App) reviewAt(arg string) (*api.Application, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, false
	}
	a.jobsMu.Lock()
	defer a.jobsMu.Unlock()
	if n < 1 || n > len(a.review) {
		return nil, false
	}
	app := a.review[n-1]
	return &app, true
}

var validStatuses = map[api.Status]bool{
	api.StatusApplied:     true,
	api.StatusReviewed:    true,
	api.StatusShortlisted: true,
	api.StatusAccepted:    true,
	api.StatusRejected:    true,
}

// updateStatus sets an application's status server-side; the rendered
// status is whatever the server returns, never the requested value.
func (a *App) updateStatus(ctx context.Context, args []string) {
	if !a.requireRole(token.RoleEmployer) {
		return
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: status <n> <applied|reviewed|shortlisted|accepted|rejected>")
		return
	}
	app, ok := a.reviewAt(args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such application; run 'review' first.")
		return
	}
	status := api.Status(args[1])
	if !validStatuses[status] {
		fmt.Fprintln(a.out, "Unknown status:", args[1])
		return
	}

	updated, err := a.api.UpdateApplicationStatus(ctx, app.ID, status)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to update status"))
		return
	}

	a.jobsMu.Lock()
	for i := range a.review {
		if a.review[i].ID == updated.ID {
			a.review[i].Status = updated.Status
		}
	}
	a.jobsMu.Unlock()
	a.toasts.Success(fmt.Sprintf("Status set to %s", updated.Status))
}
