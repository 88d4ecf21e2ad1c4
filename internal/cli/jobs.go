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

// refreshJobs fetches the job list and installs the result only if no newer
// fetch was started in the meantime, so a slow response never clobbers a
// fresher one.
func (a *App) refreshJobs(ctx context.Context, filter api.JobFilter) ([]api.Job, error) {
	gen := a.jobsGen.Add(1)
	jobs, err := a.api.ListJobs(ctx, filter)
	if err != nil {
		return nil, err
	}
	a.jobsMu.Lock()
	defer a.jobsMu.Unlock()
	if a.jobsGen.Load() != gen {
		return a.jobs, nil
	}
	a.jobs = jobs
	return jobs, nil
}

func (a *App) listJobs(ctx context.Context, args []string) {
	filter := api.JobFilter{Search: strings.Join(args, " ")}
	jobs, err := a.refreshJobs(ctx, filter)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load jobs"))
		return
	}
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs found.")
		return
	}
	for i, job := range jobs {
		renderJobLine(a.out, i, job)
	}
}

// jobAt resolves a 1-based index from the last listing.
func (a *App) jobAt(arg string) (*api.Job, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, false
	}
	a.jobsMu.Lock()
	defer a.jobsMu.Unlock()
	if n < 1 || n > len(a.jobs) {
		return nil, false
	}
	job := a.jobs[n-1]
	return &job, true
}

func (a *App) showJob(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: job <n>")
		return
	}
	cached, ok := a.jobAt(args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such job; run 'jobs' first.")
		return
	}
	job, err := a.api.GetJob(ctx, cached.ID)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load job"))
		return
	}
	fmt.Fprintf(a.out, "%s — %s\n%s, %s\nSalary: %s\n\n%s\n",
		job.Title, job.CompanyName, job.Location, job.JobType,
		viewmodel.FormatSalary(job.SalaryRange), job.Description)
}

func (a *App) postJob(ctx context.Context) {
	if !a.requireRole(token.RoleEmployer) {
		return
	}
	var job api.Job
	var err error
	if job.Title, err = promptLine(a.reader, a.out, "Title"); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if job.Location, err = promptLine(a.reader, a.out, "Location"); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if job.JobType, err = promptLine(a.reader, a.out, "Type (full-time/part-time/contract/internship)"); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if job.Description, err = promptLine(a.reader, a.out, "Description"); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	min, max, err := a.promptSalary()
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if min > 0 || max > 0 {
		job.SalaryRange = &api.SalaryRange{Min: min, Max: max}
	}

	created, err := a.api.CreateJob(ctx, job)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to post job"))
		return
	}
	a.toasts.Success(fmt.Sprintf("Posted %q", created.Title))
}

func (a *App) promptSalary() (min, max int, err error) {
	line, err := promptLine(a.reader, a.out, "Salary min [blank to skip]")
	if err != nil {
		return 0, 0, err
	}
	if line != "" {
		if min, err = strconv.Atoi(line); err != nil {
			return 0, 0, fmt.Errorf("minimum salary: %w", err)
		}
	}
	line, err = promptLine(a.reader, a.out, "Salary max [blank to skip]")
	if err != nil {
		return 0, 0, err
	}
	if line != "" {
		if max, err = strconv.Atoi(line); err != nil {
			return 0, 0, fmt.Errorf("maximum salary: %w", err)
		}
	}
	return min, max, nil
}

func (a *App) deleteJob(ctx context.Context, args []string) {
	if !a.requireRole(token.RoleEmployer) {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: rmjob <n>")
		return
	}
	job, ok := a.jobAt(args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such job; run 'jobs' first.")
		return
	}
	if err := a.api.DeleteJob(ctx, job.ID); err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to delete job"))
		return
	}
	a.toasts.Success(fmt.Sprintf("Deleted %q", job.Title))
}
