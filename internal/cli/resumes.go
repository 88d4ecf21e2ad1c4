package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"careerhub/internal/api"
	"careerhub/internal/token"
)

func (a *App) listResumes(ctx context.Context) {
	if !a.requireRole(token.RoleCandidate) {
		return
	}
	resumes, err := a.api.MyResumes(ctx)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to load resumes"))
		return
	}
	a.jobsMu.Lock()
	a.resumes = resumes
	a.jobsMu.Unlock()

	if len(resumes) == 0 {
		fmt.Fprintln(a.out, "No resumes uploaded.")
		return
	}
	for i, r := range resumes {
		fmt.Fprintf(a.out, "%3d. %s %s\n", i+1, r.FileName,
			dimStyle.Render(r.CreatedAt.Format("2006-01-02")))
	}
}

func (a *App) uploadResume(ctx context.Context, args []string) {
	if !a.requireRole(token.RoleCandidate) {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: upload <path>")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	defer f.Close()

	resume, err := a.api.UploadResume(ctx, filepath.Base(args[0]), f)
	if err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to upload resume"))
		return
	}
	a.toasts.Success(fmt.Sprintf("Uploaded %s", resume.FileName))
}

// resumeAt resolves a 1-based index from the last 'resumes' listing.
func (a *App) resumeAt(arg string) (*api.Resume, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, false
	}
	a.jobsMu.Lock()
	defer a.jobsMu.Unlock()
	if n < 1 || n > len(a.resumes) {
		return nil, false
	}
	r := a.resumes[n-1]
	return &r, true
}

func (a *App) deleteResume(ctx context.Context, args []string) {
	if !a.requireRole(token.RoleCandidate) {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: rmresume <n>")
		return
	}
	resume, ok := a.resumeAt(args[0])
	if !ok {
		fmt.Fprintln(a.out, "No such resume; run 'resumes' first.")
		return
	}
	if err := a.api.DeleteResume(ctx, resume.ID); err != nil {
		a.toasts.Error(api.FailureMessage(err, "Failed to delete resume"))
		return
	}
	a.toasts.Success(fmt.Sprintf("Deleted %s", resume.FileName))
}
