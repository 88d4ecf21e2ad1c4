package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"careerhub/internal/api"
	"careerhub/internal/toast"
	"careerhub/internal/viewmodel"
)

var severityStyles = map[toast.Severity]lipgloss.Style{
	toast.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")),
	toast.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	toast.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#EAB308")),
	toast.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
}

var dimStyle = lipgloss.NewStyle().Faint(true)

// renderState remembers which toasts were already printed; a terminal
// cannot un-print an expired toast, so only arrivals are rendered.
type renderState struct {
	mu      sync.Mutex
	printed map[string]bool
}

// renderToasts is the dispatcher observer: print each toast once, on
// arrival, in insertion order.
func (a *App) renderToasts(toasts []toast.Toast) {
	a.rendered.mu.Lock()
	defer a.rendered.mu.Unlock()
	if a.rendered.printed == nil {
		a.rendered.printed = map[string]bool{}
	}
	for _, t := range toasts {
		if a.rendered.printed[t.ID] {
			continue
		}
		a.rendered.printed[t.ID] = true
		style, ok := severityStyles[t.Severity]
		if !ok {
			style = severityStyles[toast.SeverityInfo]
		}
		fmt.Fprintf(a.out, "%s %s\n", style.Render("["+string(t.Severity)+"]"), t.Message)
	}
}

// terminalNotifier is the desktop-notification analog for a terminal:
// a bell plus one line. Best effort by construction.
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) Notify(title, message string) {
	fmt.Fprintf(n.out, "\a%s %s\n", dimStyle.Render(title+":"), message)
}

func renderJobLine(w io.Writer, idx int, job api.Job) {
	fmt.Fprintf(w, "%3d. %s — %s (%s, %s) %s\n",
		idx+1, job.Title, job.CompanyName, job.Location, job.JobType,
		dimStyle.Render(viewmodel.FormatSalary(job.SalaryRange)))
}

func renderApplicationLine(w io.Writer, idx int, app api.Application) {
	title, company := "(unknown job)", ""
	if app.Job != nil {
		title, company = app.Job.Title, app.Job.CompanyName
	}
	badge := viewmodel.StatusBadge(app.Status)
	fmt.Fprintf(w, "%3d. %s %s — %s %s\n",
		idx+1, badge.Render(), title, company,
		dimStyle.Render(app.AppliedAt.Format("2006-01-02")))
}

func renderNotificationLine(w io.Writer, n api.Notification) {
	marker := "•"
	if n.Read {
		marker = " "
	}
	fmt.Fprintf(w, " %s %s %s\n", marker, n.Message,
		dimStyle.Render(n.CreatedAt.Format("2006-01-02 15:04")))
}
