package viewmodel

import (
	"github.com/charmbracelet/lipgloss"

	"careerhub/internal/api"
)

// Badge is the fixed label/color presentation of an application status.
type Badge struct {
	Label string
	Color lipgloss.Color
}

var statusBadges = map[api.Status]Badge{
	api.StatusApplied:     {Label: "Applied", Color: lipgloss.Color("#3B82F6")},
	api.StatusReviewed:    {Label: "Under Review", Color: lipgloss.Color("#EAB308")},
	api.StatusShortlisted: {Label: "Shortlisted", Color: lipgloss.Color("#22C55E")},
	api.StatusAccepted:    {Label: "Accepted", Color: lipgloss.Color("#A855F7")},
	api.StatusRejected:    {Label: "Not Selected", Color: lipgloss.Color("#EF4444")},
}

// StatusBadge maps a status to its presentation. Unknown values fall back
// to the "applied" presentation; this never fails on bad input.
func StatusBadge(status api.Status) Badge {
	if b, ok := statusBadges[status]; ok {
		return b
	}
	return statusBadges[api.StatusApplied]
}

// Render returns the badge label styled in its color for terminal output.
func (b Badge) Render() string {
	return lipgloss.NewStyle().Foreground(b.Color).Bold(true).Render(b.Label)
}
