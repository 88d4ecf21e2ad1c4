// Package viewmodel holds read-only projections computed from fetched
// collections for display. Nothing here is authoritative state and nothing
// here performs I/O.
package viewmodel

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"careerhub/internal/api"
)

var salaryPrinter = message.NewPrinter(language.English)

// FormatSalary renders a salary range for display:
//
//	both bounds   "$80,000 - $120,000"
//	only min      "From $80,000"
//	only max      "Up to $120,000"
//	neither       "Negotiable"
func FormatSalary(r *api.SalaryRange) string {
	if r == nil {
		return "Negotiable"
	}
	switch {
	case r.Min > 0 && r.Max > 0:
		return salaryPrinter.Sprintf("$%d - $%d", r.Min, r.Max)
	case r.Min > 0:
		return salaryPrinter.Sprintf("From $%d", r.Min)
	case r.Max > 0:
		return salaryPrinter.Sprintf("Up to $%d", r.Max)
	default:
		return "Negotiable"
	}
}
