package viewmodel

import "careerhub/internal/api"

// StatusFilterAll is the sentinel meaning "no status filter".
const StatusFilterAll api.Status = "all"

// FilterByStatus returns the applications matching status exactly, or the
// input unchanged for the sentinel StatusFilterAll.
func FilterByStatus(apps []api.Application, status api.Status) []api.Application {
	if status == StatusFilterAll {
		return apps
	}
	filtered := make([]api.Application, 0, len(apps))
	for _, app := range apps {
		if app.Status == status {
			filtered = append(filtered, app)
		}
	}
	return filtered
}

// Paginate returns the page-th page (1-based) of items. Out-of-range pages
// yield an empty slice; perPage < 1 yields everything.
func Paginate[T any](items []T, page, perPage int) []T {
	if perPage < 1 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// CountByStatus tallies applications per status for dashboard stats.
func CountByStatus(apps []api.Application) map[api.Status]int {
	counts := make(map[api.Status]int, len(apps))
	for _, app := range apps {
		counts[app.Status]++
	}
	return counts
}
