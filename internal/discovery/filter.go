// Package discovery holds the search and category filter and the selection
// state shared by the browser, the CLI and the HTTP API.
package discovery

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/podlanding/podcast-discovery/internal/models"
)

// Filter returns the shows whose title or description contains search
// (case-insensitively) and that pass category. Relative order is kept. The
// result is never nil.
func Filter(shows []models.Show, search string, category models.Category) []models.Show {
	// A Caser is stateful, so each call gets its own.
	fold := cases.Fold()
	needle := fold.String(search)

	visible := make([]models.Show, 0, len(shows))
	for _, show := range shows {
		if !category.Matches(show) {
			continue
		}
		if needle != "" && !matchesText(fold, show, needle) {
			continue
		}
		visible = append(visible, show)
	}
	return visible
}

func matchesText(fold cases.Caser, show models.Show, needle string) bool {
	return strings.Contains(fold.String(show.Title), needle) ||
		strings.Contains(fold.String(show.Description), needle)
}
