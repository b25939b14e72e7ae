// Package genres resolves the catalog's numeric genre IDs to display names.
package genres

import (
	"sort"

	"github.com/podlanding/podcast-discovery/internal/models"
)

// Unknown is the name used for IDs missing from the table.
const Unknown = "Unknown"

var table = map[int]string{
	1: "Personal Growth",
	2: "Investigative Journalism",
	3: "History",
	4: "Comedy",
	5: "Entertainment",
	6: "Business",
	7: "Fiction",
	8: "News",
	9: "Kids and Family",
}

// Name returns the display name for id.
func Name(id int) (string, bool) {
	name, ok := table[id]
	return name, ok
}

// NamesFor maps each ID to its name, substituting Unknown for unmapped IDs.
// The result is never nil.
func NamesFor(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := table[id]
		if !ok {
			name = Unknown
		}
		names = append(names, name)
	}
	return names
}

// All returns every genre ordered by ID.
func All() []models.Genre {
	all := make([]models.Genre, 0, len(table))
	for id, name := range table {
		all = append(all, models.Genre{ID: id, Name: name})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
