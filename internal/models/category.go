package models

import (
	"strings"

	"github.com/podlanding/podcast-discovery/internal/apperrors"
)

// Category is the quick filter applied on top of the search text.
type Category string

const (
	CategoryAll     Category = "all"
	CategoryPopular Category = "popular"
	CategoryRecent  Category = "recent"
)

// Categories lists the filters in display order.
var Categories = []Category{CategoryAll, CategoryPopular, CategoryRecent}

// ParseCategory parses a filter name case-insensitively. An empty string is CategoryAll.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case "", CategoryAll:
		return CategoryAll, nil
	case CategoryPopular:
		return CategoryPopular, nil
	case CategoryRecent:
		return CategoryRecent, nil
	default:
		return "", &apperrors.ErrInvalidCategory{Value: s}
	}
}

// Matches reports whether show passes the category filter. Unknown categories match nothing.
func (c Category) Matches(show Show) bool {
	switch c {
	case CategoryAll:
		return true
	case CategoryPopular:
		return show.IsPopular
	case CategoryRecent:
		return show.IsRecent
	default:
		return false
	}
}

// Label is the capitalised name used on filter buttons.
func (c Category) Label() string {
	switch c {
	case CategoryPopular:
		return "Popular"
	case CategoryRecent:
		return "Recent"
	default:
		return "All"
	}
}
