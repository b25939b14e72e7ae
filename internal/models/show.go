package models

import (
	"strings"
	"time"

	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/dateutil"
)

const (
	// PopularSeasonThreshold is the season count a show must exceed to be popular.
	PopularSeasonThreshold = 5
	// RecentWindow is how far back an update may be for a show to count as recent.
	RecentWindow = 30 * 24 * time.Hour
)

// RawShow is one record of the catalog endpoint as it appears on the wire.
type RawShow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Seasons     int    `json:"seasons"`
	Image       string `json:"image"`
	Genres      []int  `json:"genres"`
	Updated     string `json:"updated"`
}

// Validate checks the fields the rest of the system relies on. index is the
// record position in the response and is only used for error reporting.
func (r RawShow) Validate(index int) error {
	if strings.TrimSpace(r.ID) == "" {
		return &apperrors.ErrDecode{Index: index, Field: "id", Reason: "is required"}
	}
	if strings.TrimSpace(r.Title) == "" {
		return &apperrors.ErrDecode{Index: index, Field: "title", Reason: "is required"}
	}
	if r.Seasons < 0 {
		return &apperrors.ErrDecode{Index: index, Field: "seasons", Reason: "must not be negative"}
	}
	if _, err := dateutil.Parse(r.Updated); err != nil {
		return &apperrors.ErrDecode{Index: index, Field: "updated", Reason: "is not an ISO-8601 timestamp"}
	}
	return nil
}

// Show is a podcast as presented to the user. IsPopular and IsRecent are
// derived from Seasons and UpdatedAt by NewShow and are never set independently.
type Show struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Seasons     int       `json:"seasons"`
	Image       string    `json:"image"`
	GenreIDs    []int     `json:"genres"`
	UpdatedAt   time.Time `json:"updated"`
	IsPopular   bool      `json:"isPopular"`
	IsRecent    bool      `json:"isRecent"`
}

// NewShow converts a validated wire record into a Show, evaluating the derived
// flags against now. An unparseable timestamp yields a zero UpdatedAt.
func NewShow(raw RawShow, now time.Time) Show {
	updated, _ := dateutil.Parse(raw.Updated)

	genres := make([]int, len(raw.Genres))
	copy(genres, raw.Genres)

	return Show{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Seasons:     raw.Seasons,
		Image:       raw.Image,
		GenreIDs:    genres,
		UpdatedAt:   updated,
		IsPopular:   IsPopular(raw.Seasons),
		IsRecent:    IsRecent(updated, now),
	}
}

// IsPopular reports whether a show with the given season count is popular.
func IsPopular(seasons int) bool {
	return seasons > PopularSeasonThreshold
}

// IsRecent reports whether updatedAt lies within RecentWindow of now.
func IsRecent(updatedAt, now time.Time) bool {
	if updatedAt.IsZero() {
		return false
	}
	return now.Sub(updatedAt) <= RecentWindow
}
