// Package testutil builds catalog fixtures and a fake catalog endpoint for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// ShowRecordOptions describes one record of a generated catalog body.
// Zero values are filled with plausible defaults.
type ShowRecordOptions struct {
	ID          string
	Title       string
	Description string
	Seasons     int
	Image       string
	Genres      []int
	Updated     time.Time
	UpdatedRaw  string // used verbatim instead of Updated when set
}

type record struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Seasons     int    `json:"seasons"`
	Image       string `json:"image"`
	Genres      []int  `json:"genres"`
	Updated     string `json:"updated"`
}

// GenerateCatalogJSON renders records as the JSON array served by the catalog endpoint.
func GenerateCatalogJSON(records []ShowRecordOptions) string {
	out := make([]record, 0, len(records))
	for _, r := range records {
		rec := record{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			Seasons:     r.Seasons,
			Image:       r.Image,
			Genres:      r.Genres,
			Updated:     r.UpdatedRaw,
		}
		if rec.Title == "" {
			rec.Title = "Show " + r.ID
		}
		if rec.Image == "" {
			rec.Image = "https://example.test/" + r.ID + ".jpg"
		}
		if rec.Genres == nil {
			rec.Genres = []int{}
		}
		if rec.Updated == "" {
			updated := r.Updated
			if updated.IsZero() {
				updated = time.Date(2022, time.November, 3, 7, 0, 0, 0, time.UTC)
			}
			rec.Updated = updated.UTC().Format("2006-01-02T15:04:05.000Z")
		}
		out = append(out, rec)
	}

	body, err := json.Marshal(out)
	if err != nil {
		panic(err)
	}
	return string(body)
}

// NewCatalogServer starts an httptest server answering every request with
// status and, for 200, body as JSON. It is closed when the test ends.
func NewCatalogServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
