// Package dateutil formats show timestamps for display.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// interval is one step of the "time ago" unit table, largest first.
type interval struct {
	unit    string
	seconds int64
}

var intervals = []interval{
	{"year", 31536000},
	{"month", 2592000},
	{"week", 604800},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
}

// TimeSince renders the time elapsed between t and now, using the largest unit
// that fits at least once, e.g. "3 days ago". Anything under a minute,
// including timestamps in the future, is "Just now".
func TimeSince(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)

	for _, iv := range intervals {
		count := seconds / iv.seconds
		if count >= 1 {
			if count == 1 {
				return fmt.Sprintf("1 %s ago", iv.unit)
			}
			return fmt.Sprintf("%d %ss ago", count, iv.unit)
		}
	}

	return "Just now"
}

// FormatFull renders t as a long US date, e.g. "May 15, 2023".
func FormatFull(t time.Time) string {
	return t.Format("January 2, 2006")
}

// Parse reads an ISO-8601 timestamp as served by the catalog ("2022-11-03T07:00:00.000Z").
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
