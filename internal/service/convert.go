package service

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// dateLayouts covers the two shapes the backend emits: bare dates for
// deadlines and RFC 3339 for record timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// parseDate converts a backend date string to an optional time. Empty or
// unparseable values come back absent, never as a zero time.
func parseDate(s *string) null.Time {
	if s == nil || *s == "" {
		return null.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return null.TimeFrom(t)
		}
	}
	return null.Time{}
}

// parseTimestamp is parseDate for required fields; failures yield a zero
// time (record timestamps are backend-owned and display-only).
func parseTimestamp(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
