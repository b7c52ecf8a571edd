package common

import (
	"strings"
	"time"
)

// instantLayouts are tried in order. Layouts without a zone yield UTC.
// Fractional seconds are accepted after the seconds field by time.Parse.
var instantLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Normalize returns s trimmed and lower-cased, the form used for
// case- and whitespace-insensitive comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseInstant parses an ISO-8601 date or datetime and returns it in UTC.
// A date-only value is midnight UTC of that day.
func ParseInstant(s string) (time.Time, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range instantLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// CanonicalInstant formats t so that equal instants always produce equal strings.
func CanonicalInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
