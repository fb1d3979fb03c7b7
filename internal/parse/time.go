// Package parse converts the request-level timestamp and date strings
// into time values. All times are naive local timestamps in the single
// implicit timezone; no conversion is performed.
package parse

import (
	"fmt"
	"strings"
	"time"
)

const (
	dayLayout = "2006-01-02"
)

// timestampLayouts are accepted for booking times, most specific first.
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Timestamp parses an ISO-8601 local timestamp such as
// "2025-01-06T08:00" or "2025-01-06T08:00:00".
func Timestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected YYYY-MM-DDTHH:MM[:SS]", raw)
}

// Day parses a calendar date such as "2025-01-06" into midnight of that
// day.
func Day(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	t, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}
