package models

import (
	"strings"
	"time"
)

// naiveLayouts are tried for timestamps lacking a zone designator; such
// values are interpreted as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a backend timestamp. Zone-aware values keep their
// offset; naive values are treated as UTC.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, true
	}

	for _, layout := range naiveLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}

// IsRecent reports whether ts falls within the window before now. Clock
// skew can put a freshly reported timestamp slightly in the future, so
// future values count as recent.
func IsRecent(ts time.Time, window time.Duration, now time.Time) bool {
	return now.Sub(ts) <= window
}
