package etl

import (
	"strconv"
	"strings"
	"time"
)

// Parse-or-default functions for per-field coercion. Fail-soft is the
// governing policy: malformed input degrades to the documented default and
// never propagates an error to the caller. Tests exercise the failure paths
// directly instead of relying on blanket recovery.

// timeLayouts is the fixed ordered list of accepted timestamp formats.
// The first successful match wins.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
}

// ParseCount parses a non-negative counter. Empty, non-numeric and negative
// values all coerce to 0. Fractional input is accepted and truncated, since
// scraped counters occasionally arrive as "123.0".
func ParseCount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f < 0 {
			return 0
		}
		return int64(f)
	}
	return 0
}

// ParseDuration converts a "mm:ss" or "hh:mm:ss" token to seconds.
// Any other shape (empty, malformed, wrong token count) is 0.
func ParseDuration(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		minutes, err1 := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		seconds, err2 := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err1 != nil || err2 != nil || minutes < 0 || seconds < 0 {
			return 0
		}
		return minutes*60 + seconds
	case 3:
		hours, err1 := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
		minutes, err2 := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		seconds, err3 := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
		if err1 != nil || err2 != nil || err3 != nil || hours < 0 || minutes < 0 || seconds < 0 {
			return 0
		}
		return hours*3600 + minutes*60 + seconds
	default:
		return 0
	}
}

// ParseTimestamp tries the fixed layout list in order and returns nil when
// none match. Callers must treat nil as "excluded from time-based
// aggregations", never as epoch zero.
func ParseTimestamp(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
