package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/hlview/hl/internal/record"
)

// TimeRange is the `--since`/`--until` filter (SPEC_FULL §6). Either bound
// may be zero to mean unbounded.
type TimeRange struct {
	Since time.Time
	Until time.Time
}

// Match reports whether r's instant falls within the range. A record with
// no resolvable timestamp does not match a bounded range (SPEC_FULL §4.6
// "in sort and follow modes it is skipped unless configuration says
// otherwise"; concatenation mode does not apply time ranges at all, so
// callers only consult Match when sorting/following).
func (t TimeRange) Match(r *record.Record) bool {
	if r.Instant == nil {
		return false
	}

	ts := r.Instant.Time()

	if !t.Since.IsZero() && ts.Before(t.Since) {
		return false
	}

	if !t.Until.IsZero() && ts.After(t.Until) {
		return false
	}

	return true
}

// IsZero reports whether the range is unbounded on both ends.
func (t TimeRange) IsZero() bool {
	return t.Since.IsZero() && t.Until.IsZero()
}

// ParseTimeBound parses a `--since`/`--until` value (SPEC_FULL §6 "T
// accepts absolute or relative forms"): an RFC 3339 timestamp, the
// keywords "now", "today", or "yesterday", or a signed stdlib duration
// (e.g. "-1h", "-90m") relative to now.
func ParseTimeBound(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(s) {
	case "now":
		return now, nil
	case "today":
		y, m, d := now.Date()

		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	case "yesterday":
		y, m, d := now.AddDate(0, 0, -1).Date()

		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	if d, err := time.ParseDuration(s); err == nil {
		return now.Add(d), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized time bound %q", s)
}
