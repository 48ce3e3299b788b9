package analysis

import (
	"strings"
	"time"

	"runboard/internal/store"
)

// runTypes are the activity/sport types counted as runs
var runTypes = map[string]bool{
	"Run":        true,
	"TrailRun":   true,
	"VirtualRun": true,
}

// IsRunLike reports whether an activity counts as a run. Both the legacy
// type field and the newer sport type field are checked; every metric in
// this package classifies runs through this one predicate.
func IsRunLike(a store.Activity) bool {
	return runTypes[a.Type] || runTypes[a.SportType]
}

// localTimestampLayouts cover the provider's timestamp shapes once any
// spurious trailing Z has been stripped
var localTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseLocalDate parses a provider timestamp as naive local wall-clock time.
// The provider embeds local time but sometimes suffixes it with a UTC
// marker; honoring that marker shifts date buckets near midnight and at DST
// boundaries, so it is stripped before parsing. Returns the zero time for
// unparseable input.
func ParseLocalDate(ts string) time.Time {
	s := strings.TrimSuffix(strings.TrimSpace(ts), "Z")
	for _, layout := range localTimestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// LocalDateKey returns the zero-padded YYYY-MM-DD calendar date of a
// provider timestamp, using the local components from ParseLocalDate.
func LocalDateKey(ts string) string {
	t := ParseLocalDate(ts)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// DateKeyFromTimestamp truncates a provider timestamp to its date portion.
// Cheaper than a full parse and equivalent for pure date bucketing;
// ParseLocalDate remains the canonical normalization everywhere a real
// datetime is needed.
func DateKeyFromTimestamp(ts string) string {
	if len(ts) < 10 {
		return ""
	}
	return ts[:10]
}

// dateOnly truncates a time to midnight UTC so day arithmetic is immune to
// zone offsets and DST transitions.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// activityDate resolves an activity's local calendar day, or the zero time
// if its timestamp does not parse.
func activityDate(a store.Activity) time.Time {
	t := ParseLocalDate(a.StartDateLocal)
	if t.IsZero() {
		return t
	}
	return dateOnly(t)
}
