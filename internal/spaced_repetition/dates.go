package spaced_repetition

import (
	"time"
)

// Clock supplies the current time to the scheduler.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

// Now implements Clock.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// reviewDateLayouts are tried in order when reading a stored date.
// The last two cover sqlite CURRENT_TIMESTAMP values and hand-entered dates.
var reviewDateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseReviewDate parses a stored review date. Layouts without a zone are
// read in loc.
func ParseReviewDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range reviewDateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil && isValidDate(t) {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatReviewDate renders t the way it is persisted.
func FormatReviewDate(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// safeDate returns now plus the given number of days. Results that could not
// be persisted and read back are replaced with now plus one day.
func safeDate(now time.Time, days int) time.Time {
	next := now.AddDate(0, 0, days)
	if !isValidDate(next) || !next.After(now) {
		return now.AddDate(0, 0, 1)
	}
	return next
}

// isValidDate reports whether t survives an RFC3339 round trip.
func isValidDate(t time.Time) bool {
	return !t.IsZero() && t.Year() >= 1 && t.Year() <= 9999
}
