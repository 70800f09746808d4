package domain

import "time"

// DateOnly truncates t to midnight UTC. All engine arithmetic operates on
// date-only granularity; normalizing at every boundary means two dates
// compare equal whenever they name the same calendar day, regardless of the
// time-of-day or zone they arrived with.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b (b - a).
// Negative when b is before a. Both arguments are date-normalized first,
// so the result is exact regardless of time-of-day.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// AddDays returns the date n days after t (or before, for negative n),
// normalized to midnight UTC.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}
