package domain

import "time"

// DateRange is an inclusive calendar-date interval. A range with a zero
// Start or End is "still being selected" in the UI and is never treated as
// a conflict; callers check IsComplete before validating.
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// IsComplete reports whether both endpoints are set.
func (r DateRange) IsComplete() bool {
	return !r.Start.IsZero() && !r.End.IsZero()
}

// Normalized returns the range with date-only endpoints, swapped if they
// arrived in reverse order (drag-selection can produce either direction).
func (r DateRange) Normalized() DateRange {
	s, e := DateOnly(r.Start), DateOnly(r.End)
	if e.Before(s) {
		s, e = e, s
	}
	return DateRange{Start: s, End: e}
}

// Days returns the inclusive day count of the range, or 0 if incomplete.
func (r DateRange) Days() int {
	if !r.IsComplete() {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

// Contains reports whether date falls inside the inclusive range.
func (r DateRange) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(r.Start)) && !d.After(DateOnly(r.End))
}

// Overlaps reports whether two inclusive ranges share at least one day.
// Closed intervals [s1,e1] and [s2,e2] overlap iff s1 <= e2 && e1 >= s2.
func (r DateRange) Overlaps(other DateRange) bool {
	if !r.IsComplete() || !other.IsComplete() {
		return false
	}
	return !DateOnly(r.Start).After(DateOnly(other.End)) &&
		!DateOnly(r.End).Before(DateOnly(other.Start))
}

// Intersect returns the overlapping sub-range of two ranges.
// The second return value is false when they do not overlap.
func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	if !r.Overlaps(other) {
		return DateRange{}, false
	}
	s := DateOnly(r.Start)
	if o := DateOnly(other.Start); o.After(s) {
		s = o
	}
	e := DateOnly(r.End)
	if o := DateOnly(other.End); o.Before(e) {
		e = o
	}
	return DateRange{Start: s, End: e}, true
}
