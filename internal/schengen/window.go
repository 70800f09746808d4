package schengen

import (
	"time"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
)

// presence is the flattened day set the window arithmetic runs over. It is
// built once per engine call and discarded — no state outlives a call.
// Using a set rather than summing per-trip spans means overlapping history
// is counted once, never double-counted.
type presence struct {
	days map[time.Time]struct{}
}

func newPresence(trips []domain.Trip) presence {
	p := presence{days: map[time.Time]struct{}{}}
	for _, trip := range trips {
		if !trip.WellFormed() {
			continue
		}
		for d := domain.DateOnly(trip.StartDate); !d.After(domain.DateOnly(trip.EndDate)); d = domain.AddDays(d, 1) {
			p.days[d] = struct{}{}
		}
	}
	return p
}

// usage counts the unique occupied days inside the window [ref-179, ref].
// extra is an additional hypothetical range (the trip being evaluated);
// pass a zero DateRange when evaluating history alone. Days of extra that
// fall outside the window are clipped away by the same containment test.
func (p presence) usage(ref time.Time, extra domain.DateRange) int {
	window := windowAt(ref)
	used := 0
	for d := window.Start; !d.After(window.End); d = domain.AddDays(d, 1) {
		if _, ok := p.days[d]; ok {
			used++
			continue
		}
		if extra.IsComplete() && extra.Contains(d) {
			used++
		}
	}
	return used
}

// maxDuration returns the largest n such that a trip starting at start and
// lasting n days keeps every covered day's window within the quota. The
// candidate grows one day at a time; the first day that would push its
// window over the quota stops the search. Capped at QuotaDays, since no
// trip can legitimately exceed the quota on its own.
func (p presence) maxDuration(start time.Time) int {
	start = domain.DateOnly(start)
	n := 0
	for d := start; n < QuotaDays; d = domain.AddDays(d, 1) {
		candidate := domain.DateRange{Start: start, End: d}
		if p.usage(d, candidate) > QuotaDays {
			break
		}
		n++
	}
	return n
}

// rangeCompliant reports whether the candidate range keeps usage within the
// quota for the window anchored at every day of the stay. Windows anchored
// mid-stay only see candidate days up to their anchor, which usage's
// clipping already guarantees.
func (p presence) rangeCompliant(candidate domain.DateRange) bool {
	for d := candidate.Start; !d.After(candidate.End); d = domain.AddDays(d, 1) {
		if p.usage(d, candidate) > QuotaDays {
			return false
		}
	}
	return true
}

// windowAt returns the 180-day window anchored at ref: [ref-179, ref].
func windowAt(ref time.Time) domain.DateRange {
	r := domain.DateOnly(ref)
	return domain.DateRange{Start: domain.AddDays(r, -(WindowDays - 1)), End: r}
}

// Usage returns the number of unique occupied days inside the 180-day
// window anchored at ref.
func Usage(trips []domain.Trip, ref time.Time) int {
	return newPresence(trips).usage(ref, domain.DateRange{})
}

// Evaluate reports compliance with the 90/180 rule at the reference date:
// how many window days are used, how far over quota the traveler is, and
// the longest trip that could start on ref without breaking the rule.
func Evaluate(trips []domain.Trip, ref time.Time) ComplianceResult {
	ref = domain.DateOnly(ref)
	p := newPresence(trips)
	used := p.usage(ref, domain.DateRange{})

	violation := 0
	if used > QuotaDays {
		violation = used - QuotaDays
	}

	return ComplianceResult{
		Compliant:       violation == 0,
		TotalDaysUsed:   used,
		ViolationDays:   violation,
		MaxTripDuration: p.maxDuration(ref),
		ReferenceDate:   ref,
		Verification:    Verify(trips),
	}
}

// MaxTripDuration returns the longest trip starting at start that remains
// compliant for every day of the stay. 0 means no trip can start that day.
func MaxTripDuration(trips []domain.Trip, start time.Time) int {
	return newPresence(trips).maxDuration(start)
}

// SafeTravelPeriods scans forward from the given date, one day at a time up
// to ScanHorizonDays, and groups consecutive start dates from which at least
// a one-day compliant trip is possible. Each period reports the best
// duration achievable anywhere inside it. At most MaxSafePeriods periods
// are returned so the scan stays interactive.
func SafeTravelPeriods(trips []domain.Trip, from time.Time) []SafePeriod {
	p := newPresence(trips)
	from = domain.DateOnly(from)

	var (
		periods []SafePeriod
		current *SafePeriod
	)
	for i := 0; i < ScanHorizonDays; i++ {
		day := domain.AddDays(from, i)
		max := p.maxDuration(day)

		if max < 1 {
			if current != nil {
				periods = append(periods, *current)
				current = nil
				if len(periods) >= MaxSafePeriods {
					return periods
				}
			}
			continue
		}

		if current == nil {
			current = &SafePeriod{Start: day, End: day, MaxDuration: max}
			continue
		}
		current.End = day
		if max > current.MaxDuration {
			current.MaxDuration = max
		}
	}
	if current != nil {
		periods = append(periods, *current)
	}
	return periods
}
