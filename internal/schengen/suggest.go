package schengen

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
)

// AlternativeDates searches near a rejected candidate range for valid
// same-duration ranges. Starting from the original start date it scans
// forward one day at a time up to the scan horizon, then backward the same
// way, and returns the first k ranges that pass both the overlap check and
// the per-day quota check. Within each direction results are ordered nearest
// first, but every forward candidate ranks before any backward one — later
// dates are assumed preferable to earlier ones. This is the one place the
// two otherwise-independent checks compose.
func AlternativeDates(trips []domain.Trip, requested domain.DateRange, k int) []domain.DateRange {
	if !requested.IsComplete() || k <= 0 {
		return nil
	}
	requested = requested.Normalized()
	duration := requested.Days()
	p := newPresence(trips)

	var out []domain.DateRange
	try := func(start domain.DateRange) bool {
		if !validAlternative(p, trips, start) {
			return false
		}
		out = append(out, start)
		return len(out) >= k
	}

	for offset := 1; offset <= ScanHorizonDays; offset++ {
		s := domain.AddDays(requested.Start, offset)
		if try(domain.DateRange{Start: s, End: domain.AddDays(s, duration-1)}) {
			return out
		}
	}
	for offset := 1; offset <= ScanHorizonDays; offset++ {
		s := domain.AddDays(requested.Start, -offset)
		if try(domain.DateRange{Start: s, End: domain.AddDays(s, duration-1)}) {
			return out
		}
	}
	return out
}

// validAlternative is the composed acceptance test for a candidate range:
// no overlap with existing trips and quota-compliant at every covered day.
func validAlternative(p presence, trips []domain.Trip, candidate domain.DateRange) bool {
	if !ValidateDateRange(candidate, trips, uuid.Nil).Valid {
		return false
	}
	return p.rangeCompliant(candidate)
}

// Recommendations turns a rejected proposal into severity-tagged guidance
// the UI can render and apply. Overlap failures get a relocated range of
// the same duration; quota failures get a shorten-to-fit option and a
// postpone option.
func Recommendations(trips []domain.Trip, requested domain.DateRange, overlap ValidationResult, compliance ComplianceResult) []Recommendation {
	var recs []Recommendation

	if !overlap.Valid {
		rec := Recommendation{
			Severity: SeverityError,
			Message:  fmt.Sprintf("Your requested dates overlap %d existing trip(s).", len(overlap.Conflicts)),
		}
		if alts := AlternativeDates(trips, requested, 1); len(alts) > 0 {
			rec.Message += fmt.Sprintf(" The nearest free %d-day window starts %s.",
				requested.Days(), alts[0].Start.Format("Jan 2, 2006"))
			rec.SuggestedStart, rec.SuggestedEnd = &alts[0].Start, &alts[0].End
		}
		recs = append(recs, rec)
	}

	if !compliance.Compliant {
		if max := compliance.MaxTripDuration; max >= 1 && max < requested.Days() {
			end := domain.AddDays(requested.Start, max-1)
			start := requested.Start
			recs = append(recs, Recommendation{
				Severity:       SeverityWarning,
				Message:        fmt.Sprintf("Shorten the trip to %d day(s) to stay within the 90-day allowance.", max),
				SuggestedStart: &start,
				SuggestedEnd:   &end,
			})
		}
		if start, ok := nextCompliantStart(trips, requested); ok {
			end := domain.AddDays(start, requested.Days()-1)
			recs = append(recs, Recommendation{
				Severity:       SeverityInfo,
				Message:        fmt.Sprintf("Postpone to %s to fit the full %d days.", start.Format("Jan 2, 2006"), requested.Days()),
				SuggestedStart: &start,
				SuggestedEnd:   &end,
			})
		}
	}

	return recs
}

// nextCompliantStart scans forward from the requested start for the first
// start date where the full requested duration passes both checks.
func nextCompliantStart(trips []domain.Trip, requested domain.DateRange) (start time.Time, ok bool) {
	p := newPresence(trips)
	duration := requested.Days()
	for offset := 1; offset <= ScanHorizonDays; offset++ {
		s := domain.AddDays(requested.Start, offset)
		candidate := domain.DateRange{Start: s, End: domain.AddDays(s, duration-1)}
		if validAlternative(p, trips, candidate) {
			return s, true
		}
	}
	return time.Time{}, false
}
