package schengen

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
)

// ValidateDateRange decides whether a candidate range conflicts with any
// trip in the given set.
//
// An incomplete candidate (missing start or end) is still being selected in
// the UI and is always valid. excludeID lets an edit-in-place ignore the
// trip being edited; pass uuid.Nil when creating — uuid.Nil never excludes
// anything, so trips that have not been assigned an ID yet (hypothetical or
// not-yet-saved ones) are still checked. Trips with reversed dates are
// skipped rather than guessed at — Verify reports them separately.
func ValidateDateRange(candidate domain.DateRange, trips []domain.Trip, excludeID uuid.UUID) ValidationResult {
	if !candidate.IsComplete() {
		return ValidationResult{Valid: true}
	}

	cand := candidate.Normalized()
	var (
		conflicts []ConflictDetail
		dateSet   = map[time.Time]struct{}{}
	)

	for _, trip := range trips {
		if excludeID != uuid.Nil && trip.ID == excludeID {
			continue
		}
		if !trip.WellFormed() {
			continue
		}
		overlap, ok := cand.Intersect(trip.Range())
		if !ok {
			continue
		}
		conflicts = append(conflicts, ConflictDetail{
			TripID:        trip.ID,
			Country:       trip.Country,
			OverlapDays:   overlap.Days(),
			ConflictStart: overlap.Start,
			ConflictEnd:   overlap.End,
		})
		for d := overlap.Start; !d.After(overlap.End); d = domain.AddDays(d, 1) {
			dateSet[d] = struct{}{}
		}
	}

	if len(conflicts) == 0 {
		return ValidationResult{Valid: true}
	}

	dates := sortedDates(dateSet)
	return ValidationResult{
		Valid:         false,
		Conflicts:     conflicts,
		ConflictDates: dates,
		Message:       ConflictMessage(conflicts, dates),
	}
}

// AllOccupiedDates expands every trip into its individual inclusive days and
// returns the sorted, de-duplicated union. Overlapping history is tolerated:
// a day covered by two trips appears once.
func AllOccupiedDates(trips []domain.Trip) []time.Time {
	set := map[time.Time]struct{}{}
	for _, trip := range trips {
		if !trip.WellFormed() {
			continue
		}
		for d := domain.DateOnly(trip.StartDate); !d.After(domain.DateOnly(trip.EndDate)); d = domain.AddDays(d, 1) {
			set[d] = struct{}{}
		}
	}
	return sortedDates(set)
}

// OccupiedDates is the same expansion as AllOccupiedDates but retains
// provenance per day for UI tooltips. When overlapping history claims the
// same day twice, the trip starting earliest wins, so output is
// deterministic regardless of input order.
func OccupiedDates(trips []domain.Trip) []OccupiedDate {
	byDay := map[time.Time]domain.Trip{}
	for _, trip := range trips {
		if !trip.WellFormed() {
			continue
		}
		for d := domain.DateOnly(trip.StartDate); !d.After(domain.DateOnly(trip.EndDate)); d = domain.AddDays(d, 1) {
			existing, claimed := byDay[d]
			if !claimed || trip.StartDate.Before(existing.StartDate) {
				byDay[d] = trip
			}
		}
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make([]OccupiedDate, len(days))
	for i, d := range days {
		trip := byDay[d]
		out[i] = OccupiedDate{Date: d, TripID: trip.ID, Country: trip.Country}
	}
	return out
}

// TripsOnDate returns the trips whose inclusive range contains date, in
// input order. Used to build human-readable conflict messages.
func TripsOnDate(date time.Time, trips []domain.Trip) []domain.Trip {
	var out []domain.Trip
	for _, trip := range trips {
		if trip.Covers(date) {
			out = append(out, trip)
		}
	}
	return out
}

// ConflictMessage formats a ValidationResult's conflicts for direct display.
// A single conflict names the country and its clipped span; multiple
// conflicts are summarized with counts.
func ConflictMessage(conflicts []ConflictDetail, conflictDates []time.Time) string {
	switch len(conflicts) {
	case 0:
		return ""
	case 1:
		c := conflicts[0]
		return fmt.Sprintf("These dates are already used by your %s trip (%s to %s).",
			c.Country, c.ConflictStart.Format("Jan 2, 2006"), c.ConflictEnd.Format("Jan 2, 2006"))
	default:
		return fmt.Sprintf("These dates overlap %d existing trips across %d days.",
			len(conflicts), len(conflictDates))
	}
}

func sortedDates(set map[time.Time]struct{}) []time.Time {
	out := make([]time.Time, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
