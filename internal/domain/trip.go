// Package domain contains the core data types for the Schengen Planner
// application. This package has zero external dependencies beyond uuid and is
// imported by every other internal package (schengen, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents one continuous stay in one country, with an inclusive
// date range: a trip from June 1 to June 3 covers three days of presence.
//
// Days is a derived value. It is recomputed from the dates on every write and
// never trusted as authoritative input; DurationDays is the source of truth.
type Trip struct {
	ID        uuid.UUID `json:"id"`
	Country   string    `json:"country"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Days      int       `json:"days"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Range returns the trip's date range.
func (t Trip) Range() DateRange {
	return DateRange{Start: t.StartDate, End: t.EndDate}
}

// DurationDays returns the inclusive day count of the trip's date span.
// A trip with EndDate before StartDate returns 0.
func (t Trip) DurationDays() int {
	if !t.WellFormed() {
		return 0
	}
	return DaysBetween(t.StartDate, t.EndDate) + 1
}

// WellFormed reports whether the trip has both dates set and ordered.
// Malformed trips are excluded from overlap and window evaluation rather
// than normalized; the verification score reports them to the caller.
func (t Trip) WellFormed() bool {
	return !t.StartDate.IsZero() && !t.EndDate.IsZero() && !t.EndDate.Before(t.StartDate)
}

// Covers reports whether date falls inside the trip's inclusive range.
func (t Trip) Covers(date time.Time) bool {
	return t.WellFormed() && t.Range().Contains(date)
}
