// Package schengen implements the travel-compliance engine: interval-overlap
// validation between trips and the EU "90 days within any rolling 180-day
// window" rule, including forward-looking what-if validation and suggestion
// of compliant alternative date ranges.
//
// Everything in this package is a pure function over the trip snapshot the
// caller passes in. There is no internal state and no I/O, so identical
// inputs always produce identical outputs and concurrent calls are safe.
package schengen

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
)

const (
	// WindowDays is the length of the rolling evaluation window: for a
	// reference date R the window is [R-179, R], inclusive of R.
	WindowDays = 180

	// QuotaDays is the maximum presence allowed inside any window.
	QuotaDays = 90

	// ScanHorizonDays bounds every forward/backward date scan (safe-period
	// enumeration, alternative-range search) so calls stay interactive.
	ScanHorizonDays = 365

	// MaxSafePeriods caps the number of periods SafeTravelPeriods reports.
	MaxSafePeriods = 10
)

// ConflictDetail describes one existing trip that overlaps a candidate range.
type ConflictDetail struct {
	TripID        uuid.UUID `json:"trip_id"`
	Country       string    `json:"country"`
	OverlapDays   int       `json:"overlap_days"`
	ConflictStart time.Time `json:"conflict_start"`
	ConflictEnd   time.Time `json:"conflict_end"`
}

// ValidationResult is the outcome of an overlap check. Overlap is a normal
// user input, not a failure, so it is reported in the result rather than as
// an error.
type ValidationResult struct {
	Valid         bool             `json:"is_valid"`
	Conflicts     []ConflictDetail `json:"conflicts"`
	ConflictDates []time.Time      `json:"conflict_dates"`
	Message       string           `json:"message"`
}

// OccupiedDate is one calendar day covered by a trip, with provenance so the
// UI can explain why the day is unavailable.
type OccupiedDate struct {
	Date    time.Time `json:"date"`
	TripID  uuid.UUID `json:"trip_id"`
	Country string    `json:"country"`
}

// ComplianceResult is the outcome of evaluating the 90/180 rule at a
// reference date.
type ComplianceResult struct {
	Compliant bool `json:"is_compliant"`

	// TotalDaysUsed is the number of unique occupied days inside the
	// 180-day window anchored at ReferenceDate.
	TotalDaysUsed int `json:"total_days_used"`

	// ViolationDays is how far usage exceeds the quota; 0 when compliant.
	ViolationDays int `json:"violation_days"`

	// MaxTripDuration is the longest trip starting at ReferenceDate that
	// keeps every covered day's window within the quota.
	MaxTripDuration int `json:"max_trip_duration"`

	ReferenceDate time.Time    `json:"reference_date"`
	Verification  Verification `json:"verification"`
}

// Severity grades a recommendation for UI display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Recommendation is one piece of actionable guidance for an invalid trip
// request. SuggestedStart/SuggestedEnd, when set, describe a concrete range
// the UI can apply directly.
type Recommendation struct {
	Severity       Severity   `json:"severity"`
	Message        string     `json:"message"`
	SuggestedStart *time.Time `json:"suggested_start_date,omitempty"`
	SuggestedEnd   *time.Time `json:"suggested_end_date,omitempty"`
}

// SafePeriod is a contiguous run of start dates from which at least a
// one-day trip is compliant. MaxDuration is the best duration achievable
// anywhere inside the period.
type SafePeriod struct {
	Start       time.Time `json:"start_date"`
	End         time.Time `json:"end_date"`
	MaxDuration int       `json:"max_duration"`
}

// FutureTripResult is the single structured answer to "can I take this
// trip?", combining the overlap check, the rolling-window quota check, and
// guidance when either fails.
type FutureTripResult struct {
	Valid           bool             `json:"is_valid"`
	Message         string           `json:"message"`
	Overlap         ValidationResult `json:"overlap"`
	Compliance      ComplianceResult `json:"compliance"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ProposedTrip is a hypothetical trip under evaluation. Any two of Start,
// End, and Days determine the third (end = start + days - 1); Resolve fills
// in the missing one.
type ProposedTrip struct {
	Country string    `json:"country"`
	Start   time.Time `json:"start_date"`
	End     time.Time `json:"end_date"`
	Days    int       `json:"days"`
}

// Resolve returns the fully-determined inclusive range for the proposal.
// It fails with domain.ErrValidation when the three fields underdetermine
// the range or contradict each other.
func (p ProposedTrip) Resolve() (domain.DateRange, error) {
	hasStart, hasEnd := !p.Start.IsZero(), !p.End.IsZero()

	switch {
	case hasStart && hasEnd:
		r := domain.DateRange{Start: domain.DateOnly(p.Start), End: domain.DateOnly(p.End)}
		if r.End.Before(r.Start) {
			return domain.DateRange{}, fmt.Errorf("%w: end date before start date", domain.ErrValidation)
		}
		if p.Days != 0 && p.Days != r.Days() {
			return domain.DateRange{}, fmt.Errorf("%w: days does not match the date span", domain.ErrValidation)
		}
		return r, nil
	case hasStart && p.Days > 0:
		s := domain.DateOnly(p.Start)
		return domain.DateRange{Start: s, End: domain.AddDays(s, p.Days-1)}, nil
	case hasEnd && p.Days > 0:
		e := domain.DateOnly(p.End)
		return domain.DateRange{Start: domain.AddDays(e, -(p.Days - 1)), End: e}, nil
	default:
		return domain.DateRange{}, fmt.Errorf("%w: provide two of start date, end date, and days", domain.ErrValidation)
	}
}
