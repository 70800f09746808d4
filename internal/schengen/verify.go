package schengen

import (
	"fmt"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
)

// Verification is data-quality metadata attached to every compliance
// answer. It grades the trip data the answer was computed from, not the
// answer itself, so the UI can distinguish "we are sure" from "we are
// estimating from records that need fixing".
type Verification struct {
	// ConfidenceScore is 0-100; 100 means every trip record is complete
	// and internally consistent.
	ConfidenceScore int `json:"confidence_score"`

	// Sources names the checks backing the result.
	Sources []string `json:"sources"`

	// Issues lists the data-quality problems found, for direct display.
	Issues []string `json:"issues,omitempty"`
}

const (
	penaltyMissingDates = 15
	penaltyReversed     = 15
	penaltyDayDrift     = 5
)

// Verify scores the trip set's data quality. Trips with missing or reversed
// dates are the records the engine had to exclude from evaluation; a stored
// day count disagreeing with the date span is a smaller drift signal since
// the engine recomputes it anyway.
func Verify(trips []domain.Trip) Verification {
	v := Verification{
		ConfidenceScore: 100,
		Sources:         []string{"eu-90-180-rule", "interval-arithmetic"},
	}

	for _, trip := range trips {
		label := trip.Country
		if label == "" {
			label = trip.ID.String()
		}
		switch {
		case trip.StartDate.IsZero() || trip.EndDate.IsZero():
			v.ConfidenceScore -= penaltyMissingDates
			v.Issues = append(v.Issues, fmt.Sprintf("trip %q is missing a date and was excluded", label))
		case trip.EndDate.Before(trip.StartDate):
			v.ConfidenceScore -= penaltyReversed
			v.Issues = append(v.Issues, fmt.Sprintf("trip %q ends before it starts and was excluded", label))
		case trip.Days != 0 && trip.Days != trip.DurationDays():
			v.ConfidenceScore -= penaltyDayDrift
			v.Issues = append(v.Issues, fmt.Sprintf("trip %q stores %d days but spans %d; the span was used", label, trip.Days, trip.DurationDays()))
		}
	}

	if v.ConfidenceScore < 0 {
		v.ConfidenceScore = 0
	}
	if len(v.Issues) == 0 {
		v.Sources = append(v.Sources, "cross-validated")
	}
	return v
}
