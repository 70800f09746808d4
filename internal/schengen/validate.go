package schengen

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
)

// ValidateFutureTrip answers "can I take this trip?" in one call: it runs
// the overlap check against existing trips, layers the rolling-window quota
// check on top, and attaches recommendations when either fails.
//
// The reported usage and violation figures anchor on the proposed trip's
// last day — the window that has accumulated the full new trip. The
// max-duration figure additionally checks every covered day, so history
// rolling out of the window mid-stay cannot produce an optimistic answer.
//
// The only error condition is a proposal whose dates cannot be resolved;
// overlap and quota violations are normal outcomes reported in the result.
func ValidateFutureTrip(trips []domain.Trip, proposed ProposedTrip) (FutureTripResult, error) {
	rng, err := proposed.Resolve()
	if err != nil {
		return FutureTripResult{}, fmt.Errorf("schengen.ValidateFutureTrip: %w", err)
	}

	overlap := ValidateDateRange(rng, trips, uuid.Nil)

	p := newPresence(trips)
	used := p.usage(rng.End, rng)
	violation := 0
	if used > QuotaDays {
		violation = used - QuotaDays
	}
	compliance := ComplianceResult{
		Compliant:       violation == 0 && p.rangeCompliant(rng),
		TotalDaysUsed:   used,
		ViolationDays:   violation,
		MaxTripDuration: p.maxDuration(rng.Start),
		ReferenceDate:   rng.End,
		Verification:    Verify(trips),
	}

	result := FutureTripResult{
		Valid:      overlap.Valid && compliance.Compliant,
		Overlap:    overlap,
		Compliance: compliance,
	}
	result.Message = futureTripMessage(result, rng)
	if !result.Valid {
		result.Recommendations = Recommendations(trips, rng, overlap, compliance)
	}
	return result, nil
}

// futureTripMessage summarizes the combined outcome for direct display.
func futureTripMessage(r FutureTripResult, rng domain.DateRange) string {
	switch {
	case r.Valid:
		return fmt.Sprintf("Your %d-day trip fits: %d of %d days used in the 180-day window ending %s.",
			rng.Days(), r.Compliance.TotalDaysUsed, QuotaDays, rng.End.Format("Jan 2, 2006"))
	case !r.Overlap.Valid && !r.Compliance.Compliant:
		return fmt.Sprintf("%s It also exceeds the 90-day allowance by %d days.",
			r.Overlap.Message, r.Compliance.ViolationDays)
	case !r.Overlap.Valid:
		return r.Overlap.Message
	case r.Compliance.ViolationDays == 0:
		// Last-day usage is within quota but a window anchored mid-stay
		// is not: history rolling out of the window cannot rescue days
		// already spent over the limit.
		return "Part of this trip would exceed the 90-day allowance mid-stay."
	default:
		return fmt.Sprintf("This trip would exceed the 90-day allowance by %d days (%d days used in the window ending %s).",
			r.Compliance.ViolationDays, r.Compliance.TotalDaysUsed, rng.End.Format("Jan 2, 2006"))
	}
}
