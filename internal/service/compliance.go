package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
	"github.com/pkordes/schengen-planner/backend/internal/repo"
	"github.com/pkordes/schengen-planner/backend/internal/schengen"
)

// ComplianceService exposes the travel-compliance engine over the stored
// trip set. It holds no state of its own: every call takes a fresh snapshot
// from the repo and hands it to the pure functions in the schengen package,
// so results are always consistent with the database at call time.
type ComplianceService struct {
	repo repo.TripRepo
}

// NewComplianceService constructs a ComplianceService backed by the provided TripRepo.
func NewComplianceService(r repo.TripRepo) *ComplianceService {
	return &ComplianceService{repo: r}
}

// Status evaluates the 90/180 rule at the given reference date.
func (s *ComplianceService) Status(ctx context.Context, ref time.Time) (schengen.ComplianceResult, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return schengen.ComplianceResult{}, fmt.Errorf("service.ComplianceService.Status: %w", err)
	}
	return schengen.Evaluate(trips, ref), nil
}

// ValidateTrip answers whether the proposed trip can be taken: overlap
// check, rolling-window quota check, and recommendations when invalid.
// Returns domain.ErrValidation (wrapped) when the proposal's dates cannot
// be resolved.
func (s *ComplianceService) ValidateTrip(ctx context.Context, proposed schengen.ProposedTrip) (schengen.FutureTripResult, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return schengen.FutureTripResult{}, fmt.Errorf("service.ComplianceService.ValidateTrip: %w", err)
	}
	result, err := schengen.ValidateFutureTrip(trips, proposed)
	if err != nil {
		return schengen.FutureTripResult{}, fmt.Errorf("service.ComplianceService.ValidateTrip: %w", err)
	}
	return result, nil
}

// SafePeriods enumerates upcoming periods in which a compliant trip can
// start, scanning forward from the given date.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ComplianceService) SafePeriods(ctx context.Context, from time.Time) ([]schengen.SafePeriod, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ComplianceService.SafePeriods: %w", err)
	}
	periods := schengen.SafeTravelPeriods(trips, from)
	if periods == nil {
		return []schengen.SafePeriod{}, nil
	}
	return periods, nil
}

// Alternatives finds up to count valid same-duration ranges near a rejected
// candidate range. Returns domain.ErrValidation if the range is incomplete.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ComplianceService) Alternatives(ctx context.Context, requested domain.DateRange, count int) ([]domain.DateRange, error) {
	if !requested.IsComplete() {
		return nil, fmt.Errorf("service.ComplianceService.Alternatives: %w: start_date and end_date are required", domain.ErrValidation)
	}
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ComplianceService.Alternatives: %w", err)
	}
	alts := schengen.AlternativeDates(trips, requested, count)
	if alts == nil {
		return []domain.DateRange{}, nil
	}
	return alts, nil
}
