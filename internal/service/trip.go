// Package service contains the business logic for the Schengen Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations — and no window arithmetic either: that belongs to the
// schengen package, which services feed with trip snapshots.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
	"github.com/pkordes/schengen-planner/backend/internal/repo"
	"github.com/pkordes/schengen-planner/backend/internal/schengen"
)

// TripService implements business logic for Trip operations. Every write
// runs the overlap guard against the full trip set, so two trips can never
// be persisted covering the same calendar day.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules and
// domain.ErrConflict if the dates overlap an existing trip.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip = normalizeTrip(trip)

	if err := s.guardOverlap(ctx, trip.Range(), uuid.Nil); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips in chronological order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and updates an existing trip. The trip being edited is
// excluded from the overlap guard so it never conflicts with itself.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	trip = normalizeTrip(trip)

	if err := s.guardOverlap(ctx, trip.Range(), trip.ID); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// OccupiedDates returns one entry per calendar day covered by any trip,
// with provenance, for the calendar UI to grey out.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) OccupiedDates(ctx context.Context) ([]schengen.OccupiedDate, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.OccupiedDates: %w", err)
	}
	occupied := schengen.OccupiedDates(trips)
	if occupied == nil {
		return []schengen.OccupiedDate{}, nil
	}
	return occupied, nil
}

// guardOverlap loads the current trip set and rejects the candidate range
// if it collides with any trip other than excludeID.
func (s *TripService) guardOverlap(ctx context.Context, candidate domain.DateRange, excludeID uuid.UUID) error {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if result := schengen.ValidateDateRange(candidate, trips, excludeID); !result.Valid {
		return fmt.Errorf("%w: %s", domain.ErrConflict, result.Message)
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Country must be non-empty (whitespace-only is rejected).
//   - Both dates are required; a trip is a completed selection by the time
//     it reaches persistence.
//   - EndDate must not be before StartDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Country) == "" {
		return fmt.Errorf("%w: country is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}

// normalizeTrip truncates dates to date-only granularity and recomputes the
// derived day count. Whatever value the client sent for Days is discarded —
// the dates are the source of truth.
func normalizeTrip(trip domain.Trip) domain.Trip {
	trip.StartDate = domain.DateOnly(trip.StartDate)
	trip.EndDate = domain.DateOnly(trip.EndDate)
	trip.Days = trip.DurationDays()
	trip.Country = strings.TrimSpace(trip.Country)
	return trip
}
