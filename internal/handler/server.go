// Package handler implements the HTTP handlers for the Schengen Planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, compliance.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
	"github.com/pkordes/schengen-planner/backend/internal/schengen"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
	OccupiedDates(ctx context.Context) ([]schengen.OccupiedDate, error)
}

// ComplianceServicer defines the engine operations the compliance handlers
// depend on.
type ComplianceServicer interface {
	Status(ctx context.Context, ref time.Time) (schengen.ComplianceResult, error)
	ValidateTrip(ctx context.Context, proposed schengen.ProposedTrip) (schengen.FutureTripResult, error)
	SafePeriods(ctx context.Context, from time.Time) ([]schengen.SafePeriod, error)
	Alternatives(ctx context.Context, requested domain.DateRange, count int) ([]domain.DateRange, error)
}

// Server holds the handler dependencies for all API endpoints.
// Wire it in main.go via Routes().
type Server struct {
	trips      TripServicer
	compliance ComplianceServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, compliance ComplianceServicer) *Server {
	return &Server{trips: trips, compliance: compliance}
}

// Routes returns the chi router with every endpoint mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)
		r.Get("/occupied", s.GetOccupiedDates)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
		})
	})

	r.Route("/compliance", func(r chi.Router) {
		r.Post("/validate", s.ValidateTrip)
		r.Get("/status", s.GetStatus)
		r.Get("/safe-periods", s.GetSafePeriods)
		r.Get("/alternatives", s.GetAlternatives)
	})

	return r
}
