package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
)

// tripRequest is the JSON body for creating or updating a trip.
// Dates cross the wire as YYYY-MM-DD strings; days is optional and always
// recomputed server-side.
type tripRequest struct {
	Country   string `json:"country"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Notes     string `json:"notes"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}

	created, err := s.trips.Create(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	trip, ok := decodeTrip(w, r)
	if !ok {
		return
	}
	trip.ID = id

	updated, err := s.trips.Update(r.Context(), trip)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetOccupiedDates handles GET /trips/occupied. The calendar UI uses this to
// grey out days and explain which trip claims each one.
func (s *Server) GetOccupiedDates(w http.ResponseWriter, r *http.Request) {
	occupied, err := s.trips.OccupiedDates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, occupied)
}

// --- mapping helpers --------------------------------------------------------

// decodeTrip parses and converts the request body into a domain.Trip,
// writing a 400 response and returning ok=false on malformed input.
// Missing dates pass through as zero times for the service layer to judge.
func decodeTrip(w http.ResponseWriter, r *http.Request) (domain.Trip, bool) {
	var body tripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return domain.Trip{}, false
	}

	trip := domain.Trip{Country: body.Country, Notes: body.Notes}

	var ok bool
	if trip.StartDate, ok = parseOptionalDate(w, "start_date", body.StartDate); !ok {
		return domain.Trip{}, false
	}
	if trip.EndDate, ok = parseOptionalDate(w, "end_date", body.EndDate); !ok {
		return domain.Trip{}, false
	}
	return trip, true
}

// parseOptionalDate parses a YYYY-MM-DD string, treating "" as unset.
func parseOptionalDate(w http.ResponseWriter, field, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		writeBadRequest(w, field+" must be a YYYY-MM-DD date")
		return time.Time{}, false
	}
	return t, true
}

// pathID parses the {id} URL parameter, writing a 400 response on failure.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeBadRequest(w, "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
