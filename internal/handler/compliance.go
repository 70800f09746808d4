package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
	"github.com/pkordes/schengen-planner/backend/internal/schengen"
)

// validateTripRequest is the JSON body for POST /compliance/validate.
// Any two of start_date, end_date, and days determine the proposal.
type validateTripRequest struct {
	Country   string `json:"country"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
}

// ValidateTrip handles POST /compliance/validate: the what-if check the UI
// runs while the user is picking dates for a new trip.
func (s *Server) ValidateTrip(w http.ResponseWriter, r *http.Request) {
	var body validateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	proposed := schengen.ProposedTrip{Country: body.Country, Days: body.Days}
	var ok bool
	if proposed.Start, ok = parseOptionalDate(w, "start_date", body.StartDate); !ok {
		return
	}
	if proposed.End, ok = parseOptionalDate(w, "end_date", body.EndDate); !ok {
		return
	}

	result, err := s.compliance.ValidateTrip(r.Context(), proposed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetStatus handles GET /compliance/status?date=YYYY-MM-DD.
// The date defaults to today.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	ref, ok := queryDate(w, r, "date", time.Now())
	if !ok {
		return
	}

	result, err := s.compliance.Status(r.Context(), ref)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetSafePeriods handles GET /compliance/safe-periods?from=YYYY-MM-DD.
// The scan start defaults to today.
func (s *Server) GetSafePeriods(w http.ResponseWriter, r *http.Request) {
	from, ok := queryDate(w, r, "from", time.Now())
	if !ok {
		return
	}

	periods, err := s.compliance.SafePeriods(r.Context(), from)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, periods)
}

// GetAlternatives handles GET /compliance/alternatives?start=&end=&count=.
// It returns up to count valid ranges of the same duration near the
// requested (rejected) range. count defaults to 3 and is capped at 10.
func (s *Server) GetAlternatives(w http.ResponseWriter, r *http.Request) {
	start, ok := queryDate(w, r, "start", time.Time{})
	if !ok {
		return
	}
	end, ok := queryDate(w, r, "end", time.Time{})
	if !ok {
		return
	}

	count := 3
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeBadRequest(w, "count must be a positive integer")
			return
		}
		count = n
	}
	if count > 10 {
		count = 10
	}

	alts, err := s.compliance.Alternatives(r.Context(), domain.DateRange{Start: start, End: end}, count)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, alts)
}

// queryDate parses an optional YYYY-MM-DD query parameter, falling back to
// fallback when absent. A present-but-malformed value gets a 400.
func queryDate(w http.ResponseWriter, r *http.Request, name string, fallback time.Time) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		writeBadRequest(w, name+" must be a YYYY-MM-DD date")
		return time.Time{}, false
	}
	return t, true
}
