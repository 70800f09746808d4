package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
	"github.com/pkordes/schengen-planner/backend/internal/handler"
	"github.com/pkordes/schengen-planner/backend/internal/schengen"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list          func(ctx context.Context) ([]domain.Trip, error)
	update        func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete        func(ctx context.Context, id uuid.UUID) error
	occupiedDates func(ctx context.Context) ([]schengen.OccupiedDate, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripServicer) OccupiedDates(ctx context.Context) ([]schengen.OccupiedDate, error) {
	return m.occupiedDates(ctx)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the chi router.
// This mirrors exactly how main.go wires it in production.
func newHTTPHandler(trips handler.TripServicer, compliance handler.ComplianceServicer) http.Handler {
	return handler.NewServer(trips, compliance).Routes()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        uuid.New(),
		Country:   "France",
		StartDate: date(2024, 6, 1),
		EndDate:   date(2024, 6, 15),
		Days:      15,
		Notes:     "test notes",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func jsonBodyRaw(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body *bytes.Buffer) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		create: func(_ context.Context, got domain.Trip) (domain.Trip, error) {
			assert.Equal(t, "France", got.Country)
			assert.Equal(t, date(2024, 6, 1), got.StartDate)
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"country":    "France",
		"start_date": "2024-06-01",
		"end_date":   "2024-06-15",
	})
	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodPost, "/trips", body)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, 15, resp.Days)
}

func TestCreateTrip_400_MalformedDate(t *testing.T) {
	svc := &mockTripServicer{}

	body := jsonBody(t, map[string]any{
		"country":    "France",
		"start_date": "June 1st",
	})
	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodPost, "/trips", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: country is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"country": "", "start_date": "2024-06-01", "end_date": "2024-06-05"})
	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodPost, "/trips", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "country is required", resp.Error.Message)
}

func TestCreateTrip_409_Overlap(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: These dates are already used by your France trip (Jun 1, 2024 to Jun 15, 2024).", domain.ErrConflict)
		},
	}

	body := jsonBody(t, map[string]any{"country": "Germany", "start_date": "2024-06-10", "end_date": "2024-06-20"})
	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodPost, "/trips", body)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "date_conflict", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "France")
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	trips := []domain.Trip{tripFixture(), tripFixture()}
	svc := &mockTripServicer{
		list: func(_ context.Context) ([]domain.Trip, error) { return trips, nil },
	}

	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodGet, "/trips", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

// ---- GET /trips/{id} -------------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, fixture.ID, id)
			return fixture, nil
		},
	}

	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodGet, "/trips/"+fixture.ID.String(), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodGet, "/trips/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrip_400_BadUUID(t *testing.T) {
	svc := &mockTripServicer{}

	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodGet, "/trips/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- PUT /trips/{id} -------------------------------------------------------

func TestUpdateTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		update: func(_ context.Context, got domain.Trip) (domain.Trip, error) {
			// The path ID wins over anything in the body.
			assert.Equal(t, fixture.ID, got.ID)
			return got, nil
		},
	}

	body := jsonBody(t, map[string]any{"country": "Spain", "start_date": "2024-07-01", "end_date": "2024-07-10"})
	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodPut, "/trips/"+fixture.ID.String(), body)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	body := jsonBody(t, map[string]any{"country": "Spain", "start_date": "2024-07-01", "end_date": "2024-07-10"})
	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodPut, "/trips/"+uuid.NewString(), body)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /trips/{id} ----------------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return nil },
	}

	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodDelete, "/trips/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodDelete, "/trips/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- GET /trips/occupied ---------------------------------------------------

func TestGetOccupiedDates_200(t *testing.T) {
	tripID := uuid.New()
	svc := &mockTripServicer{
		occupiedDates: func(_ context.Context) ([]schengen.OccupiedDate, error) {
			return []schengen.OccupiedDate{
				{Date: date(2024, 6, 1), TripID: tripID, Country: "France"},
				{Date: date(2024, 6, 2), TripID: tripID, Country: "France"},
			}, nil
		},
	}

	rec := doJSON(t, newHTTPHandler(svc, nil), http.MethodGet, "/trips/occupied", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []schengen.OccupiedDate
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "France", resp[0].Country)
}
