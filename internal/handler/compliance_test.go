package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/schengen-planner/backend/internal/domain"
	"github.com/pkordes/schengen-planner/backend/internal/handler"
	"github.com/pkordes/schengen-planner/backend/internal/schengen"
)

// mockComplianceServicer is a test double for handler.ComplianceServicer.
type mockComplianceServicer struct {
	status       func(ctx context.Context, ref time.Time) (schengen.ComplianceResult, error)
	validateTrip func(ctx context.Context, proposed schengen.ProposedTrip) (schengen.FutureTripResult, error)
	safePeriods  func(ctx context.Context, from time.Time) ([]schengen.SafePeriod, error)
	alternatives func(ctx context.Context, requested domain.DateRange, count int) ([]domain.DateRange, error)
}

func (m *mockComplianceServicer) Status(ctx context.Context, ref time.Time) (schengen.ComplianceResult, error) {
	return m.status(ctx, ref)
}
func (m *mockComplianceServicer) ValidateTrip(ctx context.Context, p schengen.ProposedTrip) (schengen.FutureTripResult, error) {
	return m.validateTrip(ctx, p)
}
func (m *mockComplianceServicer) SafePeriods(ctx context.Context, from time.Time) ([]schengen.SafePeriod, error) {
	return m.safePeriods(ctx, from)
}
func (m *mockComplianceServicer) Alternatives(ctx context.Context, r domain.DateRange, count int) ([]domain.DateRange, error) {
	return m.alternatives(ctx, r, count)
}

// compile-time check: mockComplianceServicer must satisfy handler.ComplianceServicer.
var _ handler.ComplianceServicer = (*mockComplianceServicer)(nil)

// ---- POST /compliance/validate ---------------------------------------------

func TestValidateTrip_200_Valid(t *testing.T) {
	svc := &mockComplianceServicer{
		validateTrip: func(_ context.Context, p schengen.ProposedTrip) (schengen.FutureTripResult, error) {
			assert.Equal(t, "Italy", p.Country)
			assert.Equal(t, date(2024, 6, 1), p.Start)
			assert.Equal(t, 7, p.Days)
			return schengen.FutureTripResult{Valid: true, Message: "ok"}, nil
		},
	}

	body := jsonBody(t, map[string]any{"country": "Italy", "start_date": "2024-06-01", "days": 7})
	rec := doJSON(t, newHTTPHandler(nil, svc), http.MethodPost, "/compliance/validate", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp schengen.FutureTripResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Valid)
}

func TestValidateTrip_200_QuotaViolationIsNotAnError(t *testing.T) {
	// Quota violations are normal outcomes: the endpoint answers 200 with
	// the structured result, never an error status.
	svc := &mockComplianceServicer{
		validateTrip: func(_ context.Context, _ schengen.ProposedTrip) (schengen.FutureTripResult, error) {
			return schengen.FutureTripResult{
				Valid: false,
				Compliance: schengen.ComplianceResult{
					ViolationDays: 3,
					TotalDaysUsed: 93,
				},
				Recommendations: []schengen.Recommendation{
					{Severity: schengen.SeverityWarning, Message: "Shorten the trip"},
				},
			}, nil
		},
	}

	body := jsonBody(t, map[string]any{"country": "Italy", "start_date": "2024-06-01", "days": 10})
	rec := doJSON(t, newHTTPHandler(nil, svc), http.MethodPost, "/compliance/validate", body)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp schengen.FutureTripResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, 3, resp.Compliance.ViolationDays)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, schengen.SeverityWarning, resp.Recommendations[0].Severity)
}

func TestValidateTrip_422_Underdetermined(t *testing.T) {
	svc := &mockComplianceServicer{
		validateTrip: func(_ context.Context, _ schengen.ProposedTrip) (schengen.FutureTripResult, error) {
			return schengen.FutureTripResult{}, fmt.Errorf("%w: provide two of start date, end date, and days", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"country": "Italy"})
	rec := doJSON(t, newHTTPHandler(nil, svc), http.MethodPost, "/compliance/validate", body)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestValidateTrip_400_MalformedBody(t *testing.T) {
	svc := &mockComplianceServicer{}

	rec := doJSON(t, newHTTPHandler(nil, svc), http.MethodPost, "/compliance/validate",
		jsonBodyRaw("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /compliance/status ------------------------------------------------

func TestGetStatus_200_WithExplicitDate(t *testing.T) {
	svc := &mockComplianceServicer{
		status: func(_ context.Context, ref time.Time) (schengen.ComplianceResult, error) {
			assert.Equal(t, date(2024, 6, 1), ref)
			return schengen.ComplianceResult{Compliant: true, TotalDaysUsed: 42, ReferenceDate: ref}, nil
		},
	}

	rec := doJSON(t, newHTTPHandler(nil, svc), http.MethodGet, "/compliance/status?date=2024-06-01", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp schengen.ComplianceResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 42, resp.TotalDaysUsed)
}

func TestGetStatus_200_DefaultsToToday(t *testing.T) {
	var captured time.Time
	svc := &mockComplianceServicer{
		status: func(_ context.Context, ref time.Time) (schengen.ComplianceResult, error) {
			captured = ref
			return schengen.ComplianceResult{}, nil
		},
	}

	rec := doJSON(t, newHTTPHandler(nil, svc), http.MethodGet, "/compliance/status", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.WithinDuration(t, time.Now(), captured, time.Minute)
}

func TestGetStatus_400_BadDate(t *testing.T) {
	svc := &mockComplianceServicer{}

	rec := doJSON(t, newHTTPHandler(nil, svc), http.MethodGet, "/compliance/status?date=tomorrow", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /compliance/safe-periods ------------------------------------------

func TestGetSafePeriods_200(t *testing.T) {
	svc := &mockComplianceServicer{
		safePeriods: func(_ context.Context, from time.Time) ([]schengen.SafePeriod, error) {
			assert.Equal(t, date(2024, 6, 1), from)
			return []schengen.SafePeriod{
				{Start: date(2024, 8, 28), End: date(2024, 12, 13), MaxDuration: 45},
			}, nil
		},
	}

	rec := doJSON(t, newHTTPHandler(nil, svc), http.MethodGet, "/compliance/safe-periods?from=2024-06-01", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []schengen.SafePeriod
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 45, resp[0].MaxDuration)
}

// ---- GET /compliance/alternatives ------------------------------------------

func TestGetAlternatives_200(t *testing.T) {
	svc := &mockComplianceServicer{
		alternatives: func(_ context.Context, requested domain.DateRange, count int) ([]domain.DateRange, error) {
			assert.Equal(t, date(2024, 6, 10), requested.Start)
			assert.Equal(t, 2, count)
			return []domain.DateRange{
				{Start: date(2024, 6, 16), End: date(2024, 6, 18)},
				{Start: date(2024, 6, 17), End: date(2024, 6, 19)},
			}, nil
		},
	}

	rec := doJSON(t, newHTTPHandler(nil, svc),
		http.MethodGet, "/compliance/alternatives?start=2024-06-10&end=2024-06-12&count=2", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.DateRange
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestGetAlternatives_CapsCount(t *testing.T) {
	svc := &mockComplianceServicer{
		alternatives: func(_ context.Context, _ domain.DateRange, count int) ([]domain.DateRange, error) {
			assert.Equal(t, 10, count)
			return []domain.DateRange{}, nil
		},
	}

	rec := doJSON(t, newHTTPHandler(nil, svc),
		http.MethodGet, "/compliance/alternatives?start=2024-06-10&end=2024-06-12&count=500", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetAlternatives_400_BadCount(t *testing.T) {
	svc := &mockComplianceServicer{}

	rec := doJSON(t, newHTTPHandler(nil, svc),
		http.MethodGet, "/compliance/alternatives?start=2024-06-10&end=2024-06-12&count=zero", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
