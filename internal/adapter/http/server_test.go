package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpadapter "github.com/aeroops/diversion-engine/internal/adapter/http"
	"github.com/aeroops/diversion-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error) *httpadapter.Server {
	engine := domain.NewEngine(domain.DefaultCatalog(), domain.DefaultPolicy(), slog.New(slog.DiscardHandler))
	return httpadapter.NewServer(":0", engine, &mockReadiness{err: readyErr}, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("not ready yet"))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestDiversionOptions(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()

	body := `{
		"aircraft_type": "B777",
		"scenario_type": "engineFailure",
		"flight_state": {
			"altitude_ft": 41000,
			"speed_kt": 480,
			"fuel_remaining_kg": 75000,
			"position": {"lat": 55.0, "lon": -25.0}
		},
		"candidates": [
			{"ident": "BIKF", "position": {"lat": 63.99, "lon": -22.61}, "runway_length_m": 3054, "medical_tier": "level2"},
			{"ident": "EINN", "position": {"lat": 52.70, "lon": -8.92}, "runway_length_m": 3199, "medical_tier": "level2"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/diversion/options", strings.NewReader(body))

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var assessment domain.DiversionAssessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assessment))
	assert.Equal(t, "B777", assessment.AircraftType)
	assert.Equal(t, "engineFailure", assessment.ScenarioType)
	assert.Equal(t, 440.0, assessment.Performance.SpeedKt)
	assert.Len(t, assessment.Evaluations, 2)
	assert.NotEmpty(t, assessment.Ranked)
}

func TestDiversionOptions_BadJSON(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/diversion/options", strings.NewReader("{not json"))

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "invalid request body")
}

func TestDiversionRisk(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()

	body := `{
		"flight_id": "UA932",
		"route": "KJFK-EGLL",
		"aircraft_type": "B777",
		"risk": {
			"weather_score": 4,
			"technical_flag": true,
			"fuel_status": 0.8,
			"time_of_day_hour": 14
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/diversion/risk", strings.NewReader(body))

	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.DiversionRiskReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "UA932", report.FlightID)
	assert.False(t, report.FallbackUsed)
	assert.GreaterOrEqual(t, report.Probability, 0.0)
	assert.LessOrEqual(t, report.Probability, 1.0)
	assert.NotEmpty(t, report.RecommendedActions)
}

func TestDiversionRisk_BadJSON(t *testing.T) {
	srv := newTestServer(nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/diversion/risk", strings.NewReader(""))

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
