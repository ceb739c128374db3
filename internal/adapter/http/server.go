package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/aeroops/diversion-engine/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the synchronous assessment API alongside health, readiness,
// and metrics endpoints. The Kafka pipeline is the primary ingest path; the
// HTTP API serves ad-hoc queries from dispatch tooling.
type Server struct {
	httpServer *http.Server
	engine     *domain.Engine
	logger     *slog.Logger
}

// NewServer creates an HTTP server with assessment, health, readiness, and
// metrics routes.
func NewServer(addr string, engine *domain.Engine, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine: engine,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/diversion/options", s.handleOptions)
	mux.HandleFunc("POST /v1/diversion/risk", s.handleRisk)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// optionsRequest is the body of POST /v1/diversion/options.
type optionsRequest struct {
	AircraftType string                      `json:"aircraft_type"`
	ScenarioType string                      `json:"scenario_type"`
	FlightState  domain.FlightState          `json:"flight_state"`
	Candidates   []domain.DiversionCandidate `json:"candidates"`
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	var req optionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	assessment := s.engine.EvaluateDiversionOptions(req.AircraftType, req.ScenarioType, req.FlightState, req.Candidates)
	writeJSON(w, http.StatusOK, assessment)
}

// riskRequest is the body of POST /v1/diversion/risk.
type riskRequest struct {
	FlightID     string             `json:"flight_id"`
	Route        string             `json:"route"`
	AircraftType string             `json:"aircraft_type"`
	Risk         domain.RiskFactors `json:"risk"`
}

func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return
	}

	report := s.engine.AssessDiversionRisk(req.FlightID, req.Route, req.AircraftType, req.Risk)
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
