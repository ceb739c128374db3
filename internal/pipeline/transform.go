package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aeroops/diversion-engine/internal/domain"
	"github.com/aeroops/diversion-engine/internal/observability"
)

// BriefTransformer implements Transformer by running both engine pipelines
// over an incoming diversion request and serializing the resulting decision
// brief. When the request carries no candidate airports and an airport source
// is configured, candidates are resolved from the database first.
type BriefTransformer struct {
	engine   *domain.Engine
	airports domain.AirportSource
	radiusNm float64
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a BriefTransformer. Pass a nil airport source to
// disable candidate resolution; requests must then carry their own candidates.
func NewTransformer(engine *domain.Engine, airports domain.AirportSource, radiusNm float64, logger *slog.Logger, metrics *observability.Metrics) *BriefTransformer {
	return &BriefTransformer{
		engine:   engine,
		airports: airports,
		radiusNm: radiusNm,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *BriefTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	req, err := domain.ParseDiversionRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	candidates := req.Candidates
	if len(candidates) == 0 && t.airports != nil {
		candidates, err = t.resolveCandidates(ctx, req)
		if err != nil {
			return domain.OutputEvent{}, err
		}
	}

	start := time.Now()
	assessment := t.engine.EvaluateDiversionOptions(req.AircraftType, req.ScenarioType, req.FlightState, candidates)
	t.metrics.EvaluationDuration.Observe(time.Since(start).Seconds())
	t.metrics.CandidateCount.Observe(float64(len(candidates)))
	if assessment.SpecFallback {
		t.metrics.SpecFallbacks.Inc()
	}
	if assessment.ScenarioFallback {
		t.metrics.ScenarioFallbacks.Inc()
	}
	if len(assessment.Evaluations) > 0 && len(assessment.Ranked) == 0 {
		t.metrics.NoFeasibleOption.Inc()
		t.logger.Warn("no feasible diversion option",
			"flight_id", req.FlightID,
			"scenario_type", req.ScenarioType,
			"candidates", len(candidates),
		)
	}

	risk := t.engine.AssessDiversionRisk(req.FlightID, req.Route, req.AircraftType, req.Risk)
	t.metrics.RiskProbability.Observe(risk.Probability)

	brief := domain.NewDecisionBrief(req, assessment, risk)
	value, err := json.Marshal(brief)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("marshal decision brief: %w", err)
	}

	return domain.OutputEvent{
		Key:   []byte(brief.FlightID),
		Value: value,
		Headers: map[string]string{
			"flight_id":     brief.FlightID,
			"scenario_type": assessment.ScenarioType,
			"generated_at":  brief.GeneratedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

// resolveCandidates queries the airport database around the aircraft's
// position.
func (t *BriefTransformer) resolveCandidates(ctx context.Context, req domain.DiversionRequest) ([]domain.DiversionCandidate, error) {
	start := time.Now()
	candidates, err := t.airports.NearbyCandidates(ctx, req.FlightState.Position, t.radiusNm)
	t.metrics.AirportAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		t.metrics.AirportLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("resolve candidates for %s: %w", req.FlightID, err)
	}
	if len(candidates) == 0 {
		t.metrics.AirportLookups.WithLabelValues("empty").Inc()
		t.logger.Warn("no airports within search radius",
			"flight_id", req.FlightID,
			"radius_nm", t.radiusNm,
		)
		return nil, nil
	}
	t.metrics.AirportLookups.WithLabelValues("success").Inc()
	return candidates, nil
}
