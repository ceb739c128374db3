package domain

import (
	"log/slog"
	"sync"
)

// maxEvalWorkers bounds the per-call goroutine fan-out for candidate
// evaluation.
const maxEvalWorkers = 8

// DiversionAssessment is the full output of the performance/feasibility/
// ranking pipeline for one request.
type DiversionAssessment struct {
	AircraftType string              `json:"aircraft_type"`
	Family       AircraftFamily      `json:"family"`
	ScenarioType string              `json:"scenario_type"`
	Performance  DegradedPerformance `json:"performance"`

	// Evaluations holds every candidate in input order, feasible or not;
	// Ranked holds only the feasible ones, best first. An empty Ranked with a
	// non-empty candidate list signals "no feasible diversion" upward.
	Evaluations []DiversionEvaluation `json:"evaluations"`
	Ranked      []SuitabilityScore    `json:"ranked"`

	// SpecFallback and ScenarioFallback flag results computed from the
	// generic wide-body spec or the "normal" scenario because the requested
	// key was unknown.
	SpecFallback     bool `json:"spec_fallback"`
	ScenarioFallback bool `json:"scenario_fallback"`
}

// Engine evaluates diversion options and predicts diversion risk. All methods
// are pure functions of their arguments plus the immutable catalog and policy,
// so an Engine is safe for concurrent use.
type Engine struct {
	catalog *Catalog
	policy  Policy
	logger  *slog.Logger
}

// NewEngine creates an Engine over the given lookup tables and policy.
func NewEngine(catalog *Catalog, policy Policy, logger *slog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		policy:  policy,
		logger:  logger,
	}
}

// EvaluateDiversionOptions recomputes the degraded envelope for the scenario,
// evaluates every candidate airport against it concurrently, and ranks the
// feasible ones by operational suitability. Unknown aircraft or scenario keys
// fall back to documented defaults and are flagged, never errors.
func (e *Engine) EvaluateDiversionOptions(aircraftType, scenarioType string, fs FlightState, candidates []DiversionCandidate) DiversionAssessment {
	spec, specKnown := e.catalog.SpecForType(aircraftType)
	if !specKnown {
		e.logger.Warn("fallback used: unknown aircraft type",
			"aircraft_type", aircraftType,
			"fallback", GenericWideBodyType,
		)
	}

	scenario, scenarioKnown := e.catalog.ScenarioFor(spec.Family, scenarioType)
	if !scenarioKnown {
		e.logger.Warn("fallback used: unknown scenario type",
			"scenario_type", scenarioType,
			"fallback", ScenarioNormal,
		)
	}

	degraded := e.catalog.Degrade(spec, scenario, fs, e.policy)
	if !degraded.Controllable {
		e.logger.Warn("degraded envelope below minimum controllable airspeed",
			"aircraft_type", aircraftType,
			"scenario_type", scenarioType,
			"speed_kt", degraded.SpeedKt,
		)
	}

	evaluations := e.evaluateAll(fs.Position, candidates, spec, degraded)

	return DiversionAssessment{
		AircraftType:     aircraftType,
		Family:           spec.Family,
		ScenarioType:     scenario.Name,
		Performance:      degraded,
		Evaluations:      evaluations,
		Ranked:           Rank(evaluations, candidates, spec, e.policy),
		SpecFallback:     !specKnown,
		ScenarioFallback: !scenarioKnown,
	}
}

// evaluateAll fans candidate evaluation out to a bounded worker group.
// Results are written by index, so output order always matches input order
// regardless of scheduling.
func (e *Engine) evaluateAll(pos Position, candidates []DiversionCandidate, spec AircraftClassSpec, degraded DegradedPerformance) []DiversionEvaluation {
	evaluations := make([]DiversionEvaluation, len(candidates))
	if len(candidates) == 0 {
		return evaluations
	}

	workers := min(maxEvalWorkers, len(candidates))
	indices := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range indices {
				evaluations[i] = e.catalog.EvaluateCandidate(pos, candidates[i], spec, degraded, e.policy)
			}
		}()
	}

	for i := range candidates {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return evaluations
}

// AssessDiversionRisk runs the risk pipeline for a flight.
func (e *Engine) AssessDiversionRisk(flightID, route, aircraftType string, factors RiskFactors) DiversionRiskReport {
	report := e.catalog.PredictDiversionRisk(flightID, route, aircraftType, factors)
	if report.FallbackUsed {
		e.logger.Warn("fallback used: route or aircraft type absent from historical tables",
			"flight_id", flightID,
			"route", route,
			"aircraft_type", aircraftType,
		)
	}
	return report
}

// Policy returns the engine's policy constants.
func (e *Engine) Policy() Policy { return e.policy }

// Catalog returns the engine's lookup tables.
func (e *Engine) Catalog() *Catalog { return e.catalog }
