// Command validate performs integrity checks across the engine's static
// lookup tables and the mock data fixtures: aircraft specs, scenario tables,
// policy constants, a worked degradation example, and fixture consistency
// against a fresh engine run.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -requests-json data/mock/diversion_requests_260602.json \
//	  [-briefs-json data/mock/decision_briefs_260602.json]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/aeroops/diversion-engine/internal/domain"
	"github.com/jonboulle/clockwork"
)

var scenarioKeys = []string{
	domain.ScenarioNormal,
	domain.ScenarioEngineFailure,
	domain.ScenarioDecompression,
	domain.ScenarioHydraulicFailure,
	domain.ScenarioMedicalEmergency,
	domain.ScenarioSevereWeather,
	domain.ScenarioFuelLeak,
}

var families = []domain.AircraftFamily{
	domain.FamilyWideBody,
	domain.FamilyFlyByWire,
	domain.FamilyNarrowBody,
	domain.FamilyRegional,
}

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	requestsJSON := flag.String("requests-json", "", "path to diversion-request JSON fixture")
	briefsJSON := flag.String("briefs-json", "", "optional path to decision-brief JSON fixture for cross-checking")
	flag.Parse()

	if *requestsJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*requestsJSON, *briefsJSON); code != 0 {
		os.Exit(code)
	}
}

func run(requestsPath, briefsPath string) int {
	// Fix the clock to match genmock so GeneratedAt comparisons hold.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.June, 2, 11, 40, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Diversion Engine Integrity Validation ===")
	fmt.Println()

	catalog := domain.DefaultCatalog()
	policy := domain.DefaultPolicy()
	engine := domain.NewEngine(catalog, policy, slog.New(slog.DiscardHandler))

	requests, err := loadJSON[domain.DiversionRequest](requestsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load request fixture: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSpecs(catalog),
		validateScenarios(catalog),
		validatePolicy(policy),
		validateWorkedExample(catalog, policy),
		validateFixture(engine, requests),
	}

	if briefsPath != "" {
		briefs, err := loadJSON[domain.DecisionBrief](briefsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load brief fixture: %v\n", err)
			return 1
		}
		phases = append(phases, validateBriefParity(engine, requests, briefs))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Fixture: %d requests\n", len(requests))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ── Phase 1: Aircraft Specs ──
// Every spec must carry positive performance figures and a recognized family,
// and the generic wide-body fallback must resolve.

func validateSpecs(catalog *domain.Catalog) *phase {
	p := &phase{name: "Phase 1: Aircraft Specs"}

	validFamily := map[domain.AircraftFamily]bool{}
	for _, f := range families {
		validFamily[f] = true
	}

	types := []string{"B777", "B787", "B747", "A330", "A350", "A380", "B737", "A320", "E190", "CRJ9", domain.GenericWideBodyType}
	for _, typeKey := range types {
		spec, known := catalog.SpecForType(typeKey)
		if !known {
			p.errorf("%s: not found in spec table", typeKey)
			continue
		}
		if !validFamily[spec.Family] {
			p.errorf("%s: unrecognized family %q", typeKey, spec.Family)
		}
		if spec.MaxFuelKg <= 0 || spec.NormalCruiseBurnKgPerHr <= 0 || spec.NormalCruiseSpeedKt <= 0 {
			p.errorf("%s: non-positive fuel/burn/speed figures", typeKey)
		}
		if spec.NormalCruiseAltitudeFt > spec.ServiceCeilingFt {
			p.errorf("%s: cruise altitude %g above service ceiling %g", typeKey, spec.NormalCruiseAltitudeFt, spec.ServiceCeilingFt)
		}
	}

	if fallback, _ := catalog.SpecForType("UNKNOWN-TYPE"); fallback.TypeKey != domain.GenericWideBodyType {
		p.errorf("unknown type resolved to %q, expected %q", fallback.TypeKey, domain.GenericWideBodyType)
	}

	return p
}

// ── Phase 2: Scenario Tables ──
// Every family must carry the full scenario set; multipliers must be >= 1
// with "normal" exactly 1; engine-failure severity must order fly-by-wire <
// wide-body < narrow-body < regional.

func validateScenarios(catalog *domain.Catalog) *phase {
	p := &phase{name: "Phase 2: Scenario Tables"}

	for _, family := range families {
		for _, key := range scenarioKeys {
			sc, known := catalog.ScenarioFor(family, key)
			if !known {
				p.errorf("%s/%s: missing from table", family, key)
				continue
			}
			if sc.Name != key {
				p.errorf("%s/%s: name mismatch %q", family, key, sc.Name)
			}
			if key == domain.ScenarioNormal && sc.FuelBurnMultiplier != 1.0 {
				p.errorf("%s/normal: multiplier %g, expected 1.0", family, sc.FuelBurnMultiplier)
			}
			if sc.FuelBurnMultiplier < 1.0 {
				p.errorf("%s/%s: multiplier %g below 1.0", family, key, sc.FuelBurnMultiplier)
			}
			if sc.SpeedReductionKt < 0 {
				p.errorf("%s/%s: negative speed reduction", family, key)
			}
		}
	}

	// Engine-failure burn multipliers track excess thrust, worst for regionals.
	mult := map[domain.AircraftFamily]float64{}
	for _, family := range families {
		sc, _ := catalog.ScenarioFor(family, domain.ScenarioEngineFailure)
		mult[family] = sc.FuelBurnMultiplier
	}
	if !(mult[domain.FamilyFlyByWire] < mult[domain.FamilyWideBody] &&
		mult[domain.FamilyWideBody] < mult[domain.FamilyNarrowBody] &&
		mult[domain.FamilyNarrowBody] < mult[domain.FamilyRegional]) {
		p.errorf("engine-failure multipliers not ordered fbw < wide < narrow < regional: %v", mult)
	}

	// Fuel leak imposes no altitude restriction; engine failure always does.
	for _, family := range families {
		if sc, _ := catalog.ScenarioFor(family, domain.ScenarioFuelLeak); sc.AltitudeRestrictionFt != nil {
			p.errorf("%s/fuelLeak: unexpected altitude restriction %g", family, *sc.AltitudeRestrictionFt)
		}
		if sc, _ := catalog.ScenarioFor(family, domain.ScenarioEngineFailure); sc.AltitudeRestrictionFt == nil {
			p.errorf("%s/engineFailure: missing altitude restriction", family)
		}
	}

	// Descent penalties are positive and ordered by aircraft weight class.
	wide := catalog.DescentPenaltyKgPer1000Ft(domain.FamilyWideBody)
	fbw := catalog.DescentPenaltyKgPer1000Ft(domain.FamilyFlyByWire)
	narrow := catalog.DescentPenaltyKgPer1000Ft(domain.FamilyNarrowBody)
	regional := catalog.DescentPenaltyKgPer1000Ft(domain.FamilyRegional)
	if !(wide > fbw && fbw > narrow && narrow > regional && regional > 0) {
		p.errorf("descent penalties not ordered wide > fbw > narrow > regional > 0: %g/%g/%g/%g", wide, fbw, narrow, regional)
	}

	return p
}

// ── Phase 3: Policy Constants ──

func validatePolicy(policy domain.Policy) *phase {
	p := &phase{name: "Phase 3: Policy Constants"}

	if err := policy.Validate(); err != nil {
		p.errorf("policy validation: %v", err)
	}
	if s := policy.Weights.Sum(); math.Abs(s-1.0) > 0.001 {
		p.errorf("rank weights sum to %g, expected 1.0", s)
	}
	if policy.MinControllableSpeedKt <= 0 {
		p.errorf("non-positive minimum controllable speed: %g", policy.MinControllableSpeedKt)
	}
	if policy.ApproachAltitudeFt <= 0 {
		p.errorf("non-positive approach altitude: %g", policy.ApproachAltitudeFt)
	}
	return p
}

// ── Phase 4: Worked Example ──
// B777 engine failure at cruise. The degraded figures are fixed by the tables:
// 480-40 kt, 2800*1.35 kg/hr, drift-down to 25000 ft, (41000-25000)/1000*150
// kg descent penalty.

func validateWorkedExample(catalog *domain.Catalog, policy domain.Policy) *phase {
	p := &phase{name: "Phase 4: Worked Example (B777 engineFailure)"}

	spec, known := catalog.SpecForType("B777")
	if !known {
		p.errorf("B777 spec missing")
		return p
	}
	scenario, known := catalog.ScenarioFor(spec.Family, domain.ScenarioEngineFailure)
	if !known {
		p.errorf("widebody engineFailure scenario missing")
		return p
	}

	fs := domain.FlightState{
		AltitudeFt:      41000,
		SpeedKt:         480,
		FuelRemainingKg: 75000,
		Position:        domain.Position{Lat: 55.0, Lon: -25.0},
	}
	degraded := catalog.Degrade(spec, scenario, fs, policy)

	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"speed_kt", degraded.SpeedKt, 440},
		{"fuel_burn_kg_per_hr", degraded.FuelBurnKgPerHr, 3780},
		{"altitude_ft", degraded.AltitudeFt, 25000},
		{"descent_fuel_penalty_kg", degraded.DescentFuelPenaltyKg, 2400},
	}
	for _, c := range checks {
		if !floatEq(c.got, c.expected) {
			p.errorf("%s: expected %g, got %g", c.name, c.expected, c.got)
		}
	}
	if !degraded.Controllable {
		p.errorf("degraded envelope unexpectedly uncontrollable")
	}

	// Keflavik from the mid-Atlantic must be comfortably feasible.
	bikf := domain.DiversionCandidate{
		Ident:         "BIKF",
		Position:      domain.Position{Lat: 63.99, Lon: -22.61},
		RunwayLengthM: 3054,
		MedicalTier:   domain.MedicalLevel2,
		Open24h:       true,
	}
	eval := catalog.EvaluateCandidate(fs.Position, bikf, spec, degraded, policy)
	if !eval.Feasible {
		p.errorf("BIKF evaluation infeasible: required %.0f kg over %.0f nm", eval.RequiredFuelKg, eval.DistanceNm)
	}
	if eval.RequiredFuelKg > policy.FuelFeasibilityCeiling*spec.MaxFuelKg {
		p.errorf("BIKF required fuel %.0f exceeds ceiling %.0f", eval.RequiredFuelKg, policy.FuelFeasibilityCeiling*spec.MaxFuelKg)
	}

	return p
}

// ── Phase 5: Fixture Integrity ──
// Re-runs the engine over every fixture request and checks structural
// invariants: known types, evaluation order, ranked sorted descending, risk
// bounds.

func validateFixture(engine *domain.Engine, requests []domain.DiversionRequest) *phase {
	p := &phase{name: "Phase 5: Fixture Integrity"}

	seen := map[string]bool{}
	for i, req := range requests {
		if req.FlightID == "" {
			p.errorf("request %d: missing flight_id", i)
			continue
		}
		if seen[req.FlightID] {
			p.errorf("request %d: duplicate flight_id %q", i, req.FlightID)
		}
		seen[req.FlightID] = true

		assessment := engine.EvaluateDiversionOptions(req.AircraftType, req.ScenarioType, req.FlightState, req.Candidates)
		if assessment.SpecFallback {
			p.errorf("%s: fixture uses unknown aircraft type %q", req.FlightID, req.AircraftType)
		}
		if assessment.ScenarioFallback {
			p.errorf("%s: fixture uses unknown scenario type %q", req.FlightID, req.ScenarioType)
		}
		if len(assessment.Evaluations) != len(req.Candidates) {
			p.errorf("%s: %d evaluations for %d candidates", req.FlightID, len(assessment.Evaluations), len(req.Candidates))
		}
		for j, ev := range assessment.Evaluations {
			if ev.Ident != req.Candidates[j].Ident {
				p.errorf("%s: evaluation %d out of input order: %q vs %q", req.FlightID, j, ev.Ident, req.Candidates[j].Ident)
			}
		}
		for j := 1; j < len(assessment.Ranked); j++ {
			if assessment.Ranked[j].Composite > assessment.Ranked[j-1].Composite {
				p.errorf("%s: ranked list not descending at %d", req.FlightID, j)
			}
		}

		risk := engine.AssessDiversionRisk(req.FlightID, req.Route, req.AircraftType, req.Risk)
		if risk.Probability < 0 || risk.Probability > 1 {
			p.errorf("%s: probability %g outside [0, 1]", req.FlightID, risk.Probability)
		}
		if risk.Confidence < 0 || risk.Confidence > 1 {
			p.errorf("%s: confidence %g outside [0, 1]", req.FlightID, risk.Confidence)
		}
		if len(risk.RecommendedActions) == 0 {
			p.errorf("%s: no recommended actions", req.FlightID)
		}
	}

	return p
}

// ── Phase 6: Brief Parity ──
// Re-runs the engine and compares against the generated brief fixture.

func validateBriefParity(engine *domain.Engine, requests []domain.DiversionRequest, briefs []domain.DecisionBrief) *phase {
	p := &phase{name: "Phase 6: Brief Parity (fixture vs engine)"}

	byFlight := map[string]*domain.DecisionBrief{}
	for i := range briefs {
		byFlight[briefs[i].FlightID] = &briefs[i]
	}

	for _, req := range requests {
		brief, ok := byFlight[req.FlightID]
		if !ok {
			p.errorf("%s: missing from brief fixture", req.FlightID)
			continue
		}

		assessment := engine.EvaluateDiversionOptions(req.AircraftType, req.ScenarioType, req.FlightState, req.Candidates)
		risk := engine.AssessDiversionRisk(req.FlightID, req.Route, req.AircraftType, req.Risk)

		if !floatEq(brief.Risk.Probability, risk.Probability) {
			p.errorf("%s: probability: fixture %g, engine %g", req.FlightID, brief.Risk.Probability, risk.Probability)
		}
		if !floatEq(brief.Risk.Confidence, risk.Confidence) {
			p.errorf("%s: confidence: fixture %g, engine %g", req.FlightID, brief.Risk.Confidence, risk.Confidence)
		}
		if len(brief.Assessment.Ranked) != len(assessment.Ranked) {
			p.errorf("%s: ranked count: fixture %d, engine %d", req.FlightID, len(brief.Assessment.Ranked), len(assessment.Ranked))
			continue
		}
		for j := range assessment.Ranked {
			if brief.Assessment.Ranked[j].Ident != assessment.Ranked[j].Ident {
				p.errorf("%s: ranked[%d]: fixture %q, engine %q", req.FlightID, j, brief.Assessment.Ranked[j].Ident, assessment.Ranked[j].Ident)
			}
		}
	}

	return p
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
