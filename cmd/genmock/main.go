// Command genmock generates mock data fixtures for the engine test suites: a
// raw diversion-request fixture and the corresponding decision briefs. It runs
// the actual domain engine so the transformed output matches real pipeline
// behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -requests-out data/mock/diversion_requests_260602.json \
//	  -briefs-out data/mock/decision_briefs_260602.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aeroops/diversion-engine/internal/domain"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	requestsOut := flag.String("requests-out", "", "output path for raw diversion-request fixture")
	briefsOut := flag.String("briefs-out", "", "output path for transformed decision-brief fixture")
	flag.Parse()

	if *requestsOut == "" || *briefsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -requests-out, -briefs-out")
	}

	// Fix the clock so GeneratedAt timestamps are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.June, 2, 11, 40, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	engine := domain.NewEngine(domain.DefaultCatalog(), domain.DefaultPolicy(), slog.New(slog.DiscardHandler))

	requests := mockRequests()
	briefs := make([]domain.DecisionBrief, 0, len(requests))
	for _, req := range requests {
		assessment := engine.EvaluateDiversionOptions(req.AircraftType, req.ScenarioType, req.FlightState, req.Candidates)
		risk := engine.AssessDiversionRisk(req.FlightID, req.Route, req.AircraftType, req.Risk)
		briefs = append(briefs, domain.NewDecisionBrief(req, assessment, risk))
	}

	if err := writeJSON(*requestsOut, requests); err != nil {
		return fmt.Errorf("writing request fixture: %w", err)
	}
	log.Printf("wrote request fixture: %s (%d requests)", *requestsOut, len(requests))

	if err := writeJSON(*briefsOut, briefs); err != nil {
		return fmt.Errorf("writing brief fixture: %w", err)
	}
	log.Printf("wrote brief fixture: %s", *briefsOut)

	printStats(briefs)
	return nil
}

// mockRequests is the fixture roster: one flight per emergency scenario,
// spanning all four aircraft families and a mix of known and oceanic routes.
func mockRequests() []domain.DiversionRequest {
	return []domain.DiversionRequest{
		{
			FlightID:     "UA932",
			AircraftType: "B777",
			ScenarioType: "engineFailure",
			Route:        "KJFK-EGLL",
			FlightState: domain.FlightState{
				AltitudeFt:      41000,
				SpeedKt:         480,
				FuelRemainingKg: 75723.6,
				Position:        domain.Position{Lat: 55.0, Lon: -25.0},
			},
			Candidates: []domain.DiversionCandidate{
				{Ident: "BIKF", Position: domain.Position{Lat: 63.99, Lon: -22.61}, RunwayLengthM: 3054, MedicalTier: domain.MedicalLevel2, Open24h: true},
				{Ident: "EINN", Position: domain.Position{Lat: 52.70, Lon: -8.92}, RunwayLengthM: 3199, MedicalTier: domain.MedicalLevel2, Open24h: true},
				{Ident: "CYQX", Position: domain.Position{Lat: 48.94, Lon: -54.57}, RunwayLengthM: 3109, MedicalTier: domain.MedicalBasic, Open24h: true},
			},
			Risk: domain.RiskFactors{WeatherScore: 4, TechnicalFlag: true, FuelStatus: 0.6, TimeOfDayHour: 14},
		},
		{
			FlightID:     "DL188",
			AircraftType: "A350",
			ScenarioType: "decompression",
			Route:        "KSFO-RJTT",
			FlightState: domain.FlightState{
				AltitudeFt:      39000,
				SpeedKt:         488,
				FuelRemainingKg: 82000,
				Position:        domain.Position{Lat: 48.0, Lon: -170.0},
			},
			Candidates: []domain.DiversionCandidate{
				{Ident: "PASY", Position: domain.Position{Lat: 52.71, Lon: 174.11}, RunwayLengthM: 3048, MedicalTier: domain.MedicalBasic},
				{Ident: "PACD", Position: domain.Position{Lat: 55.21, Lon: -162.72}, RunwayLengthM: 1920, MedicalTier: domain.MedicalBasic, Open24h: true},
				{Ident: "PANC", Position: domain.Position{Lat: 61.17, Lon: -149.99}, RunwayLengthM: 3322, MedicalTier: domain.MedicalLevel1Trauma, Open24h: true},
			},
			Risk: domain.RiskFactors{
				WeatherScore: 6, TechnicalFlag: true, FuelStatus: 0.55, TimeOfDayHour: 3,
				AdvisoryText: "Severe icing reported FL300-FL360, braking action poor at alternate",
			},
		},
		{
			FlightID:     "AA2411",
			AircraftType: "B737",
			ScenarioType: "medicalEmergency",
			Route:        "KDEN-KLAS",
			FlightState: domain.FlightState{
				AltitudeFt:      37000,
				SpeedKt:         453,
				FuelRemainingKg: 9800,
				Position:        domain.Position{Lat: 38.5, Lon: -108.2},
			},
			Candidates: []domain.DiversionCandidate{
				{Ident: "KGJT", Position: domain.Position{Lat: 39.12, Lon: -108.53}, RunwayLengthM: 3203, MedicalTier: domain.MedicalLevel2, Open24h: true},
				{Ident: "KASE", Position: domain.Position{Lat: 39.22, Lon: -106.87}, RunwayLengthM: 2438, MedicalTier: domain.MedicalBasic},
				{Ident: "KSLC", Position: domain.Position{Lat: 40.79, Lon: -111.98}, RunwayLengthM: 3658, MedicalTier: domain.MedicalLevel1Trauma, Open24h: true},
			},
			Risk: domain.RiskFactors{WeatherScore: 2, MedicalFlag: true, FuelStatus: 0.7, TimeOfDayHour: 16},
		},
		{
			FlightID:     "LH453",
			AircraftType: "A380",
			ScenarioType: "hydraulicFailure",
			Route:        "EGLL-OMDB",
			FlightState: domain.FlightState{
				AltitudeFt:      43000,
				SpeedKt:         488,
				FuelRemainingKg: 190000,
				Position:        domain.Position{Lat: 44.0, Lon: 20.0},
			},
			Candidates: []domain.DiversionCandidate{
				{Ident: "LYBE", Position: domain.Position{Lat: 44.82, Lon: 20.31}, RunwayLengthM: 3400, MedicalTier: domain.MedicalLevel2, Open24h: true},
				{Ident: "LBSF", Position: domain.Position{Lat: 42.70, Lon: 23.41}, RunwayLengthM: 3600, MedicalTier: domain.MedicalLevel2, Open24h: true},
			},
			Risk: domain.RiskFactors{WeatherScore: 1, TechnicalFlag: true, FuelStatus: 0.85, TimeOfDayHour: 10},
		},
		{
			FlightID:     "QF12",
			AircraftType: "B747",
			ScenarioType: "fuelLeak",
			Route:        "KLAX-YSSY",
			FlightState: domain.FlightState{
				AltitudeFt:      36000,
				SpeedKt:         493,
				FuelRemainingKg: 95000,
				Position:        domain.Position{Lat: -5.0, Lon: -155.0},
			},
			Candidates: []domain.DiversionCandidate{
				{Ident: "PHTO", Position: domain.Position{Lat: 19.72, Lon: -155.05}, RunwayLengthM: 2987, MedicalTier: domain.MedicalLevel2, Open24h: true},
				{Ident: "NSTU", Position: domain.Position{Lat: -14.33, Lon: -170.71}, RunwayLengthM: 3048, MedicalTier: domain.MedicalBasic},
				{Ident: "NTAA", Position: domain.Position{Lat: -17.56, Lon: -149.61}, RunwayLengthM: 3420, MedicalTier: domain.MedicalLevel2, Open24h: true},
			},
			Risk: domain.RiskFactors{
				WeatherScore: 3, TechnicalFlag: true, FuelStatus: 0.25, TimeOfDayHour: 23,
				AdvisoryText: "Thunderstorm activity within 30nm of NTAA, expect delay",
			},
		},
		{
			FlightID:     "WN77",
			AircraftType: "E190",
			ScenarioType: "severeWeather",
			Route:        "KSEA-PANC",
			FlightState: domain.FlightState{
				AltitudeFt:      36000,
				SpeedKt:         447,
				FuelRemainingKg: 8100,
				Position:        domain.Position{Lat: 55.3, Lon: -134.0},
			},
			Candidates: []domain.DiversionCandidate{
				{Ident: "PAKT", Position: domain.Position{Lat: 55.36, Lon: -131.71}, RunwayLengthM: 2286, MedicalTier: domain.MedicalBasic, Open24h: true},
				{Ident: "PAJN", Position: domain.Position{Lat: 58.35, Lon: -134.58}, RunwayLengthM: 2576, MedicalTier: domain.MedicalLevel2, Open24h: true},
				{Ident: "PASI", Position: domain.Position{Lat: 57.05, Lon: -135.36}, RunwayLengthM: 1981, MedicalTier: domain.MedicalBasic},
			},
			Risk: domain.RiskFactors{
				WeatherScore: 8, FuelStatus: 0.45, TimeOfDayHour: 5,
				AdvisoryText: "Windshear advisory, snow showers, runway closure possible",
			},
		},
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(briefs []domain.DecisionBrief) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d briefs\n\n", len(briefs))

	var feasible, infeasible, fallbacks int
	tierCounts := map[string]int{}
	for i := range briefs {
		b := &briefs[i]
		for _, ev := range b.Assessment.Evaluations {
			if ev.Feasible {
				feasible++
			} else {
				infeasible++
			}
		}
		if b.Assessment.SpecFallback || b.Assessment.ScenarioFallback || b.Risk.FallbackUsed {
			fallbacks++
		}
		tierCounts[riskTier(b.Risk.Probability)]++

		best := "(none feasible)"
		if len(b.Assessment.Ranked) > 0 {
			best = fmt.Sprintf("%s (composite %.1f, %.0fnm)",
				b.Assessment.Ranked[0].Ident,
				b.Assessment.Ranked[0].Composite,
				b.Assessment.Ranked[0].DistanceNm)
		}
		fmt.Printf("%-8s %-18s best=%-32s p=%.3f conf=%.2f\n",
			b.FlightID, b.Assessment.ScenarioType, best, b.Risk.Probability, b.Risk.Confidence)
	}

	fmt.Printf("\nEvaluations: %d feasible, %d infeasible\n", feasible, infeasible)
	fmt.Printf("Fallbacks: %d\n", fallbacks)
	fmt.Printf("Risk tiers: low=%d, elevated=%d, critical=%d\n",
		tierCounts["low"], tierCounts["elevated"], tierCounts["critical"])
}

func riskTier(p float64) string {
	switch {
	case p > 0.7:
		return "critical"
	case p > 0.4:
		return "elevated"
	default:
		return "low"
	}
}
