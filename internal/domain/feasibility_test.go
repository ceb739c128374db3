package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func controllableEnvelope(speedKt, burnKgPerHr, altitudeFt float64) DegradedPerformance {
	return DegradedPerformance{
		AltitudeFt:      altitudeFt,
		SpeedKt:         speedKt,
		FuelBurnKgPerHr: burnKgPerHr,
		Controllable:    true,
	}
}

func TestEvaluateCandidate_RequiredFuelFormula(t *testing.T) {
	catalog := DefaultCatalog()
	policy := DefaultPolicy()
	spec, _ := catalog.SpecForType("B777")

	pos := Position{Lat: 60, Lon: -20}
	cand := DiversionCandidate{
		Ident:    "BIKF",
		Position: Position{Lat: 60, Lon: -20.5}, // same latitude, short hop
	}
	degraded := controllableEnvelope(440, 3780, 25000)

	eval := catalog.EvaluateCandidate(pos, cand, spec, degraded, policy)

	distance := DistanceNm(pos, cand.Position)
	flightTime := distance / 440
	want := 3780*flightTime + // cruise burn
		(25000-policy.ApproachAltitudeFt)/1000*150 + // approach descent penalty
		3780*0.5 // 30-minute reserve

	assert.Equal(t, "BIKF", eval.Ident)
	assert.InDelta(t, distance, eval.DistanceNm, 1e-9)
	assert.InDelta(t, flightTime, eval.FlightTimeHr, 1e-9)
	assert.InDelta(t, want, eval.RequiredFuelKg, 1e-6)
	assert.True(t, eval.Feasible)
}

// 300 nm away, required fuel well under the ceiling: feasible.
func TestEvaluateCandidate_NearbyAirportFeasible(t *testing.T) {
	catalog := DefaultCatalog()
	policy := DefaultPolicy()
	spec, _ := catalog.SpecForType("B777")
	require.Equal(t, 126206.0, spec.MaxFuelKg) // ceiling 100964.8 kg

	pos := Position{Lat: 50, Lon: -30}
	cand := DiversionCandidate{Ident: "EINN", Position: Position{Lat: 50, Lon: -22.2}} // ~300 nm
	degraded := controllableEnvelope(440, 3780, 25000)

	eval := catalog.EvaluateCandidate(pos, cand, spec, degraded, policy)

	assert.Less(t, eval.RequiredFuelKg, 45000.0)
	assert.True(t, eval.Feasible)
}

// The feasibility flag must flip exactly at the ceiling.
func TestEvaluateCandidate_FeasibilityBoundaryExact(t *testing.T) {
	catalog := DefaultCatalog()
	policy := DefaultPolicy()
	policy.ApproachAltitudeFt = 0 // isolate the formula
	// 0.5 is exact in binary, so ceiling arithmetic introduces no rounding
	// and the boundary can be probed exactly.
	policy.FuelFeasibilityCeiling = 0.5

	degraded := DegradedPerformance{
		AltitudeFt:      0,
		SpeedKt:         100,
		FuelBurnKgPerHr: 1000,
		Controllable:    true,
	}
	pos := Position{Lat: 0, Lon: 0}
	cand := DiversionCandidate{Ident: "TEST", Position: Position{Lat: 1, Lon: 0}}

	eval := catalog.EvaluateCandidate(pos, cand, AircraftClassSpec{Family: FamilyWideBody, MaxFuelKg: 1000}, degraded, policy)
	required := eval.RequiredFuelKg

	tests := []struct {
		name      string
		maxFuelKg float64
		feasible  bool
	}{
		{"required equals ceiling", 2 * required, true},
		{"required just over ceiling", 2*required - 1, false},
		{"required far under ceiling", 20 * required, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := AircraftClassSpec{Family: FamilyWideBody, MaxFuelKg: tt.maxFuelKg}
			got := catalog.EvaluateCandidate(pos, cand, spec, degraded, policy)
			assert.Equal(t, tt.feasible, got.Feasible)
		})
	}
}

func TestEvaluateCandidate_UncontrollableEnvelopeInfeasible(t *testing.T) {
	catalog := DefaultCatalog()
	spec, _ := catalog.SpecForType("B777")

	degraded := DegradedPerformance{SpeedKt: 40, FuelBurnKgPerHr: 3000, Controllable: false}
	pos := Position{Lat: 50, Lon: -30}
	cand := DiversionCandidate{Ident: "EINN", Position: Position{Lat: 52.7, Lon: -8.92}}

	eval := catalog.EvaluateCandidate(pos, cand, spec, degraded, DefaultPolicy())

	assert.False(t, eval.Feasible)
	assert.Zero(t, eval.RequiredFuelKg)
	assert.Positive(t, eval.DistanceNm, "distance is still reported")
}

func TestEvaluateCandidate_NoApproachPenaltyAtLowAltitude(t *testing.T) {
	catalog := DefaultCatalog()
	policy := DefaultPolicy()
	spec, _ := catalog.SpecForType("B737")

	degraded := controllableEnvelope(400, 2600, policy.ApproachAltitudeFt)
	pos := Position{Lat: 40, Lon: -74}
	cand := DiversionCandidate{Ident: "KPHL", Position: Position{Lat: 39.87, Lon: -75.24}}

	eval := catalog.EvaluateCandidate(pos, cand, spec, degraded, policy)

	want := 2600*eval.FlightTimeHr + 2600*0.5
	assert.InDelta(t, want, eval.RequiredFuelKg, 1e-9)
}

func TestMedicalTier_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tier MedicalTier
		json string
	}{
		{"none", MedicalNone, `"none"`},
		{"basic", MedicalBasic, `"basic"`},
		{"level2", MedicalLevel2, `"level2"`},
		{"level1 trauma", MedicalLevel1Trauma, `"level1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.tier)
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(data))

			var tier MedicalTier
			require.NoError(t, json.Unmarshal(data, &tier))
			assert.Equal(t, tt.tier, tier)
		})
	}
}

func TestMedicalTier_UnknownValueRejected(t *testing.T) {
	var tier MedicalTier
	err := json.Unmarshal([]byte(`"field-hospital"`), &tier)
	assert.Error(t, err)
}
