package domain

// Scenario keys recognized by the engine. Unknown keys fall back to
// ScenarioNormal.
const (
	ScenarioNormal           = "normal"
	ScenarioEngineFailure    = "engineFailure"
	ScenarioDecompression    = "decompression"
	ScenarioHydraulicFailure = "hydraulicFailure"
	ScenarioMedicalEmergency = "medicalEmergency"
	ScenarioSevereWeather    = "severeWeather"
	ScenarioFuelLeak         = "fuelLeak"
)

// EmergencyScenario describes how an emergency degrades cruise performance.
// AltitudeRestrictionFt is nil when the scenario imposes no ceiling change.
type EmergencyScenario struct {
	Name                  string   `json:"name"`
	FuelBurnMultiplier    float64  `json:"fuel_burn_multiplier"`
	SpeedReductionKt      float64  `json:"speed_reduction_kt"`
	AltitudeRestrictionFt *float64 `json:"altitude_restriction_ft,omitempty"`
	Description           string   `json:"description,omitempty"`
	DiversionRequired     bool     `json:"diversion_required"`
	TimeToStabilizeMin    float64  `json:"time_to_stabilize_min"`
}

func altFt(v float64) *float64 { return &v }

// defaultScenarios builds the per-family scenario tables. The wide-body table
// is the canonical one; narrow-body and regional types drop restrictions a bit
// lower (less excess thrust), while fly-by-wire types carry slightly smaller
// burn multipliers because envelope protection compensates for asymmetric
// thrust and partial hydraulic loss.
func defaultScenarios() map[AircraftFamily]map[string]EmergencyScenario {
	wideBody := map[string]EmergencyScenario{
		ScenarioNormal: {
			Name:               ScenarioNormal,
			FuelBurnMultiplier: 1.0,
			Description:        "No emergency in progress.",
		},
		ScenarioEngineFailure: {
			Name:                  ScenarioEngineFailure,
			FuelBurnMultiplier:    1.35,
			SpeedReductionKt:      40,
			AltitudeRestrictionFt: altFt(25000),
			Description:           "Single engine shut down; drift-down to single-engine ceiling.",
			DiversionRequired:     true,
			TimeToStabilizeMin:    10,
		},
		ScenarioDecompression: {
			Name:                  ScenarioDecompression,
			FuelBurnMultiplier:    1.20,
			SpeedReductionKt:      30,
			AltitudeRestrictionFt: altFt(10000),
			Description:           "Cabin pressure loss; emergency descent to breathable altitude.",
			DiversionRequired:     true,
			TimeToStabilizeMin:    5,
		},
		ScenarioHydraulicFailure: {
			Name:               ScenarioHydraulicFailure,
			FuelBurnMultiplier: 1.15,
			SpeedReductionKt:   25,
			Description:        "Partial hydraulic loss; degraded control authority, no ceiling change.",
			DiversionRequired:  true,
			TimeToStabilizeMin: 15,
		},
		ScenarioMedicalEmergency: {
			Name:               ScenarioMedicalEmergency,
			FuelBurnMultiplier: 1.05,
			Description:        "Passenger medical event; aircraft performance nominal, expedite landing.",
			DiversionRequired:  true,
			TimeToStabilizeMin: 5,
		},
		ScenarioSevereWeather: {
			Name:                  ScenarioSevereWeather,
			FuelBurnMultiplier:    1.25,
			SpeedReductionKt:      35,
			AltitudeRestrictionFt: altFt(31000),
			Description:           "Severe turbulence or convective activity; penetration speed and lower cruise.",
			TimeToStabilizeMin:    20,
		},
		ScenarioFuelLeak: {
			Name:               ScenarioFuelLeak,
			FuelBurnMultiplier: 1.60,
			SpeedReductionKt:   20,
			Description:        "Confirmed fuel leak; effective burn includes lost fuel.",
			DiversionRequired:  true,
			TimeToStabilizeMin: 10,
		},
	}

	flyByWire := tuneTable(wideBody, map[string]float64{
		ScenarioEngineFailure:    1.30,
		ScenarioHydraulicFailure: 1.10,
	})

	narrowBody := tuneTable(wideBody, map[string]float64{
		ScenarioEngineFailure: 1.40,
	})
	narrowBody[ScenarioEngineFailure] = withRestriction(narrowBody[ScenarioEngineFailure], 22000)

	regional := tuneTable(wideBody, map[string]float64{
		ScenarioEngineFailure: 1.45,
	})
	regional[ScenarioEngineFailure] = withRestriction(regional[ScenarioEngineFailure], 20000)

	return map[AircraftFamily]map[string]EmergencyScenario{
		FamilyWideBody:   wideBody,
		FamilyFlyByWire:  flyByWire,
		FamilyNarrowBody: narrowBody,
		FamilyRegional:   regional,
	}
}

// tuneTable copies a scenario table, overriding fuel-burn multipliers for the
// given keys.
func tuneTable(base map[string]EmergencyScenario, multipliers map[string]float64) map[string]EmergencyScenario {
	table := make(map[string]EmergencyScenario, len(base))
	for key, sc := range base {
		if m, ok := multipliers[key]; ok {
			sc.FuelBurnMultiplier = m
		}
		table[key] = sc
	}
	return table
}

func withRestriction(sc EmergencyScenario, ft float64) EmergencyScenario {
	sc.AltitudeRestrictionFt = altFt(ft)
	return sc
}
