package domain

import "math"

// FlightState is the caller-supplied snapshot of the aircraft at the moment
// the emergency is declared.
type FlightState struct {
	AltitudeFt      float64  `json:"altitude_ft"`
	SpeedKt         float64  `json:"speed_kt"`
	FuelRemainingKg float64  `json:"fuel_remaining_kg"`
	Position        Position `json:"position"`
}

// DegradedPerformance is the recomputed envelope after applying a scenario to
// a flight state. Invariants: AltitudeFt never exceeds the restriction,
// FuelRemainingKg is never negative, and FuelBurnKgPerHr is at least the
// unmodified rate whenever the multiplier is >= 1.
type DegradedPerformance struct {
	AltitudeFt           float64 `json:"altitude_ft"`
	SpeedKt              float64 `json:"speed_kt"`
	FuelBurnKgPerHr      float64 `json:"fuel_burn_kg_per_hr"`
	DescentFuelPenaltyKg float64 `json:"descent_fuel_penalty_kg"`
	EfficiencyCreditKg   float64 `json:"efficiency_credit_kg"`
	FuelRemainingKg      float64 `json:"fuel_remaining_kg"`
	EnduranceHr          float64 `json:"endurance_hr"`
	RangeNm              float64 `json:"range_nm"`

	// Controllable is false when the scenario's speed reduction leaves the
	// aircraft below minimum controllable airspeed. The arithmetic speed is
	// still reported so callers see the true degraded figure.
	Controllable bool `json:"controllable"`
}

// Degrade maps an aircraft spec, an emergency scenario, and the current flight
// state to the degraded performance envelope.
func (c *Catalog) Degrade(spec AircraftClassSpec, sc EmergencyScenario, fs FlightState, policy Policy) DegradedPerformance {
	speed := spec.NormalCruiseSpeedKt - sc.SpeedReductionKt
	burn := spec.NormalCruiseBurnKgPerHr * sc.FuelBurnMultiplier

	altitude := fs.AltitudeFt
	if sc.AltitudeRestrictionFt != nil {
		altitude = math.Min(altitude, *sc.AltitudeRestrictionFt)
	}

	var penalty float64
	if altitude < fs.AltitudeFt {
		penalty = (fs.AltitudeFt - altitude) / 1000 * c.DescentPenaltyKgPer1000Ft(spec.Family)
	}
	credit := c.EfficiencyCreditKg(spec.Family, sc.Name)

	fuel := math.Max(0, fs.FuelRemainingKg-penalty+credit)

	var endurance float64
	if burn > 0 {
		endurance = fuel / burn
	}
	rangeNm := math.Max(0, speed*endurance)

	return DegradedPerformance{
		AltitudeFt:           altitude,
		SpeedKt:              speed,
		FuelBurnKgPerHr:      burn,
		DescentFuelPenaltyKg: penalty,
		EfficiencyCreditKg:   credit,
		FuelRemainingKg:      fuel,
		EnduranceHr:          endurance,
		RangeNm:              rangeNm,
		Controllable:         speed >= policy.MinControllableSpeedKt,
	}
}
