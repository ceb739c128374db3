package domain

import (
	"encoding/json"
	"fmt"
)

// MedicalTier is the ordinal medical capability of a diversion airport.
type MedicalTier int

const (
	MedicalNone MedicalTier = iota
	MedicalBasic
	MedicalLevel2
	MedicalLevel1Trauma
)

var medicalTierNames = map[MedicalTier]string{
	MedicalNone:         "none",
	MedicalBasic:        "basic",
	MedicalLevel2:       "level2",
	MedicalLevel1Trauma: "level1",
}

func (t MedicalTier) String() string {
	if name, ok := medicalTierNames[t]; ok {
		return name
	}
	return "none"
}

// MarshalJSON writes the tier as its string name.
func (t MedicalTier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts the string names used by the airport-database
// collaborator. Unknown names are an error; absent fields default to "none".
func (t *MedicalTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("medical tier: %w", err)
	}
	for tier, name := range medicalTierNames {
		if name == s {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("medical tier: unknown value %q", s)
}

// DiversionCandidate is a candidate diversion airport supplied by the caller
// or resolved from the airport database.
type DiversionCandidate struct {
	Ident         string      `json:"ident"`
	Position      Position    `json:"position"`
	RunwayLengthM float64     `json:"runway_length_m"`
	MedicalTier   MedicalTier `json:"medical_tier"`
	Open24h       bool        `json:"open_24h"`
}

// DiversionEvaluation is the fuel-and-distance assessment of one candidate
// against a degraded performance envelope.
type DiversionEvaluation struct {
	Ident          string  `json:"ident"`
	DistanceNm     float64 `json:"distance_nm"`
	FlightTimeHr   float64 `json:"flight_time_hr"`
	RequiredFuelKg float64 `json:"required_fuel_kg"`
	Feasible       bool    `json:"feasible"`
}

// EvaluateCandidate computes required fuel and the feasibility flag for one
// candidate. Required fuel is cruise burn over the leg, plus the family's
// descent penalty for the approach descent from the degraded cruise altitude,
// plus a fixed reserve at the degraded burn rate. Feasible means required fuel
// does not exceed the policy ceiling fraction of the aircraft's maximum fuel.
//
// An uncontrollable or non-positive-speed envelope yields an infeasible
// evaluation rather than an error; the distance is still reported.
func (c *Catalog) EvaluateCandidate(pos Position, cand DiversionCandidate, spec AircraftClassSpec, degraded DegradedPerformance, policy Policy) DiversionEvaluation {
	distance := DistanceNm(pos, cand.Position)

	eval := DiversionEvaluation{
		Ident:      cand.Ident,
		DistanceNm: distance,
	}
	if !degraded.Controllable || degraded.SpeedKt <= 0 {
		return eval
	}

	eval.FlightTimeHr = distance / degraded.SpeedKt

	required := degraded.FuelBurnKgPerHr * eval.FlightTimeHr
	if degraded.AltitudeFt > policy.ApproachAltitudeFt {
		required += (degraded.AltitudeFt - policy.ApproachAltitudeFt) / 1000 * c.DescentPenaltyKgPer1000Ft(spec.Family)
	}
	required += degraded.FuelBurnKgPerHr * policy.ReserveMinutes / 60

	eval.RequiredFuelKg = required
	eval.Feasible = required <= policy.FuelFeasibilityCeiling*spec.MaxFuelKg
	return eval
}
