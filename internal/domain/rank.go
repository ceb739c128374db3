package domain

import (
	"math"
	"sort"
)

// SubScores are the per-criterion components of a suitability score, each in
// [0, 100] with higher being better.
type SubScores struct {
	Distance   float64 `json:"distance"`
	FuelMargin float64 `json:"fuel_margin"`
	Medical    float64 `json:"medical"`
	Runway     float64 `json:"runway"`
}

// SuitabilityScore is the composite ranking of one feasible candidate.
type SuitabilityScore struct {
	Ident      string    `json:"ident"`
	Composite  float64   `json:"composite"`
	Sub        SubScores `json:"sub_scores"`
	DistanceNm float64   `json:"distance_nm"`

	medicalTier MedicalTier
}

// medicalScore maps the ordinal capability tiers onto 0-100.
var medicalScore = map[MedicalTier]float64{
	MedicalNone:         0,
	MedicalBasic:        40,
	MedicalLevel2:       70,
	MedicalLevel1Trauma: 100,
}

// Rank scores and orders feasible evaluations by operational suitability.
// Infeasible candidates are excluded, not zero-scored. The composite is a
// fixed linear combination of the normalized sub-scores; ties break on shorter
// distance, then higher medical tier, and remaining equals retain input order
// (stable sort) so results are deterministic.
func Rank(evals []DiversionEvaluation, cands []DiversionCandidate, spec AircraftClassSpec, policy Policy) []SuitabilityScore {
	byIdent := make(map[string]DiversionCandidate, len(cands))
	for _, c := range cands {
		byIdent[c.Ident] = c
	}

	var longest float64
	for _, e := range evals {
		if e.Feasible && e.DistanceNm > longest {
			longest = e.DistanceNm
		}
	}

	usableFuel := policy.FuelFeasibilityCeiling * spec.MaxFuelKg
	w := policy.Weights

	scores := make([]SuitabilityScore, 0, len(evals))
	for _, e := range evals {
		if !e.Feasible {
			continue
		}
		cand := byIdent[e.Ident]

		sub := SubScores{
			Distance:   distanceScore(e.DistanceNm, longest),
			FuelMargin: fuelMarginScore(e.RequiredFuelKg, usableFuel),
			Medical:    medicalScore[cand.MedicalTier],
			Runway:     runwayScore(cand.RunwayLengthM, policy.RunwayAdequateM),
		}
		composite := w.Distance*sub.Distance + w.FuelMargin*sub.FuelMargin +
			w.Medical*sub.Medical + w.Runway*sub.Runway

		scores = append(scores, SuitabilityScore{
			Ident:       e.Ident,
			Composite:   clamp(composite, 0, 100),
			Sub:         sub,
			DistanceNm:  e.DistanceNm,
			medicalTier: cand.MedicalTier,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Composite != scores[j].Composite {
			return scores[i].Composite > scores[j].Composite
		}
		if scores[i].DistanceNm != scores[j].DistanceNm {
			return scores[i].DistanceNm < scores[j].DistanceNm
		}
		return scores[i].medicalTier > scores[j].medicalTier
	})

	return scores
}

// distanceScore normalizes against the longest feasible candidate; shorter is
// better. A lone zero-distance candidate scores 100.
func distanceScore(distanceNm, longestNm float64) float64 {
	if longestNm <= 0 {
		return 100
	}
	return clamp((1-distanceNm/longestNm)*100, 0, 100)
}

// fuelMarginScore is the unused fraction of the usable (ceiling-capped) fuel.
func fuelMarginScore(requiredKg, usableKg float64) float64 {
	if usableKg <= 0 {
		return 0
	}
	return clamp((usableKg-requiredKg)/usableKg*100, 0, 100)
}

// runwayScore scales linearly up to the fully-adequate threshold and caps
// there; a longer runway buys nothing extra.
func runwayScore(lengthM, adequateM float64) float64 {
	return clamp(lengthM/adequateM*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
