package domain

import (
	"fmt"
	"math"
)

// RankWeights defines the relative importance of each suitability criterion.
// All weights must sum to 1.0 (±0.001 tolerance).
type RankWeights struct {
	Distance   float64 `json:"distance"`
	FuelMargin float64 `json:"fuel_margin"`
	Medical    float64 `json:"medical"`
	Runway     float64 `json:"runway"`
}

// DefaultRankWeights returns the standard weight distribution.
func DefaultRankWeights() RankWeights {
	return RankWeights{
		Distance:   0.30,
		FuelMargin: 0.30,
		Medical:    0.20,
		Runway:     0.20,
	}
}

// Sum returns the total of all weights.
func (w RankWeights) Sum() float64 {
	return w.Distance + w.FuelMargin + w.Medical + w.Runway
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w RankWeights) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("rank weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Distance, w.FuelMargin, w.Medical, w.Runway} {
		if v < 0 {
			return fmt.Errorf("negative rank weight: %f", v)
		}
	}
	return nil
}

// Policy holds the tunable safety and ranking constants. The defaults are the
// operational values; tests and deployments may tighten or relax them.
type Policy struct {
	// FuelFeasibilityCeiling caps required fuel at this fraction of the
	// aircraft's maximum fuel capacity. A safety margin, not a physical limit.
	FuelFeasibilityCeiling float64

	// ReserveMinutes of burn at the degraded rate added atop point-to-point
	// fuel need before declaring feasibility.
	ReserveMinutes float64

	// RunwayAdequateM is the runway length scoring 100; longer runways are
	// capped, shorter ones scale linearly.
	RunwayAdequateM float64

	// MinControllableSpeedKt floors the degraded envelope's controllability
	// check. Below it the aircraft is treated as unable to maintain
	// controlled flight and no candidate is feasible.
	MinControllableSpeedKt float64

	// ApproachAltitudeFt is the altitude the approach descent penalty is
	// measured down to.
	ApproachAltitudeFt float64

	Weights RankWeights
}

// DefaultPolicy returns the standard operational policy.
func DefaultPolicy() Policy {
	return Policy{
		FuelFeasibilityCeiling: 0.80,
		ReserveMinutes:         30,
		RunwayAdequateM:        3000,
		MinControllableSpeedKt: 80,
		ApproachAltitudeFt:     3000,
		Weights:                DefaultRankWeights(),
	}
}

// Validate checks the policy constants are in their documented ranges.
func (p Policy) Validate() error {
	if p.FuelFeasibilityCeiling <= 0 || p.FuelFeasibilityCeiling > 1 {
		return fmt.Errorf("fuel feasibility ceiling %.2f outside (0, 1]", p.FuelFeasibilityCeiling)
	}
	if p.ReserveMinutes < 0 {
		return fmt.Errorf("negative reserve minutes: %f", p.ReserveMinutes)
	}
	if p.RunwayAdequateM <= 0 {
		return fmt.Errorf("runway adequate threshold must be positive, got %f", p.RunwayAdequateM)
	}
	return p.Weights.Validate()
}
