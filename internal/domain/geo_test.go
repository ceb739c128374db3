package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	geoJFK = Position{Lat: 40.6413, Lon: -73.7781}
	geoLHR = Position{Lat: 51.4700, Lon: -0.4543}
	geoSFO = Position{Lat: 37.6213, Lon: -122.3790}
	geoKEF = Position{Lat: 63.9850, Lon: -22.6056}
)

func TestDistanceNm_KnownPairs(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Position
		expected float64
		delta    float64
	}{
		{"JFK to LHR", geoJFK, geoLHR, 2990, 30},
		{"SFO to KEF", geoSFO, geoKEF, 3655, 40},
		{"one degree of latitude", Position{Lat: 0, Lon: 0}, Position{Lat: 1, Lon: 0}, 60.04, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DistanceNm(tt.a, tt.b), tt.delta)
		})
	}
}

func TestDistanceNm_Symmetric(t *testing.T) {
	pairs := [][2]Position{
		{geoJFK, geoLHR},
		{geoSFO, geoKEF},
		{{Lat: -33.95, Lon: 151.18}, {Lat: 35.55, Lon: 139.78}},
	}

	for _, p := range pairs {
		assert.Equal(t, DistanceNm(p[0], p[1]), DistanceNm(p[1], p[0]))
	}
}

func TestDistanceNm_IdenticalPoints(t *testing.T) {
	assert.Zero(t, DistanceNm(geoJFK, geoJFK))
	assert.Zero(t, DistanceNm(Position{}, Position{}))
}

func TestDistanceNm_NeverNegative(t *testing.T) {
	points := []Position{
		{Lat: 90, Lon: 0},
		{Lat: -90, Lon: 0},
		{Lat: 0, Lon: 180},
		{Lat: 0, Lon: -180},
		geoJFK,
	}
	for _, a := range points {
		for _, b := range points {
			assert.GreaterOrEqual(t, DistanceNm(a, b), 0.0)
		}
	}
}

func TestDistanceNm_AntipodalIsFinite(t *testing.T) {
	d := DistanceNm(Position{Lat: 0, Lon: 0}, Position{Lat: 0, Lon: 180})
	assert.False(t, math.IsNaN(d))
	assert.InDelta(t, math.Pi*EarthRadiusNm, d, 1)
}

func TestDistanceNm_NaNPropagates(t *testing.T) {
	d := DistanceNm(Position{Lat: math.NaN(), Lon: 0}, geoJFK)
	assert.True(t, math.IsNaN(d))
}
