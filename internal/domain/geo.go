package domain

import "math"

// EarthRadiusNm is the mean radius of Earth in nautical miles.
const EarthRadiusNm = 3440.065

// Position is a WGS-84 latitude/longitude coordinate pair in degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceNm returns the great-circle distance between two points in nautical
// miles using the haversine formula. It is symmetric, zero for identical
// points, and never negative. NaN coordinates propagate NaN; validating input
// is the caller's responsibility.
func DistanceNm(a, b Position) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLon*sinLon

	return 2 * EarthRadiusNm * math.Asin(math.Sqrt(h))
}

func degToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}
