package domain

// RouteStats is the static historical-context block for a route: how many
// similar flights the lookup covers, how many diverted in the last 30 days,
// and the average cost of a diversion on that route. The engine reads these
// tables, it never updates them.
type RouteStats struct {
	SampleCount         int     `json:"sample_count"`
	RecentDiversions    int     `json:"recent_diversions"`
	AvgDiversionCostUSD float64 `json:"avg_diversion_cost_usd"`
}

// defaultRouteStatsFallback is returned for routes absent from the table: a
// small-sample default so callers see the context is thin.
var defaultRouteStatsFallback = RouteStats{
	SampleCount:         12,
	RecentDiversions:    1,
	AvgDiversionCostUSD: 150000,
}

const defaultRiskRate = 0.05 // mid-range rate for unknown route/aircraft keys

func defaultRouteStats() map[string]RouteStats {
	return map[string]RouteStats{
		"KJFK-EGLL": {SampleCount: 420, RecentDiversions: 3, AvgDiversionCostUSD: 185000},
		"KSFO-RJTT": {SampleCount: 310, RecentDiversions: 5, AvgDiversionCostUSD: 240000},
		"KLAX-YSSY": {SampleCount: 180, RecentDiversions: 4, AvgDiversionCostUSD: 310000},
		"KORD-EDDF": {SampleCount: 390, RecentDiversions: 2, AvgDiversionCostUSD: 170000},
		"KSEA-PANC": {SampleCount: 260, RecentDiversions: 6, AvgDiversionCostUSD: 120000},
		"KMIA-SBGR": {SampleCount: 220, RecentDiversions: 3, AvgDiversionCostUSD: 195000},
		"EGLL-OMDB": {SampleCount: 350, RecentDiversions: 2, AvgDiversionCostUSD: 205000},
	}
}

// defaultRouteRisk holds 0-1 historical diversion rates by route. Oceanic and
// high-latitude routes with sparse alternates run higher.
func defaultRouteRisk() map[string]float64 {
	return map[string]float64{
		"KJFK-EGLL": 0.04,
		"KSFO-RJTT": 0.09,
		"KLAX-YSSY": 0.12,
		"KORD-EDDF": 0.03,
		"KSEA-PANC": 0.11,
		"KMIA-SBGR": 0.06,
		"EGLL-OMDB": 0.04,
	}
}

func defaultFamilyRisk() map[AircraftFamily]float64 {
	return map[AircraftFamily]float64{
		FamilyWideBody:   0.04,
		FamilyFlyByWire:  0.03,
		FamilyNarrowBody: 0.05,
		FamilyRegional:   0.07,
	}
}

// defaultKnownRoutes is the allow-list of routes with enough history to raise
// prediction confidence.
func defaultKnownRoutes() map[string]bool {
	return map[string]bool{
		"KJFK-EGLL": true,
		"KSFO-RJTT": true,
		"KORD-EDDF": true,
		"EGLL-OMDB": true,
	}
}

// RouteHistory returns the historical-context block for a route. The second
// return value is false when the small-sample fallback was used.
func (c *Catalog) RouteHistory(route string) (RouteStats, bool) {
	if stats, ok := c.routeStats[route]; ok {
		return stats, true
	}
	return defaultRouteStatsFallback, false
}

// RouteRisk returns the historical diversion rate for a route, or the
// mid-range default for unknown keys.
func (c *Catalog) RouteRisk(route string) float64 {
	if r, ok := c.routeRisk[route]; ok {
		return r
	}
	return defaultRiskRate
}

// AircraftRisk returns the historical incident rate for an aircraft type,
// resolved through its family; unknown types use the mid-range default.
func (c *Catalog) AircraftRisk(aircraftType string) float64 {
	spec, known := c.SpecForType(aircraftType)
	if !known {
		return defaultRiskRate
	}
	if r, ok := c.familyRisk[spec.Family]; ok {
		return r
	}
	return defaultRiskRate
}

// KnownRoute reports whether the route is in the well-known allow-list.
func (c *Catalog) KnownRoute(route string) bool {
	return c.knownRoute[route]
}
