package domain

// AircraftFamily groups aircraft types that share emergency-scenario tuning
// and descent-penalty constants.
type AircraftFamily string

const (
	FamilyWideBody   AircraftFamily = "widebody"
	FamilyNarrowBody AircraftFamily = "narrowbody"
	FamilyRegional   AircraftFamily = "regional"
	FamilyFlyByWire  AircraftFamily = "flyByWire"
)

// AircraftClassSpec holds the immutable performance figures for an aircraft
// category. Looked up by aircraft-type string; unknown types fall back to
// GenericWideBodyType.
type AircraftClassSpec struct {
	TypeKey                 string         `json:"type_key"`
	Family                  AircraftFamily `json:"family"`
	MaxFuelKg               float64        `json:"max_fuel_kg"`
	NormalCruiseBurnKgPerHr float64        `json:"normal_cruise_burn_kg_per_hr"`
	NormalCruiseSpeedKt     float64        `json:"normal_cruise_speed_kt"`
	NormalCruiseAltitudeFt  float64        `json:"normal_cruise_altitude_ft"`
	MaxRangeNm              float64        `json:"max_range_nm"`
	ServiceCeilingFt        float64        `json:"service_ceiling_ft"`
}

// GenericWideBodyType is the fallback spec key for unknown aircraft types.
const GenericWideBodyType = "GENERIC-WB"

// Catalog bundles every static lookup table the engine reads: aircraft specs,
// per-family scenario tables, descent penalties, the fly-by-wire efficiency
// credit exceptions, advisory keyword weights, and historical route/aircraft
// statistics. A Catalog is built once at startup and is read-only afterwards,
// so it is safe for concurrent use without locking.
type Catalog struct {
	specs     map[string]AircraftClassSpec
	scenarios map[AircraftFamily]map[string]EmergencyScenario

	// descentPenaltyKg is the fuel cost per 1000 ft of forced descent, keyed
	// by family. Heavier aircraft incur a higher flat penalty.
	descentPenaltyKg map[AircraftFamily]float64

	// efficiencyCreditKg is a named exception table, not a general rule:
	// fly-by-wire families recover a fixed amount of fuel for specific
	// scenario types where envelope protection reduces drag excursions.
	efficiencyCreditKg map[AircraftFamily]map[string]float64

	keywords   []advisoryKeyword
	routeStats map[string]RouteStats
	routeRisk  map[string]float64
	familyRisk map[AircraftFamily]float64
	knownRoute map[string]bool
}

// DefaultCatalog builds the engine's standard lookup tables.
func DefaultCatalog() *Catalog {
	return &Catalog{
		specs:              defaultSpecs(),
		scenarios:          defaultScenarios(),
		descentPenaltyKg:   defaultDescentPenalties(),
		efficiencyCreditKg: defaultEfficiencyCredits(),
		keywords:           defaultKeywords(),
		routeStats:         defaultRouteStats(),
		routeRisk:          defaultRouteRisk(),
		familyRisk:         defaultFamilyRisk(),
		knownRoute:         defaultKnownRoutes(),
	}
}

// SpecForType looks up the class spec for an aircraft type key. The second
// return value is false when the generic wide-body fallback was used.
func (c *Catalog) SpecForType(aircraftType string) (AircraftClassSpec, bool) {
	if spec, ok := c.specs[aircraftType]; ok {
		return spec, true
	}
	return c.specs[GenericWideBodyType], false
}

// ScenarioFor looks up a scenario by key in the family's table. The second
// return value is false when the "normal" fallback was used.
func (c *Catalog) ScenarioFor(family AircraftFamily, key string) (EmergencyScenario, bool) {
	table, ok := c.scenarios[family]
	if !ok {
		table = c.scenarios[FamilyWideBody]
	}
	if sc, ok := table[key]; ok {
		return sc, true
	}
	return table[ScenarioNormal], false
}

// DescentPenaltyKgPer1000Ft returns the family's fuel penalty per 1000 ft of
// forced descent.
func (c *Catalog) DescentPenaltyKgPer1000Ft(family AircraftFamily) float64 {
	if p, ok := c.descentPenaltyKg[family]; ok {
		return p
	}
	return c.descentPenaltyKg[FamilyWideBody]
}

// EfficiencyCreditKg returns the family's fixed fuel credit for a scenario
// key, zero for all pairs outside the exception table.
func (c *Catalog) EfficiencyCreditKg(family AircraftFamily, scenarioKey string) float64 {
	return c.efficiencyCreditKg[family][scenarioKey]
}

func defaultSpecs() map[string]AircraftClassSpec {
	specs := []AircraftClassSpec{
		{TypeKey: "B777", Family: FamilyWideBody, MaxFuelKg: 126206, NormalCruiseBurnKgPerHr: 2800, NormalCruiseSpeedKt: 480, NormalCruiseAltitudeFt: 41000, MaxRangeNm: 7370, ServiceCeilingFt: 43100},
		{TypeKey: "B787", Family: FamilyWideBody, MaxFuelKg: 101456, NormalCruiseBurnKgPerHr: 2400, NormalCruiseSpeedKt: 488, NormalCruiseAltitudeFt: 41000, MaxRangeNm: 7355, ServiceCeilingFt: 43100},
		{TypeKey: "B747", Family: FamilyWideBody, MaxFuelKg: 183380, NormalCruiseBurnKgPerHr: 3600, NormalCruiseSpeedKt: 493, NormalCruiseAltitudeFt: 39000, MaxRangeNm: 7730, ServiceCeilingFt: 45100},
		{TypeKey: "A330", Family: FamilyFlyByWire, MaxFuelKg: 109185, NormalCruiseBurnKgPerHr: 2600, NormalCruiseSpeedKt: 470, NormalCruiseAltitudeFt: 40000, MaxRangeNm: 6350, ServiceCeilingFt: 41450},
		{TypeKey: "A350", Family: FamilyFlyByWire, MaxFuelKg: 110500, NormalCruiseBurnKgPerHr: 2500, NormalCruiseSpeedKt: 488, NormalCruiseAltitudeFt: 41000, MaxRangeNm: 8100, ServiceCeilingFt: 43100},
		{TypeKey: "A380", Family: FamilyFlyByWire, MaxFuelKg: 253983, NormalCruiseBurnKgPerHr: 4800, NormalCruiseSpeedKt: 488, NormalCruiseAltitudeFt: 43000, MaxRangeNm: 8000, ServiceCeilingFt: 43100},
		{TypeKey: "B737", Family: FamilyNarrowBody, MaxFuelKg: 20894, NormalCruiseBurnKgPerHr: 2200, NormalCruiseSpeedKt: 453, NormalCruiseAltitudeFt: 37000, MaxRangeNm: 3010, ServiceCeilingFt: 41000},
		{TypeKey: "A320", Family: FamilyNarrowBody, MaxFuelKg: 19046, NormalCruiseBurnKgPerHr: 2100, NormalCruiseSpeedKt: 447, NormalCruiseAltitudeFt: 37000, MaxRangeNm: 3300, ServiceCeilingFt: 39800},
		{TypeKey: "E190", Family: FamilyRegional, MaxFuelKg: 12971, NormalCruiseBurnKgPerHr: 1500, NormalCruiseSpeedKt: 447, NormalCruiseAltitudeFt: 36000, MaxRangeNm: 2450, ServiceCeilingFt: 41000},
		{TypeKey: "CRJ9", Family: FamilyRegional, MaxFuelKg: 8822, NormalCruiseBurnKgPerHr: 1300, NormalCruiseSpeedKt: 447, NormalCruiseAltitudeFt: 36000, MaxRangeNm: 1550, ServiceCeilingFt: 41000},
		{TypeKey: GenericWideBodyType, Family: FamilyWideBody, MaxFuelKg: 126206, NormalCruiseBurnKgPerHr: 2800, NormalCruiseSpeedKt: 480, NormalCruiseAltitudeFt: 41000, MaxRangeNm: 7000, ServiceCeilingFt: 43000},
	}

	m := make(map[string]AircraftClassSpec, len(specs))
	for _, s := range specs {
		m[s.TypeKey] = s
	}
	return m
}

func defaultDescentPenalties() map[AircraftFamily]float64 {
	return map[AircraftFamily]float64{
		FamilyWideBody:   150,
		FamilyFlyByWire:  120,
		FamilyNarrowBody: 90,
		FamilyRegional:   60,
	}
}

func defaultEfficiencyCredits() map[AircraftFamily]map[string]float64 {
	return map[AircraftFamily]map[string]float64{
		FamilyFlyByWire: {
			ScenarioEngineFailure:    400,
			ScenarioHydraulicFailure: 400,
		},
	}
}
