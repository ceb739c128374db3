package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// RiskFactors is the structured situational input to the risk predictor.
// FuelStatus is the remaining fraction of planned reserve (0-1); WeatherScore
// is an 0-10 severity index supplied by the weather collaborator.
type RiskFactors struct {
	WeatherScore  float64 `json:"weather_score"`
	TechnicalFlag bool    `json:"technical_flag"`
	MedicalFlag   bool    `json:"medical_flag"`
	FuelStatus    float64 `json:"fuel_status"`
	TimeOfDayHour int     `json:"time_of_day_hour"`
	AdvisoryText  string  `json:"advisory_text,omitempty"`
}

// RiskFactor is one named contributor to the final probability.
type RiskFactor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Detail       string  `json:"detail,omitempty"`
}

// DiversionRiskReport is the explainable output of the risk pipeline.
// Probability and Confidence are always within [0, 1]; Factors are ranked by
// contribution, descending.
type DiversionRiskReport struct {
	FlightID           string       `json:"flight_id"`
	Route              string       `json:"route"`
	Probability        float64      `json:"probability"`
	Confidence         float64      `json:"confidence"`
	Factors            []RiskFactor `json:"factors"`
	RecommendedActions []string     `json:"recommended_actions"`
	Historical         RouteStats   `json:"historical"`
	TextSignal         TextSignal   `json:"text_signal"`

	// FallbackUsed is true when the route or aircraft type was absent from
	// the historical tables and defaults were substituted.
	FallbackUsed bool      `json:"fallback_used"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// featureVector is the fixed-length numeric view of the structured factors.
// Every component is oriented so that larger means riskier, which keeps each
// ensemble rule monotone non-decreasing in its inputs.
type featureVector struct {
	weather      float64 // WeatherScore / 10
	technical    float64 // 0 or 1
	medical      float64 // 0 or 1
	fuelRisk     float64 // 1 - FuelStatus, clamped to [0, 1]
	night        float64 // 1 during night-ops hours
	routeRisk    float64 // historical route diversion rate
	aircraftRisk float64 // historical family incident rate
}

func buildFeatures(f RiskFactors, routeRisk, aircraftRisk float64) featureVector {
	return featureVector{
		weather:      clamp(f.WeatherScore/10, 0, 1),
		technical:    boolFeature(f.TechnicalFlag),
		medical:      boolFeature(f.MedicalFlag),
		fuelRisk:     clamp(1-f.FuelStatus, 0, 1),
		night:        boolFeature(isNightOps(f.TimeOfDayHour)),
		routeRisk:    routeRisk,
		aircraftRisk: aircraftRisk,
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// isNightOps covers [22, 24) and [0, 6].
func isNightOps(hour int) bool {
	return hour >= 22 || hour <= 6
}

// ensembleRule is one hand-specified heuristic rule over a feature subset.
// This is a fixed multi-rule aggregator, not a trainable classifier: each rule
// is a weighted sum or threshold over a distinct slice of the feature vector,
// and the ensemble score is their plain average.
type ensembleRule struct {
	name string
	eval func(featureVector) float64
}

var ensembleRules = []ensembleRule{
	{"weatherBiased", ruleWeatherBiased},
	{"technicalBiased", ruleTechnicalBiased},
	{"routeBiased", ruleRouteBiased},
	{"medicalBiased", ruleMedicalBiased},
	{"fuelBiased", ruleFuelBiased},
	{"compoundStress", ruleCompoundStress},
	{"nightOps", ruleNightOps},
	{"aircraftBiased", ruleAircraftBiased},
	{"weatherFuelGate", ruleWeatherFuelGate},
	{"worstSignal", ruleWorstSignal},
}

func ruleWeatherBiased(fv featureVector) float64 {
	return clamp(0.8*fv.weather+0.2*fv.night, 0, 1)
}

func ruleTechnicalBiased(fv featureVector) float64 {
	return clamp(0.7*fv.technical+0.2*fv.weather+0.1*fv.fuelRisk, 0, 1)
}

func ruleRouteBiased(fv featureVector) float64 {
	// Route rates sit well below 1; rescale so a 20% historical rate saturates.
	return clamp(0.7*math.Min(1, fv.routeRisk*5)+0.3*fv.weather, 0, 1)
}

func ruleMedicalBiased(fv featureVector) float64 {
	return clamp(0.8*fv.medical+0.2*fv.night, 0, 1)
}

func ruleFuelBiased(fv featureVector) float64 {
	return clamp(0.7*fv.fuelRisk+0.3*fv.technical, 0, 1)
}

func ruleCompoundStress(fv featureVector) float64 {
	return clamp((fv.weather+fv.technical+fv.medical+fv.fuelRisk)/4, 0, 1)
}

func ruleNightOps(fv featureVector) float64 {
	return clamp(0.5*fv.night+0.3*fv.weather+0.2*fv.fuelRisk, 0, 1)
}

func ruleAircraftBiased(fv featureVector) float64 {
	return clamp(0.6*math.Min(1, fv.aircraftRisk*5)+0.4*fv.technical, 0, 1)
}

// ruleWeatherFuelGate jumps when marginal weather and thin fuel coincide; the
// step only ever adds, so the rule stays monotone.
func ruleWeatherFuelGate(fv featureVector) float64 {
	base := 0.4*fv.weather + 0.3*fv.fuelRisk
	if fv.weather > 0.6 && fv.fuelRisk > 0.5 {
		base += 0.3
	}
	return clamp(base, 0, 1)
}

func ruleWorstSignal(fv featureVector) float64 {
	worst := math.Max(fv.weather, math.Max(fv.technical, math.Max(fv.medical, fv.fuelRisk)))
	return clamp(0.8*worst, 0, 1)
}

func ensembleScore(fv featureVector) float64 {
	var sum float64
	for _, rule := range ensembleRules {
		sum += rule.eval(fv)
	}
	return sum / float64(len(ensembleRules))
}

// Canned recommended actions keyed to the factor that triggers them.
const (
	actionSevereWeather = "Request vectors around convective activity and brief crew on nearest alternates."
	actionMarginal      = "Monitor destination weather trends and review alternate minima."
	actionTechnical     = "Run the abnormal checklist and alert maintenance control."
	actionMedical       = "Contact ground medical support and identify nearest suitable airports."
	actionCriticalFuel  = "Declare minimum fuel and proceed to the nearest suitable airport."
	actionLowFuel       = "Recompute reserves and tighten alternate selection."
	actionNightOps      = "Verify alternate lighting and approach availability."
)

// PredictDiversionRisk combines the advisory text signal, the heuristic rule
// ensemble, thresholded situational additions, and static historical rates
// into a bounded diversion probability with confidence, ranked contributing
// factors, and recommended actions.
func (c *Catalog) PredictDiversionRisk(flightID, route, aircraftType string, f RiskFactors) DiversionRiskReport {
	signal := c.ScoreAdvisory(f.AdvisoryText)
	routeRisk := c.RouteRisk(route)
	aircraftRisk := c.AircraftRisk(aircraftType)

	var factors []RiskFactor
	var actions []string

	// The base score is the stronger of the text signal and the ensemble.
	score := signal.RiskWeight
	ens := ensembleScore(buildFeatures(f, routeRisk, aircraftRisk))
	if ens > score {
		score = ens
		factors = append(factors, RiskFactor{
			Name:         "Heuristic Ensemble",
			Contribution: ens,
			Detail:       fmt.Sprintf("average of %d situational rules", len(ensembleRules)),
		})
	} else if signal.RiskWeight > 0 {
		factors = append(factors, RiskFactor{
			Name:         "Advisory Signal",
			Contribution: signal.RiskWeight,
			Detail:       signal.Category,
		})
	}
	if signal.HighRisk {
		actions = append(actions, fmt.Sprintf("Review active NOTAMs: %s.", signal.Category))
	}

	add := func(amount float64, name, detail, action string) {
		score += amount
		factors = append(factors, RiskFactor{Name: name, Contribution: amount, Detail: detail})
		if action != "" {
			actions = append(actions, action)
		}
	}

	switch {
	case f.WeatherScore >= 8:
		add(0.25, "Severe Weather", fmt.Sprintf("weather score %.0f/10", f.WeatherScore), actionSevereWeather)
	case f.WeatherScore >= 6:
		add(0.15, "Marginal Weather", fmt.Sprintf("weather score %.0f/10", f.WeatherScore), actionMarginal)
	}
	if f.TechnicalFlag {
		add(0.35, "Technical Malfunction", "technical fault reported", actionTechnical)
	}
	if f.MedicalFlag {
		add(0.30, "Medical Emergency", "onboard medical event", actionMedical)
	}
	switch {
	case f.FuelStatus < 0.2:
		add(0.20, "Critical Fuel", fmt.Sprintf("%.0f%% of reserve remaining", f.FuelStatus*100), actionCriticalFuel)
	case f.FuelStatus < 0.3:
		add(0.10, "Low Fuel Margin", fmt.Sprintf("%.0f%% of reserve remaining", f.FuelStatus*100), actionLowFuel)
	}
	if isNightOps(f.TimeOfDayHour) {
		add(0.05, "Night Ops", fmt.Sprintf("%02d:00 local", f.TimeOfDayHour), actionNightOps)
	}

	add(routeRisk*0.15, "Route History", fmt.Sprintf("%.1f%% historical diversion rate", routeRisk*100), "")
	add(aircraftRisk*0.10, "Aircraft Type History", fmt.Sprintf("%.1f%% historical incident rate", aircraftRisk*100), "")

	probability := clamp(score, 0, 1)

	confidence := 0.80
	if f.WeatherScore > 0 {
		confidence += 0.05
	}
	if f.TechnicalFlag {
		confidence += 0.05
	}
	if f.MedicalFlag {
		confidence += 0.05
	}
	if f.FuelStatus > 0 {
		confidence += 0.05
	}
	if c.KnownRoute(route) {
		confidence += 0.05
	}
	confidence = math.Min(confidence, 1.0)

	historical, routeKnown := c.RouteHistory(route)
	_, aircraftKnown := c.SpecForType(aircraftType)

	switch {
	case probability > 0.7:
		actions = append(actions, "Consider immediate diversion planning.")
	case probability > 0.4:
		actions = append(actions, "Prepare contingency plans.")
	default:
		actions = append(actions, "Continue monitoring.")
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Contribution > factors[j].Contribution
	})

	return DiversionRiskReport{
		FlightID:           flightID,
		Route:              route,
		Probability:        probability,
		Confidence:         confidence,
		Factors:            factors,
		RecommendedActions: actions,
		Historical:         historical,
		TextSignal:         signal,
		FallbackUsed:       !routeKnown || !aircraftKnown,
		GeneratedAt:        clock.Now(),
	}
}
