package domain

import (
	"math"
	"strings"
)

// TextSignal is the bounded risk contribution extracted from free-text
// advisories. RiskWeight is capped at MaxAdvisoryWeight; Confidence grows with
// the number of distinct matched terms.
type TextSignal struct {
	RiskWeight float64 `json:"risk_weight"`
	HighRisk   bool    `json:"high_risk"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
}

const (
	// MaxAdvisoryWeight caps the summed keyword weight.
	MaxAdvisoryWeight = 0.25

	// highRiskThreshold is the raw (uncapped) sum above which the advisory is
	// flagged high-risk.
	highRiskThreshold = 0.08

	// DefaultAdvisoryCategory labels advisories with no matched terms.
	DefaultAdvisoryCategory = "Standard Advisory"
)

// advisoryKeyword is one weighted risk term with its category label.
type advisoryKeyword struct {
	term     string
	weight   float64
	category string
}

func defaultKeywords() []advisoryKeyword {
	return []advisoryKeyword{
		// High-risk terms.
		{term: "thunderstorm", weight: 0.15, category: "Convective Weather"},
		{term: "volcanic ash", weight: 0.15, category: "Volcanic Activity"},
		{term: "emergency", weight: 0.14, category: "Declared Emergency"},
		{term: "windshear", weight: 0.13, category: "Windshear"},
		{term: "braking action poor", weight: 0.12, category: "Contaminated Runway"},
		{term: "icing", weight: 0.11, category: "Icing Conditions"},
		{term: "closure", weight: 0.10, category: "Airport Closure"},
		{term: "closed", weight: 0.10, category: "Airport Closure"},
		{term: "snow", weight: 0.09, category: "Winter Operations"},

		// Medium-risk terms.
		{term: "bird activity", weight: 0.05, category: "Wildlife Hazard"},
		{term: "caution", weight: 0.04, category: "General Caution"},
		{term: "delay", weight: 0.04, category: "Traffic Delays"},
		{term: "construction", weight: 0.03, category: "Airfield Construction"},
		{term: "limited", weight: 0.03, category: "Limited Services"},
		{term: "advisory", weight: 0.02, category: "General Advisory"},
	}
}

// ScoreAdvisory scans free text for weighted risk keywords. Matching is
// case-insensitive substring containment; each distinct term counts once no
// matter how often it appears. Empty or non-matching text yields weight 0,
// highRisk false, and the base confidence.
func (c *Catalog) ScoreAdvisory(text string) TextSignal {
	signal := TextSignal{
		Category:   DefaultAdvisoryCategory,
		Confidence: 0.70,
	}

	lowered := strings.ToLower(text)
	if strings.TrimSpace(lowered) == "" {
		return signal
	}

	var rawSum, topWeight float64
	for _, kw := range c.keywords {
		if !strings.Contains(lowered, kw.term) {
			continue
		}
		signal.MatchCount++
		rawSum += kw.weight
		if kw.weight > topWeight {
			topWeight = kw.weight
			signal.Category = kw.category
		}
	}

	signal.RiskWeight = math.Min(rawSum, MaxAdvisoryWeight)
	signal.HighRisk = rawSum > highRiskThreshold
	signal.Confidence = math.Min(0.95, 0.70+0.08*float64(signal.MatchCount))
	return signal
}
