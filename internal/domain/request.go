package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// DiversionRequest is the JSON payload published by the flight-tracking
// collaborator when an emergency scenario is declared. Candidates may be
// empty, in which case the pipeline resolves them from the airport database.
type DiversionRequest struct {
	FlightID     string               `json:"flight_id"`
	AircraftType string               `json:"aircraft_type"`
	ScenarioType string               `json:"scenario_type"`
	Route        string               `json:"route"`
	FlightState  FlightState          `json:"flight_state"`
	Candidates   []DiversionCandidate `json:"candidates,omitempty"`
	Risk         RiskFactors          `json:"risk"`
}

// ParseDiversionRequest deserializes a RawEvent's value into a
// DiversionRequest.
func ParseDiversionRequest(raw RawEvent) (DiversionRequest, error) {
	var req DiversionRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return DiversionRequest{}, fmt.Errorf("parse diversion request: %w", err)
	}
	if req.FlightID == "" {
		return DiversionRequest{}, fmt.Errorf("parse diversion request: missing flight_id")
	}
	return req, nil
}

// DecisionBrief combines both engine pipelines into the single document the
// dashboard and coordination collaborators consume.
type DecisionBrief struct {
	FlightID    string              `json:"flight_id"`
	Route       string              `json:"route"`
	Assessment  DiversionAssessment `json:"assessment"`
	Risk        DiversionRiskReport `json:"risk"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// NewDecisionBrief assembles a brief and stamps it with the package clock.
func NewDecisionBrief(req DiversionRequest, assessment DiversionAssessment, risk DiversionRiskReport) DecisionBrief {
	return DecisionBrief{
		FlightID:    req.FlightID,
		Route:       req.Route,
		Assessment:  assessment,
		Risk:        risk,
		GeneratedAt: clock.Now(),
	}
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// AirportSource resolves candidate diversion airports near a position. The
// airport-database collaborator implements it; the engine core never performs
// the lookup itself.
type AirportSource interface {
	NearbyCandidates(ctx context.Context, pos Position, radiusNm float64) ([]DiversionCandidate, error)
}
