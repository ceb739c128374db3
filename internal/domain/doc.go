// Package domain implements the diversion decision and risk engine: given an
// in-flight emergency scenario it recomputes the aircraft's degraded
// performance envelope, evaluates which candidate diversion airports are
// reachable with adequate fuel reserve, ranks the feasible ones by operational
// suitability, and produces an explainable diversion-probability score from
// weighted contributing factors.
//
// # Units
//
// Distances are nautical miles, altitudes are feet, speeds are knots, fuel is
// kilograms, fuel burn is kilograms per hour, endurance is hours. Great-circle
// distances use the haversine formula with an Earth radius of 3440.065 nm.
//
// # Aircraft families and scenario tables
//
// Every aircraft type key resolves to an [AircraftClassSpec] and an
// [AircraftFamily]. The family selects the emergency-scenario table: a family
// may tune fuel-burn multipliers differently (fly-by-wire types compensate
// better for some failures), and it fixes the descent fuel penalty per 1000 ft
// of forced descent. Unknown aircraft types fall back to a generic wide-body
// spec and unknown scenario keys fall back to "normal"; both fallbacks are
// flagged on the output so callers can distinguish authoritative results from
// default-based ones.
//
// Scenario keys: normal, engineFailure, decompression, hydraulicFailure,
// medicalEmergency, severeWeather, fuelLeak.
//
// # Feasibility policy
//
// A candidate is feasible when required fuel (cruise burn + approach descent
// penalty + a 30-minute reserve at the degraded burn rate) does not exceed
// 80% of the aircraft's maximum fuel capacity. The 80% ceiling and the reserve
// are deliberate safety margins, tunable through [Policy], not physical limits.
//
// # Risk model
//
// The risk pipeline is a fixed hand-written heuristic, not a trained model.
// A keyword scan over advisory text (NOTAMs) yields a bounded starting weight;
// a set of ten named weighted-sum rules over a structured feature vector is
// averaged into an ensemble score; thresholded additive factors and static
// historical route/aircraft rates complete the probability. All outputs are
// hard-clamped into their documented ranges and every computation is a pure
// function of its inputs: there is no randomness anywhere in this package.
//
// # Determinism
//
// The only time source is the package clock (swappable via [SetClock]), used
// solely to timestamp generated briefs. Candidate evaluation order never
// affects results: ranking uses a stable sort with distance and medical-tier
// tie-breaks, so equal composites retain input order.
package domain
