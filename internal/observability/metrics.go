package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// decision pipeline.
type Metrics struct {
	RequestsConsumed prometheus.Counter
	BriefsProduced   prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Engine metrics.
	SpecFallbacks      prometheus.Counter
	ScenarioFallbacks  prometheus.Counter
	NoFeasibleOption   prometheus.Counter
	CandidateCount     prometheus.Histogram
	EvaluationDuration prometheus.Histogram
	RiskProbability    prometheus.Histogram

	// Airport database lookup metrics.
	AirportLookups       *prometheus.CounterVec // labels: outcome={success,error,empty}
	AirportCache         *prometheus.CounterVec // labels: result={hit,miss}
	AirportAPIDuration   prometheus.Histogram
	AirportSourceEnabled prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RequestsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diversion_engine",
			Name:      "requests_consumed_total",
			Help:      "Total diversion requests read from the source topic.",
		}),
		BriefsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diversion_engine",
			Name:      "briefs_produced_total",
			Help:      "Total decision briefs written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diversion_engine",
			Name:      "transform_errors_total",
			Help:      "Total request parse or assessment failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "diversion_engine",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "diversion_engine",
			Name:      "batch_size",
			Help:      "Number of requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "diversion_engine",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch consume-assess-publish cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		SpecFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diversion_engine",
			Name:      "spec_fallbacks_total",
			Help:      "Assessments computed with the generic wide-body spec because the aircraft type was unknown.",
		}),
		ScenarioFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diversion_engine",
			Name:      "scenario_fallbacks_total",
			Help:      "Assessments computed with the normal scenario because the scenario type was unknown.",
		}),
		NoFeasibleOption: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diversion_engine",
			Name:      "no_feasible_option_total",
			Help:      "Assessments where no candidate airport was fuel-feasible.",
		}),
		CandidateCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "diversion_engine",
			Name:      "candidate_count",
			Help:      "Candidate airports evaluated per request.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "diversion_engine",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of a single diversion-options assessment.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		RiskProbability: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "diversion_engine",
			Name:      "risk_probability",
			Help:      "Distribution of predicted diversion probabilities.",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		}),
		AirportLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diversion_engine",
			Name:      "airport_lookups_total",
			Help:      "Airport database lookups by outcome.",
		}, []string{"outcome"}),
		AirportCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diversion_engine",
			Name:      "airport_cache_total",
			Help:      "Airport lookup cache accesses by result.",
		}, []string{"result"}),
		AirportAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "diversion_engine",
			Name:      "airport_api_duration_seconds",
			Help:      "Airport database request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		AirportSourceEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "diversion_engine",
			Name:      "airport_source_enabled",
			Help:      "1 when candidate resolution from the airport database is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.RequestsConsumed,
		m.BriefsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.SpecFallbacks,
		m.ScenarioFallbacks,
		m.NoFeasibleOption,
		m.CandidateCount,
		m.EvaluationDuration,
		m.RiskProbability,
		m.AirportLookups,
		m.AirportCache,
		m.AirportAPIDuration,
		m.AirportSourceEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RequestsConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "diversion_engine", Name: "requests_consumed_total"}),
		BriefsProduced:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "diversion_engine", Name: "briefs_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "diversion_engine", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "diversion_engine", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "diversion_engine", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "diversion_engine", Name: "batch_processing_duration_seconds"}),
		SpecFallbacks:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "diversion_engine", Name: "spec_fallbacks_total"}),
		ScenarioFallbacks:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "diversion_engine", Name: "scenario_fallbacks_total"}),
		NoFeasibleOption:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "diversion_engine", Name: "no_feasible_option_total"}),
		CandidateCount:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "diversion_engine", Name: "candidate_count"}),
		EvaluationDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "diversion_engine", Name: "evaluation_duration_seconds"}),
		RiskProbability:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "diversion_engine", Name: "risk_probability"}),
		AirportLookups:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "diversion_engine", Name: "airport_lookups_total"}, []string{"outcome"}),
		AirportCache:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "diversion_engine", Name: "airport_cache_total"}, []string{"result"}),
		AirportAPIDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "diversion_engine", Name: "airport_api_duration_seconds"}),
		AirportSourceEnabled:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "diversion_engine", Name: "airport_source_enabled"}),
	}
}
