// Package observability holds the Prometheus metrics recorded by the HTTP
// service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhisek/fmea/internal/fmea"
)

const namespace = "fmea"

// Assessment outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeMalformed = "malformed"
)

// Metrics are the assessment counters and latency histogram.
type Metrics struct {
	// AssessmentsTotal counts assessment requests by outcome.
	AssessmentsTotal *prometheus.CounterVec

	// VariablesScored counts scored variables by risk level.
	VariablesScored *prometheus.CounterVec

	// Duration measures time spent in a successful assessment.
	Duration prometheus.Histogram
}

// NewMetrics registers the metrics with reg. Pass a fresh
// prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		AssessmentsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assessments_total",
				Help:      "Assessment requests by outcome.",
			},
			[]string{"outcome"},
		),
		VariablesScored: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "variables_scored_total",
				Help:      "Scored variables by risk level.",
			},
			[]string{"risk_level"},
		),
		Duration: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "assessment_duration_seconds",
				Help:      "Time spent validating, scoring and aggregating a run.",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
	}

	// Expose every label value from the start.
	for _, o := range []string{OutcomeOK, OutcomeInvalid, OutcomeMalformed} {
		m.AssessmentsTotal.WithLabelValues(o)
	}
	for _, l := range fmea.AllRiskLevels() {
		m.VariablesScored.WithLabelValues(string(l))
	}
	return m
}

// RecordAssessment records a successful run.
func (m *Metrics) RecordAssessment(res *fmea.Result, elapsed time.Duration) {
	m.AssessmentsTotal.WithLabelValues(OutcomeOK).Inc()
	for level, n := range res.CountByLevel() {
		m.VariablesScored.WithLabelValues(string(level)).Add(float64(n))
	}
	m.Duration.Observe(elapsed.Seconds())
}

// RecordRejected records a request that never produced a result.
func (m *Metrics) RecordRejected(outcome string) {
	m.AssessmentsTotal.WithLabelValues(outcome).Inc()
}
