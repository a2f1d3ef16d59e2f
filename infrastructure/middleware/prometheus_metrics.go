// Package middleware provides cross-cutting concerns for the vote
// counting pipeline: Prometheus metrics and OpenTelemetry tracing
// wrappers around pipeline units.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/codetown/votecount/internal/ports"
)

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It tracks per-unit execution latency, unit outcomes by
// validation error kind, and whole-load counts.
type PrometheusMetrics struct {
	unitLatency  *prometheus.HistogramVec
	unitOutcomes *prometheus.CounterVec
	loadCounter  *prometheus.CounterVec
	systemGauges *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all metrics in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		unitLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "votecount_unit_duration_seconds",
				Help:    "Execution time of pipeline units.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "unit"},
		),
		unitOutcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "votecount_unit_outcomes_total",
				Help: "Pipeline unit completions by status and validation error kind.",
			},
			[]string{"unit", "status", "kind"},
		),
		loadCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "votecount_loads_total",
				Help: "Vote file load attempts by outcome.",
			},
			[]string{"status", "kind"},
		),
		systemGauges: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "votecount_system_state",
				Help: "Current system state values for the vote counter.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	unit, ok := labels["unit"]
	if !ok {
		unit = "unknown"
	}
	pm.unitLatency.WithLabelValues(operation, unit).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	status := labels["status"]
	if status == "" {
		status = "success"
	}
	kind := labels["kind"]
	if kind == "" {
		kind = "none"
	}

	switch metric {
	case "votecount_loads_total":
		pm.loadCounter.WithLabelValues(status, kind).Add(value)
	default:
		unit, ok := labels["unit"]
		if !ok {
			unit = "unknown"
		}
		pm.unitOutcomes.WithLabelValues(unit, status, kind).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.systemGauges.WithLabelValues(metric).Set(value)
}
