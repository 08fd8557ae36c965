package limits

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains Prometheus metrics for limit evaluations and snapshots.
type Metrics struct {
	registry *prometheus.Registry

	// Evaluations by resulting tier
	evaluations *prometheus.CounterVec

	// Evaluations rejected for a non-positive daily limit
	invalidLimits prometheus.Counter

	// Latest usage percentage per account
	usagePercentage *prometheus.GaugeVec

	// Approaching-limit warnings
	approachingLimit *prometheus.CounterVec

	// Snapshot fetch failures by input
	fetchFailures *prometheus.CounterVec

	// Snapshot latency (fetch-join plus evaluation)
	snapshotDuration prometheus.Histogram
}

// NewMetrics creates a new Metrics instance with its own registry.
// Pass nil to create a fresh registry (useful for tests).
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendwatch_limit_evaluations_total",
				Help: "Total number of limit evaluations performed",
			},
			[]string{"tier"},
		),

		invalidLimits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "spendwatch_limit_invalid_total",
				Help: "Total number of evaluations rejected for a non-positive daily limit",
			},
		),

		usagePercentage: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "spendwatch_limit_usage_percentage",
				Help: "Latest usage percentage of the daily limit per account",
			},
			[]string{"account"},
		),

		approachingLimit: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendwatch_limit_approaching_total",
				Help: "Total number of evaluations that crossed the approaching-limit threshold",
			},
			[]string{"account"},
		),

		fetchFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "spendwatch_snapshot_fetch_failures_total",
				Help: "Total number of failed snapshot fetches by input record",
			},
			[]string{"input"},
		),

		snapshotDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "spendwatch_snapshot_duration_seconds",
				Help:    "Duration of status snapshots (fetch, join, evaluate) in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~400ms
			},
		),
	}
}

// RecordEvaluation records a completed evaluation for an account.
func (m *Metrics) RecordEvaluation(account string, status *Status) {
	m.evaluations.WithLabelValues(string(status.Tier)).Inc()
	m.usagePercentage.WithLabelValues(account).Set(status.UsagePercentage)
	if status.ApproachingLimit {
		m.approachingLimit.WithLabelValues(account).Inc()
	}
}

// RecordInvalidLimit records an evaluation rejected for a bad daily limit.
func (m *Metrics) RecordInvalidLimit() {
	m.invalidLimits.Inc()
}

// RecordFetchFailure records a failed fetch of one snapshot input.
// The input label is "limit" or "spending".
func (m *Metrics) RecordFetchFailure(input string) {
	m.fetchFailures.WithLabelValues(input).Inc()
}

// RecordSnapshotDuration records the duration of a snapshot in seconds.
func (m *Metrics) RecordSnapshotDuration(seconds float64) {
	m.snapshotDuration.Observe(seconds)
}

// Handler returns an HTTP handler exposing the registry in Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
