// Package metrics defines the Prometheus instrumentation for the assistant.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookRequestsTotal   *prometheus.CounterVec
	WebhookDurationSeconds *prometheus.HistogramVec

	// Intent resolution metrics
	IntentsTotal           *prometheus.CounterVec
	ResolveDurationSeconds prometheus.Histogram

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec

	// Reminder metrics
	RemindersTotal *prometheus.CounterVec

	// Snapshot metrics
	SnapshotsTotal          *prometheus.CounterVec
	SnapshotDurationSeconds prometheus.Histogram

	// Storage metrics
	TableSize *prometheus.GaugeVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assist_webhook_requests_total",
				Help: "Total number of webhook requests by status",
			},
			[]string{"status"}, // status: success, error, rate_limited, unauthorized, invalid
		),

		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assist_webhook_duration_seconds",
				Help:    "Webhook processing duration in seconds by intent category",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
			},
			[]string{"category"},
		),

		IntentsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assist_intents_total",
				Help: "Total number of resolved intents by category",
			},
			[]string{"category"}, // category: schedule, shopping_list, query, greeting, unknown
		),

		ResolveDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assist_resolve_duration_seconds",
				Help:    "Intent resolution duration in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
			},
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assist_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: user, global
		),

		RemindersTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assist_reminders_total",
				Help: "Total number of reminder deliveries by status",
			},
			[]string{"status"}, // status: sent, error, skipped
		),

		SnapshotsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assist_snapshots_total",
				Help: "Total number of database snapshot uploads by status",
			},
			[]string{"status"}, // status: success, error
		),

		SnapshotDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assist_snapshot_duration_seconds",
				Help:    "Database snapshot upload duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),

		TableSize: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "assist_table_size",
				Help: "Current number of rows per table",
			},
			[]string{"table"}, // table: appointments, shopping_items, reminders
		),
	}
}

// RecordWebhook records a webhook request outcome.
func (m *Metrics) RecordWebhook(status string) {
	m.WebhookRequestsTotal.WithLabelValues(status).Inc()
}

// RecordWebhookDuration records processing duration for a resolved category.
func (m *Metrics) RecordWebhookDuration(category string, seconds float64) {
	m.WebhookDurationSeconds.WithLabelValues(category).Observe(seconds)
}

// RecordIntent records a resolved intent category.
func (m *Metrics) RecordIntent(category string) {
	m.IntentsTotal.WithLabelValues(category).Inc()
}

// RecordResolveDuration records the duration of one facade resolution.
func (m *Metrics) RecordResolveDuration(seconds float64) {
	m.ResolveDurationSeconds.Observe(seconds)
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// RecordReminder records a reminder delivery outcome.
func (m *Metrics) RecordReminder(status string) {
	m.RemindersTotal.WithLabelValues(status).Inc()
}

// RecordSnapshot records a snapshot upload outcome with its duration.
func (m *Metrics) RecordSnapshot(status string, seconds float64) {
	m.SnapshotsTotal.WithLabelValues(status).Inc()
	m.SnapshotDurationSeconds.Observe(seconds)
}

// SetTableSize updates the row-count gauge for a table.
func (m *Metrics) SetTableSize(table string, count int) {
	m.TableSize.WithLabelValues(table).Set(float64(count))
}
