// Timeout and interval constants shared across the application.
//
// Values are tuned for a small single-instance deployment backed by
// SQLite in WAL mode: inbound messages are short JSON payloads and
// intent resolution is pure in-memory work, so HTTP timeouts stay
// tight while maintenance jobs run on relaxed schedules.
package config

import "time"

// HTTP server timeouts
const (
	// WebhookHTTPRead is the HTTP server read timeout. Inbound webhook
	// payloads are small JSON documents, so reads should finish fast.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout. Must cover the
	// per-message processing timeout plus response serialization.
	WebhookHTTPWrite = 15 * time.Second

	// WebhookHTTPIdle is the idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second

	// ReadinessCheckTimeout bounds the database ping in the readiness probe.
	ReadinessCheckTimeout = 5 * time.Second
)

// Background job schedules
const (
	// RateLimiterCleanupInterval is how often idle per-user token buckets
	// are evicted.
	RateLimiterCleanupInterval = 10 * time.Minute

	// RetentionPurgeHour is the local hour at which the daily retention
	// purge runs. Early morning keeps the VACUUM off peak traffic.
	RetentionPurgeHour = 4

	// RetentionPurgeTimeout bounds one retention purge run including VACUUM.
	RetentionPurgeTimeout = 10 * time.Minute

	// TableMetricsInterval is how often table row counts are exported to
	// Prometheus gauges.
	TableMetricsInterval = 5 * time.Minute
)
