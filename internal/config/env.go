// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Server
	EnvPort            = "ASSIST_PORT"
	EnvLogLevel        = "ASSIST_LOG_LEVEL"
	EnvShutdownTimeout = "ASSIST_SHUTDOWN_TIMEOUT"

	// Data
	EnvDataDir       = "ASSIST_DATA_DIR"
	EnvRetentionDays = "ASSIST_RETENTION_DAYS"

	// Webhook
	EnvWebhookToken   = "ASSIST_WEBHOOK_TOKEN"
	EnvWebhookTimeout = "ASSIST_WEBHOOK_TIMEOUT"

	// Rate Limits
	EnvGlobalRateRPS  = "ASSIST_GLOBAL_RATE_RPS"
	EnvUserRateBurst  = "ASSIST_USER_RATE_BURST"
	EnvUserRateRefill = "ASSIST_USER_RATE_REFILL"

	// Reminders
	EnvNotifyURL            = "ASSIST_NOTIFY_URL"
	EnvReminderLead         = "ASSIST_REMINDER_LEAD"
	EnvReminderPollInterval = "ASSIST_REMINDER_POLL_INTERVAL"

	// Snapshot Backup Feature
	EnvSnapshotEnabled   = "ASSIST_SNAPSHOT_ENABLED"
	EnvSnapshotEndpoint  = "ASSIST_SNAPSHOT_ENDPOINT"
	EnvSnapshotAccessKey = "ASSIST_SNAPSHOT_ACCESS_KEY_ID"
	EnvSnapshotSecretKey = "ASSIST_SNAPSHOT_SECRET_ACCESS_KEY"
	EnvSnapshotBucket    = "ASSIST_SNAPSHOT_BUCKET"
	EnvSnapshotPrefix    = "ASSIST_SNAPSHOT_PREFIX"
	EnvSnapshotInterval  = "ASSIST_SNAPSHOT_INTERVAL"

	// Sentry Feature
	EnvSentryDSN         = "ASSIST_SENTRY_DSN"
	EnvSentryEnvironment = "ASSIST_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "ASSIST_SENTRY_SAMPLE_RATE"

	// Better Stack Feature
	EnvBetterStackToken    = "ASSIST_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "ASSIST_BETTERSTACK_ENDPOINT"

	// Metrics Auth Feature
	EnvMetricsUsername = "ASSIST_METRICS_USERNAME"
	EnvMetricsPassword = "ASSIST_METRICS_PASSWORD"
)
