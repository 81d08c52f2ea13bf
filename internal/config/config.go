// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, timeouts, rate limits, and optional features.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir       string // Data directory for the SQLite database
	RetentionDays int    // Days to keep past appointments and finished list items

	// Webhook Configuration
	WebhookToken   string        // Shared token for the inbound webhook; empty disables auth
	WebhookTimeout time.Duration // Timeout for processing one inbound message

	// Rate Limits (Token Bucket Algorithm)
	GlobalRateRPS  float64 // Global request budget in requests per second
	UserRateBurst  float64 // Maximum burst tokens per user
	UserRateRefill float64 // Tokens refilled per second per user

	// Reminder Configuration
	NotifyURL            string        // Outbound delivery endpoint; empty disables delivery
	ReminderLead         time.Duration // How long before an appointment the reminder fires
	ReminderPollInterval time.Duration // How often due reminders are polled

	// Snapshot Backup (optional)
	Snapshot SnapshotConfig

	// Sentry (optional)
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack (optional)
	BetterStackToken    string
	BetterStackEndpoint string

	// Metrics endpoint Basic Auth (empty password disables auth)
	MetricsUsername string
	MetricsPassword string
}

// SnapshotConfig holds the S3-compatible database backup settings.
type SnapshotConfig struct {
	Enabled         bool
	Endpoint        string // S3-compatible endpoint URL
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Prefix          string        // Object key prefix
	Interval        time.Duration // How often snapshots are uploaded
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		DataDir:       getEnv(EnvDataDir, "./data"),
		RetentionDays: getIntEnv(EnvRetentionDays, 90),

		WebhookToken:   getEnv(EnvWebhookToken, ""),
		WebhookTimeout: getDurationEnv(EnvWebhookTimeout, 10*time.Second),

		GlobalRateRPS:  getFloatEnv(EnvGlobalRateRPS, 100.0),
		UserRateBurst:  getFloatEnv(EnvUserRateBurst, 15.0),
		UserRateRefill: getFloatEnv(EnvUserRateRefill, 0.2), // 1 per 5s

		NotifyURL:            getEnv(EnvNotifyURL, ""),
		ReminderLead:         getDurationEnv(EnvReminderLead, 15*time.Minute),
		ReminderPollInterval: getDurationEnv(EnvReminderPollInterval, time.Minute),

		Snapshot: SnapshotConfig{
			Enabled:         getBoolEnv(EnvSnapshotEnabled, false),
			Endpoint:        getEnv(EnvSnapshotEndpoint, ""),
			AccessKeyID:     getEnv(EnvSnapshotAccessKey, ""),
			SecretAccessKey: getEnv(EnvSnapshotSecretKey, ""),
			Bucket:          getEnv(EnvSnapshotBucket, ""),
			Prefix:          getEnv(EnvSnapshotPrefix, "assistente"),
			Interval:        getDurationEnv(EnvSnapshotInterval, 6*time.Hour),
		},

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if c.RetentionDays <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvRetentionDays, c.RetentionDays))
	}
	if c.WebhookTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvWebhookTimeout, c.WebhookTimeout))
	}
	if c.GlobalRateRPS <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvGlobalRateRPS, c.GlobalRateRPS))
	}
	if c.UserRateBurst <= 0 || c.UserRateRefill <= 0 {
		errs = append(errs, errors.New("user rate limit burst and refill must be positive"))
	}
	if c.ReminderLead < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %v", EnvReminderLead, c.ReminderLead))
	}
	if c.ReminderPollInterval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvReminderPollInterval, c.ReminderPollInterval))
	}
	if err := c.Snapshot.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("snapshot config: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks snapshot settings when the feature is enabled.
func (s *SnapshotConfig) Validate() error {
	if !s.Enabled {
		return nil
	}

	var errs []error
	if s.Endpoint == "" {
		errs = append(errs, errors.New(EnvSnapshotEndpoint+" is required"))
	}
	if s.AccessKeyID == "" || s.SecretAccessKey == "" {
		errs = append(errs, errors.New("snapshot credentials are required"))
	}
	if s.Bucket == "" {
		errs = append(errs, errors.New(EnvSnapshotBucket+" is required"))
	}
	if s.Interval <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvSnapshotInterval, s.Interval))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SQLitePath returns the full path to the SQLite database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "assistente.db")
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
