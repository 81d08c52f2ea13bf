// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmarques-dev/assistente-go/internal/bot"
	"github.com/dmarques-dev/assistente-go/internal/config"
	"github.com/dmarques-dev/assistente-go/internal/ctxutil"
	"github.com/dmarques-dev/assistente-go/internal/extract"
	"github.com/dmarques-dev/assistente-go/internal/intent"
	"github.com/dmarques-dev/assistente-go/internal/lexicon"
	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/metrics"
	"github.com/dmarques-dev/assistente-go/internal/modules/agenda"
	"github.com/dmarques-dev/assistente-go/internal/modules/shopping"
	"github.com/dmarques-dev/assistente-go/internal/reminder"
	"github.com/dmarques-dev/assistente-go/internal/s3client"
	"github.com/dmarques-dev/assistente-go/internal/sentry"
	"github.com/dmarques-dev/assistente-go/internal/snapshot"
	"github.com/dmarques-dev/assistente-go/internal/storage"
	"github.com/dmarques-dev/assistente-go/internal/webhook"
)

// snapshotObject is the object name appended to the configured key prefix.
const snapshotObject = "assistente.db.zst"

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg            *config.Config
	logger         *logger.Logger
	db             *storage.DB
	metrics        *metrics.Metrics
	registry       *prometheus.Registry
	webhookHandler *webhook.Handler
	scheduler      *reminder.Scheduler
	snapshots      *snapshot.Manager // nil when backups are disabled
	server         *http.Server
	wg             sync.WaitGroup // Track background goroutines for graceful shutdown
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", "assistente-go")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Set as default logger to enable context value extraction (userID, chatID,
	// requestID) via ContextHandler in package-level slog.*Context() calls.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Sentry initialization failed")
	} else if sentry.IsEnabled() {
		log.WithField("environment", cfg.SentryEnvironment).Info("Sentry error tracking enabled")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	var snapshots *snapshot.Manager
	if cfg.Snapshot.Enabled {
		s3, err := s3client.New(ctx, s3client.Config{
			Endpoint:    cfg.Snapshot.Endpoint,
			AccessKeyID: cfg.Snapshot.AccessKeyID,
			SecretKey:   cfg.Snapshot.SecretAccessKey,
			BucketName:  cfg.Snapshot.Bucket,
		})
		if err != nil {
			return nil, fmt.Errorf("snapshot client: %w", err)
		}

		key := path.Join(cfg.Snapshot.Prefix, snapshotObject)
		snapshots = snapshot.NewManager(snapshot.Config{
			Client:   s3,
			Logger:   log,
			Metrics:  m,
			Key:      key,
			Interval: cfg.Snapshot.Interval,
		})
		log.WithField("bucket", cfg.Snapshot.Bucket).
			WithField("key", key).
			WithField("interval", cfg.Snapshot.Interval).
			Info("Snapshot backups enabled")

		// A fresh instance boots from the last uploaded snapshot.
		if restored, err := snapshots.RestoreIfMissing(ctx, cfg.SQLitePath()); err != nil {
			log.WithError(err).Warn("Snapshot restore failed, starting with an empty database")
		} else if restored {
			log.WithField("path", cfg.SQLitePath()).Info("Database restored from snapshot")
		}
	}

	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	lex := lexicon.New()
	resolver := intent.NewResolver(lex)
	extractor := extract.NewExtractor(lex)

	botRegistry := bot.NewRegistry()
	botRegistry.Register(agenda.New(agenda.Config{
		DB:           db,
		Logger:       log,
		ReminderLead: cfg.ReminderLead,
	}))
	botRegistry.Register(shopping.New(db, extractor, log))

	processor := bot.NewProcessor(bot.ProcessorConfig{
		Registry: botRegistry,
		Resolver: resolver,
		Logger:   log,
		Metrics:  m,
	})

	webhookHandler := webhook.NewHandler(webhook.HandlerConfig{
		Token:         cfg.WebhookToken,
		Processor:     processor,
		Logger:        log,
		Metrics:       m,
		Timeout:       cfg.WebhookTimeout,
		GlobalRateRPS: cfg.GlobalRateRPS,
		UserBurst:     cfg.UserRateBurst,
		UserRefill:    cfg.UserRateRefill,
	})
	if cfg.WebhookToken == "" {
		log.Warn("Webhook token not configured, inbound authentication disabled")
	}

	var notifier reminder.Notifier
	if cfg.NotifyURL != "" {
		notifier = reminder.NewHTTPNotifier(cfg.NotifyURL, cfg.WebhookTimeout)
		log.WithField("url", cfg.NotifyURL).Info("Reminder delivery enabled")
	} else {
		notifier = reminder.NewLogNotifier(log)
		log.Info("Notify URL not configured, due reminders are logged only")
	}

	scheduler := reminder.NewScheduler(reminder.Config{
		DB:           db,
		Notifier:     notifier,
		Logger:       log,
		Metrics:      m,
		PollInterval: cfg.ReminderPollInterval,
	})

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	app := &Application{
		cfg:            cfg,
		logger:         log,
		db:             db,
		metrics:        m,
		registry:       registry,
		webhookHandler: webhookHandler,
		scheduler:      scheduler,
		snapshots:      snapshots,
	}

	router.GET("/healthz", app.livenessCheck)
	router.HEAD("/healthz", app.livenessCheck)
	router.GET("/readyz", app.readinessCheck)
	router.HEAD("/readyz", app.readinessCheck)
	router.POST("/webhook", webhookHandler.Handle)
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsPassword != "", cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.WebhookHTTPRead,
		ReadTimeout:       config.WebhookHTTPRead,
		WriteTimeout:      config.WebhookHTTPWrite,
		IdleTimeout:       config.WebhookHTTPIdle,
	}

	log.Info("Initialization complete")
	return app, nil
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (a *Application) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.ReadinessCheckTimeout)
	defer cancel()

	if err := a.db.Conn().PingContext(ctx); err != nil {
		a.logger.WithError(err).Warn("Readiness check failed: database unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "database unavailable",
		})
		return
	}

	tables := map[string]int64{}
	if counts, err := a.db.TableCounts(ctx); err == nil {
		tables = counts
	} else {
		a.logger.WithError(err).Warn("Failed to count tables in readiness check")
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "connected",
		"tables":   tables,
		"features": a.getFeatures(),
	})
}

func (a *Application) getFeatures() map[string]bool {
	return map[string]bool{
		"reminder_delivery": a.cfg.NotifyURL != "",
		"snapshot_backup":   a.snapshots != nil,
		"sentry":            sentry.IsEnabled(),
	}
}

// Run starts the HTTP server and background jobs, then blocks until a
// shutdown signal arrives.
//
// Shutdown sequence:
//  1. Receive SIGINT/SIGTERM
//  2. Cancel context to signal background jobs to stop
//  3. Wait for background jobs to complete
//  4. Close resources in order (HTTP server, rate limiters, database)
//
// Jobs are stopped before the database closes so in-flight reminder and
// snapshot transactions never hit a closed connection.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.startBackgroundJobs(ctx)
	a.startHTTPServer()

	sig := a.waitForShutdownSignal()
	a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")

	cancel()

	a.logger.Info("Waiting for background jobs to finish...")
	start := time.Now()
	a.wg.Wait()
	a.logger.WithField("duration_ms", time.Since(start).Milliseconds()).
		Info("All background jobs completed")

	return a.shutdown()
}

// startBackgroundJobs starts all background goroutines tracked by WaitGroup.
func (a *Application) startBackgroundJobs(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.scheduler.Run(ctx); err != nil && ctx.Err() == nil {
			a.logger.WithError(err).Error("Reminder scheduler stopped")
		}
	}()
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.retentionPurge(ctx)
	}()
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.updateTableMetrics(ctx)
	}()
	if a.snapshots != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			if err := a.snapshots.Run(ctx, a.db); err != nil && ctx.Err() == nil {
				a.logger.WithError(err).Error("Snapshot job stopped")
			}
		}()
	}
}

// startHTTPServer starts the HTTP server in a goroutine.
func (a *Application) startHTTPServer() {
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Error("HTTP server error")
		}
	}()
}

// waitForShutdownSignal blocks until SIGINT/SIGTERM is received.
func (a *Application) waitForShutdownSignal() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}

// shutdown performs graceful shutdown of the HTTP server and resources.
// Must be called after background jobs have stopped.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	a.logger.Info("Closing resources...")

	a.webhookHandler.Stop()

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).WithField("component", "database").Error("Component close error")
	}

	if sentry.IsEnabled() {
		sentry.Flush(2 * time.Second)
	}

	a.logger.Info("Shutdown complete")
	return nil
}

// retentionPurge deletes expired rows daily at a fixed local hour,
// exits on context cancellation.
func (a *Application) retentionPurge(ctx context.Context) {
	a.logger.Debug("Retention purge job started")
	defer a.logger.Debug("Retention purge job stopped")

	// Run initial purge on startup with independent context so a quick
	// shutdown does not abort it mid-transaction.
	initialCtx, initialCancel := context.WithTimeout(context.Background(), config.RetentionPurgeTimeout)
	//nolint:contextcheck // Intentionally using independent context
	a.runRetentionPurge(initialCtx)
	initialCancel()

	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), config.RetentionPurgeHour, 0, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}

		a.logger.WithField("next_run", next.Format(time.RFC3339)).
			Info("Scheduled next retention purge")

		select {
		case <-ctx.Done():
			a.logger.Debug("Retention purge received shutdown signal")
			return
		case <-time.After(time.Until(next)):
			a.runRetentionPurge(ctx)
		}
	}
}

// runRetentionPurge performs the actual purge operation.
func (a *Application) runRetentionPurge(ctx context.Context) {
	startTime := time.Now()
	a.logger.Info("Starting retention purge...")

	cutoff := time.Now().AddDate(0, 0, -a.cfg.RetentionDays)
	deleted, err := a.db.PurgeOldRecords(ctx, cutoff)
	if err != nil {
		a.logger.WithError(err).Error("Retention purge failed")
		sentry.CaptureException(err)
		return
	}

	if _, err := a.db.Conn().Exec("VACUUM"); err != nil {
		a.logger.WithError(err).Warn("Failed to VACUUM database")
	}

	a.logger.WithField("deleted", deleted).
		WithField("cutoff", cutoff.Format(time.RFC3339)).
		WithField("duration_ms", time.Since(startTime).Milliseconds()).
		Info("Retention purge completed")
}

// updateTableMetrics periodically records table row counts to Prometheus.
func (a *Application) updateTableMetrics(ctx context.Context) {
	a.logger.Debug("Table metrics job started")
	defer a.logger.Debug("Table metrics job stopped")

	ticker := time.NewTicker(config.TableMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("Table metrics received shutdown signal")
			return
		case <-ticker.C:
			a.recordTableMetrics(ctx)
		}
	}
}

func (a *Application) recordTableMetrics(ctx context.Context) {
	counts, err := a.db.TableCounts(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Failed to count tables for metrics")
		return
	}
	for table, count := range counts {
		a.metrics.SetTableSize(table, int(count))
	}
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'")
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests with status-based log levels:
// 5xx=Error, 4xx=Warn, 404=Debug, 3xx/2xx=Debug.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = c.GetHeader("X-Request-ID")
		}
		if requestID != "" {
			ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		entry := log.WithField("http_method", method).
			WithField("http_path", path).
			WithField("http_status", status).
			WithField("duration_ms", duration.Milliseconds()).
			WithField("client_ip", c.ClientIP())

		if requestID != "" {
			entry = entry.WithRequestID(requestID)
		}

		if status >= 500 {
			entry.Error("HTTP request failed")
		} else if status >= 400 && status != 404 {
			entry.Warn("HTTP request rejected")
		} else if status == 404 {
			entry.Debug("HTTP request not found")
		} else {
			entry.Debug("HTTP request completed")
		}
	}
}
