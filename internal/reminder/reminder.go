// Package reminder delivers queued reminders when they come due. A
// Scheduler polls storage and fans deliveries out to a Notifier, which
// abstracts over whatever bridge carries the notification to the user.
package reminder

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/metrics"
	"github.com/dmarques-dev/assistente-go/internal/storage"
)

// deliveryConcurrency caps parallel notifier calls per poll pass.
const deliveryConcurrency = 4

// Notifier delivers one reminder to its chat.
type Notifier interface {
	Notify(ctx context.Context, r *storage.Reminder) error
}

// Scheduler polls for due reminders and delivers them.
type Scheduler struct {
	db       *storage.DB
	notifier Notifier
	logger   *logger.Logger
	metrics  *metrics.Metrics
	interval time.Duration
	now      func() time.Time
}

// Config holds the scheduler dependencies.
type Config struct {
	DB           *storage.DB
	Notifier     Notifier
	Logger       *logger.Logger
	Metrics      *metrics.Metrics
	PollInterval time.Duration

	// Now overrides the clock, used by tests. Defaults to time.Now.
	Now func() time.Time
}

// NewScheduler creates a reminder scheduler.
func NewScheduler(cfg Config) *Scheduler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		db:       cfg.DB,
		notifier: cfg.Notifier,
		logger:   cfg.Logger.WithModule("reminder"),
		metrics:  cfg.Metrics,
		interval: interval,
		now:      now,
	}
}

// Run polls until ctx is canceled. One failed pass is logged and does
// not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("reminder scheduler started", "interval", s.interval.String())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.DeliverDue(ctx); err != nil {
				s.logger.WithError(err).Error("reminder delivery pass failed")
			}
		}
	}
}

// DeliverDue runs one delivery pass and returns how many reminders were
// sent. Reminders whose delivery fails stay queued for the next pass.
func (s *Scheduler) DeliverDue(ctx context.Context) (int, error) {
	due, err := s.db.DueReminders(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deliveryConcurrency)

	sent := make(chan int64, len(due))
	for _, r := range due {
		r := r
		g.Go(func() error {
			if err := s.notifier.Notify(gctx, r); err != nil {
				s.metrics.RecordReminder("error")
				s.logger.WithError(err).ErrorContext(gctx, "failed to deliver reminder",
					"reminder_id", r.ID, "chat_id", r.ChatID)
				return nil
			}
			if err := s.db.MarkReminderSent(gctx, r.ID); err != nil {
				s.logger.WithError(err).ErrorContext(gctx, "failed to mark reminder sent",
					"reminder_id", r.ID)
				return nil
			}
			s.metrics.RecordReminder("sent")
			sent <- r.ID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	close(sent)

	count := 0
	for range sent {
		count++
	}
	if count > 0 {
		s.logger.InfoContext(ctx, "reminders delivered", "count", count)
	}
	return count, nil
}
