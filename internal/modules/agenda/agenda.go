// Package agenda handles scheduling intents: it persists appointments,
// queues their reminders and answers agenda queries.
package agenda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmarques-dev/assistente-go/internal/bot"
	"github.com/dmarques-dev/assistente-go/internal/intent"
	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/storage"
	"github.com/dmarques-dev/assistente-go/internal/temporal"
)

// Handler implements bot.Handler for schedule and query intents.
type Handler struct {
	db           *storage.DB
	logger       *logger.Logger
	reminderLead time.Duration
	now          func() time.Time
}

// Config holds the handler dependencies.
type Config struct {
	DB           *storage.DB
	Logger       *logger.Logger
	ReminderLead time.Duration

	// Now overrides the clock, used by tests. Defaults to time.Now.
	Now func() time.Time
}

// New creates the agenda handler.
func New(cfg Config) *Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		db:           cfg.DB,
		logger:       cfg.Logger.WithModule("agenda"),
		reminderLead: cfg.ReminderLead,
		now:          now,
	}
}

// Name identifies the module.
func (h *Handler) Name() string { return "agenda" }

// CanHandle claims schedule and query intents.
func (h *Handler) CanHandle(category intent.Category) bool {
	return category == intent.CategorySchedule || category == intent.CategoryQuery
}

// Handle saves an appointment or lists today's agenda.
func (h *Handler) Handle(ctx context.Context, msg bot.Message, res *intent.ScheduleIntent) ([]string, error) {
	if res.Category == intent.CategoryQuery {
		return h.listToday(ctx, msg.UserID)
	}
	return h.schedule(ctx, msg, res)
}

func (h *Handler) schedule(ctx context.Context, msg bot.Message, res *intent.ScheduleIntent) ([]string, error) {
	appt := &storage.Appointment{
		UserID:   msg.UserID,
		Title:    res.Title,
		Date:     res.Temporal.FormatDate(),
		Time:     res.Temporal.FormatTime(),
		Category: res.Category.String(),
	}
	if _, err := h.db.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to save appointment: %w", err)
	}

	reply := fmt.Sprintf("Compromisso agendado!\n\n%s\nData: %s\nHora: %s",
		appt.Title, appt.Date, appt.Time)

	if h.queueReminder(ctx, msg, appt) {
		reply += fmt.Sprintf("\n\nLembrete agendado: você receberá uma notificação %d minutos antes.",
			int(h.reminderLead.Minutes()))
	}
	reply += "\n\nUse 'Minha agenda' para ver todos."

	return []string{reply}, nil
}

// queueReminder stores a reminder due reminderLead before the
// appointment. Appointments too close or in the past get no reminder.
func (h *Handler) queueReminder(ctx context.Context, msg bot.Message, appt *storage.Appointment) bool {
	at, err := time.ParseInLocation(
		temporal.DateLayout+" "+temporal.TimeLayout,
		appt.Date+" "+appt.Time,
		h.now().Location(),
	)
	if err != nil {
		h.logger.WithError(err).WarnContext(ctx, "unparseable appointment timestamp",
			"date", appt.Date, "time", appt.Time)
		return false
	}

	dueAt := at.Add(-h.reminderLead)
	if !dueAt.After(h.now()) {
		return false
	}

	reminder := &storage.Reminder{
		UserID:  msg.UserID,
		ChatID:  msg.ChatID,
		Message: fmt.Sprintf("LEMBRETE: %s às %s", appt.Title, appt.Time),
		DueAt:   dueAt.Unix(),
	}
	if _, err := h.db.SaveReminder(ctx, reminder); err != nil {
		h.logger.WithError(err).ErrorContext(ctx, "failed to queue reminder")
		return false
	}
	return true
}

func (h *Handler) listToday(ctx context.Context, userID int64) ([]string, error) {
	today := h.now().Format(temporal.DateLayout)
	appointments, err := h.db.AppointmentsOn(ctx, userID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	if len(appointments) == 0 {
		return []string{"Sua agenda de hoje\n\nNenhum compromisso para hoje!"}, nil
	}

	var b strings.Builder
	b.WriteString("Sua agenda de hoje\n\n")
	for _, a := range appointments {
		fmt.Fprintf(&b, "- %s - %s\n", a.Title, a.Time)
	}
	fmt.Fprintf(&b, "\nTotal: %d compromisso(s)", len(appointments))
	return []string{b.String()}, nil
}
