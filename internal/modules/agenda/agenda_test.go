package agenda

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmarques-dev/assistente-go/internal/bot"
	"github.com/dmarques-dev/assistente-go/internal/intent"
	"github.com/dmarques-dev/assistente-go/internal/lexicon"
	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/storage"
)

// monday is 2024-03-04 08:00 UTC.
var monday = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

func newHandler(t *testing.T) (*Handler, *storage.DB) {
	t.Helper()
	db, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("NewTestDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	h := New(Config{
		DB:           db,
		Logger:       logger.NewWithWriter("error", io.Discard),
		ReminderLead: 15 * time.Minute,
		Now:          func() time.Time { return monday },
	})
	return h, db
}

func resolve(t *testing.T, text string) *intent.ScheduleIntent {
	t.Helper()
	res, err := intent.NewResolver(lexicon.New()).Resolve(text, monday)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return res
}

func TestHandleSchedulePersistsAndQueuesReminder(t *testing.T) {
	h, db := newHandler(t)
	ctx := context.Background()
	msg := bot.Message{UserID: 1, ChatID: 42, Text: "Telefonar ao pai às 10h"}

	replies, err := h.Handle(ctx, msg, resolve(t, msg.Text))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(replies) != 1 || !strings.Contains(replies[0], "Compromisso agendado") {
		t.Fatalf("unexpected replies: %v", replies)
	}
	if !strings.Contains(replies[0], "Call pai") || !strings.Contains(replies[0], "10:00") {
		t.Errorf("reply missing appointment details: %s", replies[0])
	}
	if !strings.Contains(replies[0], "Lembrete agendado") {
		t.Errorf("reply missing reminder note: %s", replies[0])
	}

	appointments, err := db.AppointmentsOn(ctx, 1, "04/03/2024")
	if err != nil {
		t.Fatalf("AppointmentsOn: %v", err)
	}
	if len(appointments) != 1 || appointments[0].Title != "Call pai" {
		t.Fatalf("unexpected appointments: %+v", appointments)
	}

	// Reminder is due 15 minutes before the appointment.
	due, err := db.DueReminders(ctx, time.Date(2024, 3, 4, 9, 45, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DueReminders: %v", err)
	}
	if len(due) != 1 || due[0].ChatID != 42 {
		t.Fatalf("unexpected due reminders: %+v", due)
	}
	if !strings.Contains(due[0].Message, "Call pai") {
		t.Errorf("reminder message = %q", due[0].Message)
	}

	early, err := db.DueReminders(ctx, time.Date(2024, 3, 4, 9, 44, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DueReminders: %v", err)
	}
	if len(early) != 0 {
		t.Errorf("reminder due too early: %+v", early)
	}
}

func TestHandleScheduleSkipsReminderTooClose(t *testing.T) {
	h, db := newHandler(t)
	ctx := context.Background()
	// 08:05 is inside the 15 minute lead window at 08:00.
	msg := bot.Message{UserID: 1, ChatID: 42, Text: "Reunião hoje às 8h05"}

	replies, err := h.Handle(ctx, msg, resolve(t, msg.Text))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if strings.Contains(replies[0], "Lembrete agendado") {
		t.Errorf("reminder should not be queued: %s", replies[0])
	}

	due, err := db.DueReminders(ctx, monday.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("DueReminders: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("unexpected reminders: %+v", due)
	}
}

func TestHandleQueryListsToday(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()
	msg := bot.Message{UserID: 1, ChatID: 42}

	replies, err := h.Handle(ctx, msg, resolve(t, "minha agenda"))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(replies[0], "Nenhum compromisso") {
		t.Errorf("empty agenda reply = %s", replies[0])
	}

	msg.Text = "Telefonar ao pai às 10h"
	if _, err := h.Handle(ctx, msg, resolve(t, msg.Text)); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	replies, err = h.Handle(ctx, msg, resolve(t, "minha agenda"))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !strings.Contains(replies[0], "Call pai - 10:00") {
		t.Errorf("agenda reply = %s", replies[0])
	}
	if !strings.Contains(replies[0], "1 compromisso(s)") {
		t.Errorf("agenda reply missing total: %s", replies[0])
	}
}

func TestCanHandle(t *testing.T) {
	h, _ := newHandler(t)

	if !h.CanHandle(intent.CategorySchedule) || !h.CanHandle(intent.CategoryQuery) {
		t.Error("agenda should claim schedule and query")
	}
	if h.CanHandle(intent.CategoryShoppingList) || h.CanHandle(intent.CategoryGreeting) {
		t.Error("agenda should not claim other categories")
	}
}
