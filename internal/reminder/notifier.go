package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/storage"
)

// HTTPNotifier posts reminders to a chat bridge endpoint as JSON.
type HTTPNotifier struct {
	url    string
	client *http.Client
}

// notifyPayload is the wire format the bridge receives.
type notifyPayload struct {
	UserID  int64  `json:"user_id"`
	ChatID  int64  `json:"chat_id"`
	Message string `json:"message"`
}

// NewHTTPNotifier creates a notifier that posts to url.
func NewHTTPNotifier(url string, timeout time.Duration) *HTTPNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Notify delivers one reminder. Any non-2xx response is an error so the
// reminder stays queued.
func (n *HTTPNotifier) Notify(ctx context.Context, r *storage.Reminder) error {
	body, err := json.Marshal(notifyPayload{
		UserID:  r.UserID,
		ChatID:  r.ChatID,
		Message: r.Message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode reminder payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post reminder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// LogNotifier writes reminders to the log. It is the fallback when no
// bridge endpoint is configured.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log.WithModule("reminder")}
}

// Notify logs the reminder instead of delivering it.
func (n *LogNotifier) Notify(ctx context.Context, r *storage.Reminder) error {
	n.logger.InfoContext(ctx, "reminder due",
		"chat_id", r.ChatID,
		"user_id", r.UserID,
		"message", r.Message)
	return nil
}
