// Package bot provides the handler interface and the message processor
// that turns resolved intents into user-facing replies. Each module
// (agenda, shopping) implements the Handler interface.
package bot

import (
	"context"

	"github.com/dmarques-dev/assistente-go/internal/intent"
)

// Message is one inbound chat message, already isolated from transport
// metadata.
type Message struct {
	UserID int64
	ChatID int64
	Text   string
}

// Handler defines the interface that all bot modules implement.
type Handler interface {
	// Name identifies the module in logs.
	Name() string

	// CanHandle reports whether this handler owns the resolved category.
	CanHandle(category intent.Category) bool

	// Handle processes the message and returns the reply texts.
	Handle(ctx context.Context, msg Message, res *intent.ScheduleIntent) ([]string, error)
}
