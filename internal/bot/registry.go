package bot

import (
	"context"

	"github.com/dmarques-dev/assistente-go/internal/intent"
)

// Registry manages bot handlers and dispatches resolved messages.
type Registry struct {
	handlers []Handler
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make([]Handler, 0)}
}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) {
	r.handlers = append(r.handlers, h)
}

// Dispatch routes the message to the first handler that claims the
// resolved category. Returns nil when no handler claims it.
func (r *Registry) Dispatch(ctx context.Context, msg Message, res *intent.ScheduleIntent) ([]string, error) {
	for _, h := range r.handlers {
		if h.CanHandle(res.Category) {
			return h.Handle(ctx, msg, res)
		}
	}
	return nil, nil
}
