package bot

import (
	"context"
	"strings"
	"time"

	"github.com/dmarques-dev/assistente-go/internal/intent"
	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/metrics"
)

// maxTextLen caps inbound message size before resolution.
const maxTextLen = 4096

// helpKeywords are the keywords that trigger the help message.
var helpKeywords = []string{"ajuda", "help", "/start"}

const helpText = `Como posso ajudar?

Agendar compromissos:
- Telefonar ao pai às 10h
- Reunião amanhã 14h
- Buscar filhos escola 17h

Lista de compras:
- Preciso de leite e pão
- Comprei leite

Consultar:
- Minha agenda
- Minha lista`

const greetingText = "Olá! Em que posso ajudar? Experimente: 'Telefonar ao pai às 10h' ou 'Preciso de leite'"

// Processor handles the core logic of processing inbound messages.
// It orchestrates intent resolution and dispatching to handlers.
type Processor struct {
	registry *Registry
	resolver *intent.Resolver
	logger   *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// ProcessorConfig holds configuration for creating a new Processor.
type ProcessorConfig struct {
	Registry *Registry
	Resolver *intent.Resolver
	Logger   *logger.Logger
	Metrics  *metrics.Metrics

	// Now overrides the clock, used by tests. Defaults to time.Now.
	Now func() time.Time
}

// NewProcessor creates a new message processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Processor{
		registry: cfg.Registry,
		resolver: cfg.Resolver,
		logger:   cfg.Logger.WithModule("bot"),
		metrics:  cfg.Metrics,
		now:      now,
	}
}

// Process resolves one message and routes it to the owning handler.
// It always produces at least one reply for non-empty input.
func (p *Processor) Process(ctx context.Context, msg Message) ([]string, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil, nil
	}
	if len(text) > maxTextLen {
		p.logger.WarnContext(ctx, "message too long", "length", len(text))
		return []string{"Mensagem demasiado longa. Tente uma mensagem mais curta."}, nil
	}

	if isHelpRequest(text) {
		return []string{helpText}, nil
	}

	wallStart := time.Now()
	category := "none"
	defer func() {
		p.metrics.RecordWebhookDuration(category, time.Since(wallStart).Seconds())
	}()

	start := p.now()
	res, err := p.resolver.Resolve(text, start)
	if err != nil {
		p.logger.WithError(err).ErrorContext(ctx, "intent resolution failed")
		return []string{"Erro temporário. Tente novamente."}, nil
	}
	category = res.Category.String()
	p.metrics.RecordResolveDuration(time.Since(wallStart).Seconds())
	p.metrics.RecordIntent(category)

	p.logger.InfoContext(ctx, "message resolved",
		"category", res.Category.String(),
		"title", res.Title)

	if res.Category == intent.CategoryGreeting {
		return []string{greetingText}, nil
	}

	replies, err := p.registry.Dispatch(ctx, msg, res)
	if err != nil {
		p.logger.WithError(err).ErrorContext(ctx, "handler failed",
			"category", res.Category.String())
		return []string{"Erro temporário. Tente novamente."}, nil
	}
	if len(replies) == 0 {
		return []string{helpText}, nil
	}
	return replies, nil
}

func isHelpRequest(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range helpKeywords {
		if lowered == kw {
			return true
		}
	}
	return false
}
