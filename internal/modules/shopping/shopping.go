// Package shopping handles shopping-list intents: adding recognized
// products, listing the open list and marking items as bought.
package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmarques-dev/assistente-go/internal/bot"
	domerrors "github.com/dmarques-dev/assistente-go/internal/errors"
	"github.com/dmarques-dev/assistente-go/internal/extract"
	"github.com/dmarques-dev/assistente-go/internal/intent"
	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/storage"
)

// Handler implements bot.Handler for shopping-list intents.
type Handler struct {
	db        *storage.DB
	extractor *extract.Extractor
	logger    *logger.Logger
}

// New creates the shopping handler.
func New(db *storage.DB, extractor *extract.Extractor, log *logger.Logger) *Handler {
	return &Handler{
		db:        db,
		extractor: extractor,
		logger:    log.WithModule("shopping"),
	}
}

// Name identifies the module.
func (h *Handler) Name() string { return "shopping" }

// CanHandle claims shopping-list intents.
func (h *Handler) CanHandle(category intent.Category) bool {
	return category == intent.CategoryShoppingList
}

// Handle routes between listing, marking bought and adding items.
func (h *Handler) Handle(ctx context.Context, msg bot.Message, _ *intent.ScheduleIntent) ([]string, error) {
	lowered := strings.ToLower(strings.TrimSpace(msg.Text))

	switch {
	case strings.Contains(lowered, "minha lista"):
		return h.list(ctx, msg.UserID)
	case strings.HasPrefix(lowered, "comprei "):
		item := strings.TrimSpace(strings.TrimPrefix(lowered, "comprei "))
		return h.markBought(ctx, msg.UserID, item)
	default:
		return h.addItems(ctx, msg.UserID, msg.Text)
	}
}

func (h *Handler) list(ctx context.Context, userID int64) ([]string, error) {
	items, err := h.db.UnpurchasedItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}

	if len(items) == 0 {
		return []string{"Sua lista de compras\n\nLista vazia! Tudo em dia."}, nil
	}

	var b strings.Builder
	b.WriteString("Sua lista de compras\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s\n", it.Item)
	}
	fmt.Fprintf(&b, "\nTotal: %d item(ns)", len(items))
	return []string{b.String()}, nil
}

func (h *Handler) markBought(ctx context.Context, userID int64, item string) ([]string, error) {
	if item == "" {
		return []string{"Diga qual item comprou, por exemplo: 'Comprei leite'."}, nil
	}

	err := h.db.MarkPurchased(ctx, userID, item)
	if errors.Is(err, domerrors.ErrNotFound) {
		return []string{fmt.Sprintf("'%s' não encontrado na lista.", item)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark item bought: %w", err)
	}
	return []string{fmt.Sprintf("'%s' marcado como comprado! Item removido da lista.", item)}, nil
}

func (h *Handler) addItems(ctx context.Context, userID int64, text string) ([]string, error) {
	products := h.extractor.Products(text)
	if len(products) == 0 {
		return []string{"Não identifiquei itens para adicionar.\n\nTente assim:\n- Preciso de leite e pão\n- Acabou o arroz e feijão"}, nil
	}

	var added []string
	for _, item := range products {
		inserted, err := h.db.AddShoppingItem(ctx, userID, item)
		if err != nil {
			return nil, fmt.Errorf("failed to add shopping item: %w", err)
		}
		if inserted {
			added = append(added, item)
		}
	}

	if len(added) == 0 {
		return []string{"Esses itens já estão na sua lista.\n\nUse 'Minha lista' para ver todos."}, nil
	}

	var b strings.Builder
	b.WriteString("Itens adicionados!\n\n")
	for _, item := range added {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	b.WriteString("\nUse 'Minha lista' para ver todos os itens.")
	return []string{b.String()}, nil
}
