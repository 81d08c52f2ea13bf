// Package webhook exposes the HTTP endpoint that feeds inbound chat
// messages to the bot processor. The endpoint is transport-agnostic:
// any chat bridge that can POST JSON can deliver messages.
package webhook

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmarques-dev/assistente-go/internal/bot"
	"github.com/dmarques-dev/assistente-go/internal/ctxutil"
	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/metrics"
	"github.com/dmarques-dev/assistente-go/internal/ratelimit"
)

// TokenHeader carries the shared webhook secret.
const TokenHeader = "X-Webhook-Token"

// Request is the inbound message payload.
type Request struct {
	UserID int64  `json:"user_id" binding:"required"`
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text" binding:"required"`
}

// Response carries the reply texts for the chat bridge to deliver.
type Response struct {
	Replies []string `json:"replies"`
}

// Handler handles inbound webhook requests.
type Handler struct {
	token     string
	processor *bot.Processor
	logger    *logger.Logger
	metrics   *metrics.Metrics
	global    *ratelimit.Limiter
	perUser   *ratelimit.PerKeyLimiter
	timeout   time.Duration
}

// HandlerConfig holds configuration for creating a new Handler.
type HandlerConfig struct {
	Token         string
	Processor     *bot.Processor
	Logger        *logger.Logger
	Metrics       *metrics.Metrics
	Timeout       time.Duration
	GlobalRateRPS float64
	UserBurst     float64
	UserRefill    float64
}

// NewHandler creates a new webhook handler with global and per-user
// rate limiting.
func NewHandler(cfg HandlerConfig) *Handler {
	h := &Handler{
		token:     cfg.Token,
		processor: cfg.Processor,
		logger:    cfg.Logger.WithModule("webhook"),
		metrics:   cfg.Metrics,
		global:    ratelimit.New(cfg.GlobalRateRPS, cfg.GlobalRateRPS),
		timeout:   cfg.Timeout,
	}
	h.perUser = ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
		MaxTokens:  cfg.UserBurst,
		RefillRate: cfg.UserRefill,
	})
	h.perUser.OnDrop(func() {
		cfg.Metrics.RecordRateLimiterDrop("user")
	})
	return h
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Stop releases the per-user limiter's cleanup goroutine.
func (h *Handler) Stop() {
	h.perUser.Stop()
}

// Handle is the Gin handler for POST /webhook.
func (h *Handler) Handle(c *gin.Context) {
	if h.token != "" && c.GetHeader(TokenHeader) != h.token {
		h.metrics.RecordWebhook("unauthorized")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook token"})
		return
	}

	if !h.global.Allow() {
		h.metrics.RecordWebhook("rate_limited")
		h.metrics.RecordRateLimiterDrop("global")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordWebhook("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if !h.perUser.Allow(userKey(req.UserID)) {
		h.metrics.RecordWebhook("rate_limited")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests for user"})
		return
	}

	ctx := c.Request.Context()
	ctx = ctxutil.WithRequestID(ctx, uuid.NewString())
	ctx = ctxutil.WithUserID(ctx, userKey(req.UserID))
	ctx = ctxutil.WithChatID(ctx, strconv.FormatInt(req.ChatID, 10))

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	replies, err := h.processor.Process(ctx, bot.Message{
		UserID: req.UserID,
		ChatID: req.ChatID,
		Text:   req.Text,
	})
	if err != nil {
		h.metrics.RecordWebhook("error")
		h.logger.WithError(err).ErrorContext(ctx, "message processing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	h.metrics.RecordWebhook("success")
	c.JSON(http.StatusOK, Response{Replies: replies})
}
