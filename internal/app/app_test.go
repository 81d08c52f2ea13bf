package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarques-dev/assistente-go/internal/config"
	"github.com/dmarques-dev/assistente-go/internal/logger"
	"github.com/dmarques-dev/assistente-go/internal/metrics"
	"github.com/dmarques-dev/assistente-go/internal/storage"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()

	db, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &Application{
		cfg:     &config.Config{RetentionDays: 90},
		logger:  logger.NewWithWriter("error", io.Discard),
		db:      db,
		metrics: metrics.New(prometheus.NewRegistry()),
	}
}

func TestLivenessCheck(t *testing.T) {
	app := newTestApp(t)

	router := gin.New()
	router.GET("/healthz", app.livenessCheck)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alive")
}

func TestReadinessCheck(t *testing.T) {
	app := newTestApp(t)

	router := gin.New()
	router.GET("/readyz", app.readinessCheck)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status   string           `json:"status"`
		Database string           `json:"database"`
		Tables   map[string]int64 `json:"tables"`
		Features map[string]bool  `json:"features"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, "ready", body.Status)
	assert.Equal(t, "connected", body.Database)
	assert.Contains(t, body.Tables, "appointments")
	assert.False(t, body.Features["snapshot_backup"])
}

func TestReadinessCheck_DatabaseDown(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.db.Close())

	router := gin.New()
	router.GET("/readyz", app.readinessCheck)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "database unavailable")
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(securityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	log := logger.NewWithWriter("error", io.Discard)

	router := gin.New()
	router.Use(loggingMiddleware(log))
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRunRetentionPurge(t *testing.T) {
	app := newTestApp(t)

	// Must not panic or error against an empty database.
	app.runRetentionPurge(context.Background())
}
