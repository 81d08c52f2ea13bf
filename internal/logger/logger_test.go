package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dmarques-dev/assistente-go/internal/ctxutil"
)

func TestNewWithWriter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithField("key", "value").Info("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%s)", err, buf.String())
	}

	if entry["message"] != "hello" {
		t.Errorf("message = %v, want hello", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["key"] != "value" {
		t.Errorf("key = %v, want value", entry["key"])
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Error("missing timestamp field")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Info("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info record emitted at warn level: %s", buf.String())
	}

	log.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn record not emitted")
	}
	if !strings.Contains(buf.String(), `"level":"warning"`) {
		t.Errorf("warn level not renamed to warning: %s", buf.String())
	}
}

func TestContextHandler_ExtractsTracingValues(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf)

	ctx := ctxutil.WithUserID(context.Background(), "u-1")
	ctx = ctxutil.WithChatID(ctx, "c-1")
	ctx = ctxutil.WithRequestID(ctx, "r-1")

	log.InfoContext(ctx, "traced")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["user_id"] != "u-1" || entry["chat_id"] != "c-1" || entry["request_id"] != "r-1" {
		t.Errorf("tracing values missing from record: %v", entry)
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithFields(map[string]any{"a": 1, "b": "two"}).Info("fields")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if entry["a"] != float64(1) || entry["b"] != "two" {
		t.Errorf("fields missing: %v", entry)
	}
}
