package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestHTTPRequest_UsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	initialize(&buf, "info", "json")
	t.Cleanup(func() { Initialize("info", "text") })

	ctx := NewContext(context.Background(), Get().With("request_id", "req-1"))
	HTTPRequest(ctx, "GET", "/api/v1/tools", 404, 5*time.Millisecond)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, float64(404), entry["status"])
}

func TestFromContext_FallsBackToGlobal(t *testing.T) {
	assert.Equal(t, Get(), FromContext(context.Background()))
}

func TestWithService(t *testing.T) {
	var buf bytes.Buffer
	initialize(&buf, "info", "json")
	t.Cleanup(func() { Initialize("info", "text") })

	WithService("http").Info("Listening")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http", entry["service"])
}
