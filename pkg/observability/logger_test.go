package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONIncludesServiceAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:          LogLevelInfo,
		Format:         LogFormatJSON,
		Output:         &buf,
		ServiceName:    "bookd",
		ServiceVersion: "test",
	})

	logger.Info("slot committed", "slug", "intro-call")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "slot committed", entry["msg"])
	assert.Equal(t, "bookd", entry["service"])
	assert.Equal(t, "test", entry["version"])
	assert.Equal(t, "intro-call", entry["slug"])
}

func TestNewLogger_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:  LogLevelInfo,
		Format: LogFormatJSON,
		Output: &buf,
	})

	logger.Debug("hidden")
	assert.Zero(t, buf.Len())

	logger.Info("shown")
	assert.NotZero(t, buf.Len())
}

func TestNewLogger_CorrelationIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{
		Level:  LogLevelInfo,
		Format: LogFormatJSON,
		Output: &buf,
	})

	ctx := WithCorrelationID(context.Background(), "corr-123")
	ctx = WithRequestID(ctx, "req-456")
	logger.InfoContext(ctx, "availability computed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "corr-123", entry[CorrelationIDKey])
	assert.Equal(t, "req-456", entry[RequestIDKey])
}

func TestNewRequestContext_GeneratesIDs(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "")

	assert.NotEmpty(t, CorrelationIDFromContext(ctx))
	assert.NotEmpty(t, RequestIDFromContext(ctx))

	child := NewRequestContext(ctx, CorrelationIDFromContext(ctx))
	assert.Equal(t, CorrelationIDFromContext(ctx), CorrelationIDFromContext(child))
	assert.NotEqual(t, RequestIDFromContext(ctx), RequestIDFromContext(child))
}
