package infrastructure

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-123")
	assert.Equal(t, "run-123", GetRunID(ctx))
	assert.Equal(t, "", GetRunID(context.Background()))
}

func TestEnsureRunID(t *testing.T) {
	ctx := EnsureRunID(context.Background())
	first := GetRunID(ctx)
	require.NotEmpty(t, first)

	// An existing run id is preserved.
	assert.Equal(t, first, GetRunID(EnsureRunID(ctx)))
}

func TestGenerateRunID_Unique(t *testing.T) {
	assert.NotEqual(t, GenerateRunID(), GenerateRunID())
}

func TestRunHandler_InjectsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&runHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	ctx := WithRunID(context.Background(), "run-456")
	logger.InfoContext(ctx, "hello")

	assert.Contains(t, buf.String(), `"run_id":"run-456"`)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("anything else"))
}
