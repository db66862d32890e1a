package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "empty defaults to warn", level: "", want: zerolog.WarnLevel},
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "upper case", level: "INFO", want: zerolog.InfoLevel},
		{name: "padded", level: "  error ", want: zerolog.ErrorLevel},
		{name: "garbage defaults to warn", level: "loud", want: zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestNewLogger_JSONIncludesTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "debug", Format: FormatJSON}, &buf)

	ctx := ContextWithTraceID(context.Background(), "01TESTTRACE")
	logger.Debug().Ctx(ctx).Str("component", "locator").Msg("probing")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "01TESTTRACE", entry[FieldTraceID])
	assert.Equal(t, "locator", entry["component"])
	assert.Equal(t, "probing", entry["message"])
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "error", Format: FormatJSON}, &buf)

	logger.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "slngen.log")

	result := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Msg("written")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
}

func TestNewLoggerWithPath_FallsBackToStderr(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	result := NewLoggerWithPath(Config{Output: OutputFile, File: filepath.Join(blocker, "slngen.log")})

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
	assert.NoError(t, result.Close())
}

func TestFromContext(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")

	t.Run("without logger", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		assert.Equal(t, zerolog.ErrorLevel, l.GetLevel())
	})

	t.Run("with logger", func(t *testing.T) {
		stored := zerolog.New(&bytes.Buffer{}).Level(zerolog.DebugLevel)
		ctx := stored.WithContext(context.Background())
		assert.Equal(t, zerolog.DebugLevel, FromContext(ctx).GetLevel())
	})
}

func TestGetOrGenerateTraceID(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "existing")
	assert.Equal(t, "existing", GetOrGenerateTraceID(ctx))

	generated := GetOrGenerateTraceID(context.Background())
	assert.Len(t, generated, 26)
	assert.Empty(t, TraceIDFromContext(nil)) //nolint:staticcheck // nil context is handled
}
