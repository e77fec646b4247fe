package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level LogLevel, format string) (*LibLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewLogger(&LoggerConfig{Level: level, Format: format, Output: buf}), buf
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{" error ", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, "text")
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	assert.Empty(t, buf.String())

	logger.Warn(ctx, errors.New("careful"), "warn message")
	logger.Error(ctx, errors.New("broken"), "error message")

	out := buf.String()
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error=careful")
	assert.Contains(t, out, "error message")
}

func TestJSONOutputCarriesFields(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, "json")

	logger.WithComponent("registry").With("url", "https://r/button.json").
		Debug(context.Background(), "fetching", "attempt", 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))

	assert.Equal(t, "fetching", entry["msg"])
	assert.Equal(t, "registry", entry["component"])
	assert.Equal(t, "https://r/button.json", entry["url"])
	assert.EqualValues(t, 1, entry["attempt"])
}

func TestWithDoesNotMutateParent(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, "text")

	_ = logger.With("child", true)
	logger.Info(context.Background(), "parent")

	assert.NotContains(t, buf.String(), "child=true")
}

func TestOddFieldsIgnored(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, "text")

	logger.Info(context.Background(), "odd", "dangling")

	assert.Contains(t, buf.String(), "odd")
	assert.NotContains(t, buf.String(), "dangling")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Error(context.Background(), errors.New("x"), "discarded")
}

func TestSanitizeForLog(t *testing.T) {
	assert.Equal(t, "[REDACTED]", SanitizeForLog("Authorization: Bearer abc"))
	assert.Equal(t, "plain", SanitizeForLog("plain"))

	long := strings.Repeat("a", 1200)
	assert.True(t, strings.HasSuffix(SanitizeForLog(long), "...[TRUNCATED]"))
}

func TestPerfLogger(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, "text")

	op := logger.StartOperation("fetch_entry")
	op.End(context.Background())
	assert.Contains(t, buf.String(), "operation=fetch_entry")

	buf.Reset()
	op.EndWithError(context.Background(), errors.New("timeout"))
	assert.Contains(t, buf.String(), "Operation failed")
	assert.Contains(t, buf.String(), "error=timeout")
}

func TestPerfLoggerFailureStaysQuietAboveDebug(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, "text")

	logger.StartOperation("install").EndWithError(context.Background(), errors.New("exit status 1"))
	assert.Empty(t, buf.String())
}
