package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resetGlobal() {
	globalLogger = nil
	once = sync.Once{}
}

func TestInit(t *testing.T) {
	resetGlobal()

	require.NoError(t, Init(Config{Level: "info", Format: "json"}))
	// Second call is a no-op
	require.NoError(t, Init(Config{Level: "debug", Format: "text"}))
	assert.NotNil(t, Get())
}

func TestInit_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "invalid-level", Format: "json"}, &buf)
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("shown")
	require.NoError(t, l.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	l.Info("page rendered", zap.String(FieldFormat, "html"), zap.Int("bytes", 42))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "page rendered", entry["msg"])
	assert.Equal(t, "html", entry[FieldFormat])
	assert.EqualValues(t, 42, entry["bytes"])
}

func TestNew_TextFormatWritesKeyValue(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "debug", Format: "text"}, &buf)
	require.NoError(t, err)

	l.Warn("export slow",
		zap.String(FieldFormat, "pdf"),
		zap.Duration("took", 1500*time.Millisecond),
		zap.Bool("cached", false),
		zap.Error(errors.New("boom")),
	)

	out := buf.String()
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "export slow")
	assert.Contains(t, out, "format=pdf")
	assert.Contains(t, out, "took=1.5s")
	assert.Contains(t, out, "cached=false")
	assert.Contains(t, out, "error=boom")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestNew_WithFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "retailscope.log")

	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text", File: logFile}, &buf)
	require.NoError(t, err)

	l.Info("to both")
	require.NoError(t, l.Sync())
	assert.FileExists(t, logFile)
}

func TestApplyRotationDefaults(t *testing.T) {
	cfg := Config{}
	applyRotationDefaults(&cfg)
	assert.Equal(t, 100, cfg.MaxSize)
	assert.Equal(t, 7, cfg.MaxAge)
	assert.Equal(t, 5, cfg.MaxBackups)

	cfg = Config{MaxSize: 1, MaxAge: 2, MaxBackups: 3}
	applyRotationDefaults(&cfg)
	assert.Equal(t, 1, cfg.MaxSize)
	assert.Equal(t, 2, cfg.MaxAge)
	assert.Equal(t, 3, cfg.MaxBackups)
}

func TestGet_BeforeInitIsNop(t *testing.T) {
	resetGlobal()
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestHelpers(t *testing.T) {
	resetGlobal()
	require.NoError(t, Init(Config{Level: "debug", Format: "json"}))

	assert.NotNil(t, Sugar())
	assert.NotNil(t, With(zap.String("key", "value")))
	assert.NotNil(t, Named("test-logger"))
	assert.NotNil(t, WithRequestID("req-1"))
	assert.Same(t, Get(), WithRequestID(""))

	// Must not panic
	Debug("debug message", zap.String("key", "value"))
	Info("info message")
	Warn("warn message")
	Error("error message")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantError bool
	}{
		{"valid debug", "debug", false},
		{"valid info", "info", false},
		{"valid warn", "warn", false},
		{"valid error", "error", false},
		{"invalid level", "invalid", true},
		{"empty level", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLevel(tt.level)
			assert.Equal(t, tt.wantError, err != nil)
		})
	}
}

func TestNew_TextFormatKeepsContextFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text"}, &buf)
	require.NoError(t, err)

	l.With(zap.String(FieldRequestID, "abc123")).Info("served")
	assert.Contains(t, buf.String(), "request_id=abc123")
}
