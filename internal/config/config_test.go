package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailscope/retailscope/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retailscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8501, cfg.Server.Port)
	assert.Equal(t, DefaultPageTitle, cfg.Page.Title)
	assert.Equal(t, LayoutWide, cfg.Page.Layout)
	assert.Equal(t, 2000, cfg.Page.FrameHeight)
	assert.True(t, cfg.Page.Scrolling)
	assert.Equal(t, 60*time.Second, cfg.Export.PDF.Timeout)
	assert.Nil(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  read_timeout: 5s
page:
  layout: centered
  frame_height: 1200
export:
  formats: [html, pdf]
  pdf:
    timeout: 2m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, LayoutCentered, cfg.Page.Layout)
	assert.Equal(t, 1200, cfg.Page.FrameHeight)
	assert.Equal(t, []string{"html", "pdf"}, cfg.Export.Formats)
	assert.Equal(t, 2*time.Minute, cfg.Export.PDF.Timeout)

	// untouched sections keep their defaults
	assert.Equal(t, DefaultPageTitle, cfg.Page.Title)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.ErrorCode
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.yaml"), errors.ErrCodeConfigNotFound},
		{"invalid yaml", writeConfig(t, "server: [unclosed"), errors.ErrCodeConfigParse},
		{"wrong type", writeConfig(t, "page:\n  frame_height: tall\n"), errors.ErrCodeConfigParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)

			appErr, ok := errors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("RS_TEST_HOST", "127.0.0.1")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set variable", "host: ${RS_TEST_HOST}", "host: 127.0.0.1"},
		{"unset with default", "port: ${RS_TEST_UNSET:-8080}", "port: 8080"},
		{"unset without default", "file: ${RS_TEST_UNSET}", "file: "},
		{"set ignores default", "host: ${RS_TEST_HOST:-0.0.0.0}", "host: 127.0.0.1"},
		{"bare dollar untouched", "hash: $2a$10$abc", "hash: $2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnvVars(tt.input))
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RS_SERVER_PORT", "7000")
	t.Setenv("RS_SERVER_DEBUG", "yes")
	t.Setenv("RS_LOG_LEVEL", "debug")
	t.Setenv("RS_CHROME_PATH", "/opt/chrome")
	t.Setenv("RS_PROMETHEUS_PORT", "9100")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/opt/chrome", cfg.Export.PDF.ChromePath)
	assert.True(t, cfg.Telemetry.Prometheus.Enabled)
	assert.Equal(t, 9100, cfg.Telemetry.Prometheus.Port)
}

func TestWriteAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.False(t, Exists(path))

	require.NoError(t, CreateDefault(path))
	assert.True(t, Exists(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# RetailScope configuration")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "localhost", Port: 8501}
	assert.Equal(t, "localhost:8501", s.Address())
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "1", "YES", " on "} {
		assert.True(t, parseBool(v), v)
	}
	for _, v := range []string{"false", "0", "no", ""} {
		assert.False(t, parseBool(v), v)
	}
}
