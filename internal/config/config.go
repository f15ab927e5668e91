// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/pkg/errors"
	"github.com/retailscope/retailscope/pkg/logger"
	"github.com/retailscope/retailscope/pkg/telemetry"
)

// DefaultConfigPath is the default path for the configuration file
const DefaultConfigPath = "config/retailscope.yaml"

// Host page defaults
const (
	DefaultPageTitle   = "AI in Indian Retail: Interactive Report"
	DefaultFrameHeight = 2000
)

// Config is the root configuration
type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Page      PageConfig       `yaml:"page"`
	Report    ReportConfig     `yaml:"report"`
	Export    ExportConfig     `yaml:"export"`
	Logging   logger.Config    `yaml:"logging"`
	Telemetry telemetry.Config `yaml:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	Debug           bool          `yaml:"debug"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// CORSOrigins is the origin whitelist for cross-origin API access
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// PageConfig describes how the host wrapper presents the report
type PageConfig struct {
	Title string `yaml:"title"`
	// Layout is "wide" or "centered"
	Layout      string `yaml:"layout"`
	FrameHeight int    `yaml:"frame_height"`
	Scrolling   bool   `yaml:"scrolling"`
}

// ReportConfig holds document rendering options
type ReportConfig struct {
	// Language is the BCP 47 tag written to the document lang attribute.
	// "auto" detects it from the environment.
	Language string `yaml:"language"`
	// DefaultTab is the tab pane shown when a request does not pick one
	DefaultTab string `yaml:"default_tab"`
	// CacheRenders keeps rendered documents per view state in memory
	CacheRenders bool `yaml:"cache_renders"`
}

// ExportConfig holds export options
type ExportConfig struct {
	OutputDir string    `yaml:"output_dir"`
	Formats   []string  `yaml:"formats"`
	PDF       PDFConfig `yaml:"pdf"`
}

// PDFConfig holds headless Chrome options for the PDF exporter
type PDFConfig struct {
	// ChromePath overrides browser discovery; CHROME_PATH is used when empty
	ChromePath      string        `yaml:"chrome_path"`
	Timeout         time.Duration `yaml:"timeout"`
	PrintBackground bool          `yaml:"print_background"`
	Landscape       bool          `yaml:"landscape"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8501,
			Debug:           false,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    90 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Page: PageConfig{
			Title:       DefaultPageTitle,
			Layout:      "wide",
			FrameHeight: DefaultFrameHeight,
			Scrolling:   true,
		},
		Report: ReportConfig{
			Language:     "en-IN",
			DefaultTab:   "personalization",
			CacheRenders: true,
		},
		Export: ExportConfig{
			OutputDir: "./exports",
			Formats:   []string{"html"},
			PDF: PDFConfig{
				Timeout:         60 * time.Second,
				PrintBackground: true,
			},
		},
		Logging: logger.Config{
			Level:      "info",
			Format:     "text",
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 5,
		},
		Telemetry: telemetry.Config{
			Enabled:     false,
			ServiceName: consts.ServiceName,
			OTLP: telemetry.OTLPConfig{
				Endpoint: "localhost:4317",
				Insecure: true,
			},
			Prometheus: telemetry.PrometheusConfig{
				Port: 9090,
				Path: "/metrics",
			},
		},
	}
}

// Load loads configuration from file with environment variable support.
// Values may reference ${VAR} or ${VAR:-default}; RS_* variables override
// selected fields after parsing.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ErrConfigNotFound(path, err)
	}

	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.ErrConfigParse(path, err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// Exists checks if the configuration file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Marshal encodes cfg as YAML with the standard header comment
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return append([]byte(configHeader), data...), nil
}

// Write writes cfg to path with the standard header comment
func Write(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// CreateDefault writes the default configuration to path
func CreateDefault(path string) error {
	return Write(path, Default())
}

const configHeader = `# RetailScope configuration
#
# Environment Variable Support:
#   - Use ${VAR_NAME} or ${VAR_NAME:-default} in values
#   - Or use RS_* environment variables to override:
#     RS_SERVER_HOST, RS_SERVER_PORT, RS_SERVER_DEBUG
#     RS_LOG_LEVEL, RS_LOG_FORMAT, RS_LOG_FILE
#     RS_CHROME_PATH, RS_EXPORT_DIR
#

`

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
// Bare $VAR_NAME is left alone.
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]

		// ${VAR_NAME:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]

		if value := os.Getenv(varName); value != "" {
			return value
		}
		if len(parts) > 1 {
			return parts[1]
		}
		return ""
	})
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RS_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("RS_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RS_SERVER_DEBUG"); v != "" {
		cfg.Server.Debug = parseBool(v)
	}

	if v := os.Getenv("RS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("RS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("RS_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}

	if v := os.Getenv("RS_CHROME_PATH"); v != "" {
		cfg.Export.PDF.ChromePath = v
	}
	if v := os.Getenv("RS_EXPORT_DIR"); v != "" {
		cfg.Export.OutputDir = v
	}

	if v := os.Getenv("RS_TELEMETRY_ENABLED"); v != "" {
		cfg.Telemetry.Enabled = parseBool(v)
	}
	if v := os.Getenv("RS_OTLP_ENDPOINT"); v != "" {
		cfg.Telemetry.OTLP.Enabled = true
		cfg.Telemetry.OTLP.Endpoint = v
	}
	if v := os.Getenv("RS_PROMETHEUS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Telemetry.Prometheus.Enabled = true
			cfg.Telemetry.Prometheus.Port = port
		}
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
