package config

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/retailscope/retailscope/pkg/errors"
)

// Page layouts accepted by the host wrapper
const (
	LayoutWide     = "wide"
	LayoutCentered = "centered"
)

// Tab keys double as element ids in the document
var tabKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}

// Validate checks the configuration and returns every problem found as a
// single ErrCodeConfigInvalid error.
func (c *Config) Validate() *errors.AppError {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server.port must be within 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		problems = append(problems, "server timeouts must not be negative")
	}

	if strings.TrimSpace(c.Page.Title) == "" {
		problems = append(problems, "page.title is required")
	}
	if c.Page.Layout != LayoutWide && c.Page.Layout != LayoutCentered {
		problems = append(problems, fmt.Sprintf("page.layout must be %q or %q, got %q", LayoutWide, LayoutCentered, c.Page.Layout))
	}
	if c.Page.FrameHeight <= 0 {
		problems = append(problems, fmt.Sprintf("page.frame_height must be positive, got %d", c.Page.FrameHeight))
	}

	if lang := c.Report.Language; lang != "" && lang != LanguageAuto {
		if _, err := language.Parse(strings.ReplaceAll(lang, "_", "-")); err != nil {
			problems = append(problems, fmt.Sprintf("report.language %q is not a BCP 47 tag", lang))
		}
	}
	// Membership in the report's tabs is checked against the report itself
	// by the startup check.
	if tab := c.Report.DefaultTab; tab != "" && !tabKeyPattern.MatchString(tab) {
		problems = append(problems, fmt.Sprintf("report.default_tab %q is not a valid tab key", tab))
	}

	if c.Export.PDF.Timeout < 0 {
		problems = append(problems, "export.pdf.timeout must not be negative")
	}
	for _, f := range c.Export.Formats {
		if strings.TrimSpace(f) == "" {
			problems = append(problems, "export.formats must not contain empty entries")
			break
		}
	}

	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		problems = append(problems, fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	if f := c.Logging.Format; f != "" && f != "text" && f != "json" {
		problems = append(problems, fmt.Sprintf("logging.format must be text or json, got %q", f))
	}

	if c.Telemetry.Enabled && c.Telemetry.Prometheus.Enabled && c.Telemetry.Prometheus.Port == c.Server.Port {
		problems = append(problems, "telemetry.prometheus.port must differ from server.port")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.ErrConfigInvalid(problems)
}
