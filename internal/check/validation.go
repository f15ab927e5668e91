package check

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/report/exporter"
)

// Names of the validation targets that are not files
const (
	targetContent = "report content"
	targetBrowser = "headless browser"
)

// ValidationResult represents the result of a single validation
type ValidationResult struct {
	Path     string
	Valid    bool
	Error    error
	Warnings []string
}

// validateConfigs validates the configuration file, the report content and
// the browser used for PDF export
func (c *Checker) validateConfigs() error {
	cfgResult, cfg := c.validateConfigFile()
	c.report.AddValidationResult(cfgResult)
	printValidationResult(c.out, cfgResult)
	if !cfgResult.Valid {
		return fmt.Errorf("%s validation failed: %w", c.configPath, cfgResult.Error)
	}

	contentResult := validateReportContent(cfg)
	c.report.AddValidationResult(contentResult)
	printValidationResult(c.out, contentResult)
	if !contentResult.Valid {
		return contentResult.Error
	}

	browserResult := validateBrowser(cfg)
	c.report.AddValidationResult(browserResult)
	printValidationResult(c.out, browserResult)

	return nil
}

// validateConfigFile loads and validates the configuration file.
// The config is nil unless the result is valid.
func (c *Checker) validateConfigFile() (ValidationResult, *config.Config) {
	result := ValidationResult{Path: c.configPath}

	if !fileExists(c.configPath) {
		result.Error = fmt.Errorf("file does not exist")
		return result, nil
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		result.Error = fmt.Errorf("format error: %v", err)
		return result, nil
	}
	if appErr := cfg.Validate(); appErr != nil {
		if problems := appErr.Problems(); len(problems) > 0 {
			result.Error = fmt.Errorf("%s: %s", appErr.Message, strings.Join(problems, "; "))
		} else {
			result.Error = appErr
		}
		return result, nil
	}

	if cfg.Server.Debug {
		result.Warnings = append(result.Warnings, "server.debug is on: internal error messages are returned to clients")
	}
	result.Valid = true
	return result, cfg
}

// validateReportContent lints the bundled report and checks that the
// configured default tab exists in it
func validateReportContent(cfg *config.Config) ValidationResult {
	result := ValidationResult{Path: targetContent}
	rpt := report.IndianRetail()
	if err := report.Lint(rpt).Err(); err != nil {
		result.Error = err
		return result
	}
	if cfg != nil {
		if err := report.ValidateDefaultTab(rpt, cfg.Report.DefaultTab); err != nil {
			result.Error = fmt.Errorf("report.default_tab: %w", err)
			return result
		}
	}
	result.Valid = true
	return result
}

// validateBrowser looks for Chrome. Its absence is a warning.
func validateBrowser(cfg *config.Config) ValidationResult {
	result := ValidationResult{Path: targetBrowser, Valid: true}

	configured := ""
	if cfg != nil {
		configured = cfg.Export.PDF.ChromePath
	}
	if !exporter.ChromeAvailable(configured) {
		result.Warnings = append(result.Warnings,
			"Chrome not found: PDF export and live verification are unavailable")
	}
	return result
}

// printValidationResult prints one validation line and its warnings
func printValidationResult(w io.Writer, result ValidationResult) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	if result.Valid {
		green.Fprintf(w, "  ✓ %s\n", result.Path)
	} else {
		red.Fprintf(w, "  ✗ %s: %v\n", result.Path, result.Error)
	}
	for _, warning := range result.Warnings {
		yellow.Fprintf(w, "    └─ %s\n", warning)
	}
}
