// Package check provides interactive environment checking and initialization.
// It helps users set up their local RetailScope configuration properly.
package check

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/internal/config"
)

// CheckResult represents the result of a non-interactive environment check
type CheckResult struct {
	// Success indicates whether all required checks passed
	Success bool
	// Errors contains critical errors that prevent server startup
	Errors []string
	// Warnings contains non-critical issues that don't block startup
	Warnings []string
	// Suggestions contains helpful tips for fixing issues
	Suggestions []string
}

// ConfirmFunc asks the user a yes/no question about creating path
type ConfirmFunc func(path string) (bool, error)

// Checker handles environment checking and initialization
type Checker struct {
	// configPath is the configuration file to check
	configPath string
	// report collects check results for final output
	report *Report
	// out receives all progress output
	out io.Writer
	// confirm prompts before files are created
	confirm ConfirmFunc
}

// NewChecker creates a new environment checker for configPath
func NewChecker(configPath string) *Checker {
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	return &Checker{
		configPath: configPath,
		report:     NewReport(),
		out:        os.Stdout,
		confirm:    confirmCreate,
	}
}

// WithOutput redirects progress output
func (c *Checker) WithOutput(w io.Writer) *Checker {
	c.out = w
	return c
}

// WithConfirm replaces the interactive prompt
func (c *Checker) WithConfirm(fn ConfirmFunc) *Checker {
	c.confirm = fn
	return c
}

// ConfigPath returns the path of the checked configuration file
func (c *Checker) ConfigPath() string {
	return c.configPath
}

// Report returns the collected results
func (c *Checker) Report() *Report {
	return c.report
}

// Run executes the full environment check
func (c *Checker) Run() error {
	c.printHeader()

	// Step 1: Check and create the configuration file
	fmt.Fprintln(c.out)
	c.printSection("Checking configuration files")
	if err := c.checkFiles(); err != nil {
		return fmt.Errorf("file check failed: %w", err)
	}

	// Step 2: Validate configuration, report content and browser
	fmt.Fprintln(c.out)
	c.printSection("Validating configuration")
	if err := c.validateConfigs(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	fmt.Fprintln(c.out)
	c.report.Print(c.out)

	return nil
}

// printHeader prints the welcome header
func (c *Checker) printHeader() {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	fmt.Fprintln(c.out, titleStyle.Render("🔍 "+consts.ProjectName+" Environment Check"))
}

// printSection prints a section header
func (c *Checker) printSection(title string) {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))
	fmt.Fprintln(c.out, style.Render(title+"..."))
}

// confirmCreate asks user to confirm file creation
func confirmCreate(path string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Create %s with default settings?", path)).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()
	if err != nil {
		return false, err
	}
	return confirm, nil
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ensureDir creates the parent directory of path if it doesn't exist
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// RunNonInteractive performs a non-interactive environment check.
// Unlike Run(), this method does not prompt for user input and does not create files.
func (c *Checker) RunNonInteractive() *CheckResult {
	result := &CheckResult{
		Success:     true,
		Errors:      make([]string, 0),
		Warnings:    make([]string, 0),
		Suggestions: make([]string, 0),
	}

	if !fileExists(c.configPath) {
		result.Success = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Configuration not found: %s", c.configPath))
		result.Suggestions = append(result.Suggestions,
			fmt.Sprintf("Run '%s serve --check' to interactively create the configuration file", consts.ServiceName),
		)
		return result
	}

	cfgResult, cfg := c.validateConfigFile()
	if !cfgResult.Valid {
		result.Success = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Invalid %s: %v", c.configPath, cfgResult.Error))
		return result
	}

	if contentResult := validateReportContent(cfg); !contentResult.Valid {
		result.Success = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Report content: %v", contentResult.Error))
	}

	// A missing browser only disables PDF export and live verification
	browserResult := validateBrowser(cfg)
	result.Warnings = append(result.Warnings, browserResult.Warnings...)
	if len(browserResult.Warnings) > 0 {
		result.Suggestions = append(result.Suggestions,
			"Install Chrome or Chromium, or set export.pdf.chrome_path / RS_CHROME_PATH")
	}

	return result
}

// PrintCheckResult prints the check result in a formatted way
func PrintCheckResult(w io.Writer, result *CheckResult) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	if len(result.Errors) > 0 {
		fmt.Fprintln(w)
		red.Fprintln(w, "[ERROR] Environment check failed")
		fmt.Fprintln(w)
		for _, err := range result.Errors {
			red.Fprintf(w, "  ✗ %s\n", err)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
		yellow.Fprintln(w, "[WARNING] Configuration warnings:")
		fmt.Fprintln(w)
		for _, warn := range result.Warnings {
			yellow.Fprintf(w, "  ⚠ %s\n", warn)
		}
	}

	if len(result.Suggestions) > 0 {
		cyan.Fprintln(w, "\nTo fix these issues:")
		for _, suggestion := range result.Suggestions {
			fmt.Fprintf(w, "  → %s\n", suggestion)
		}
	}

	fmt.Fprintln(w)
}
