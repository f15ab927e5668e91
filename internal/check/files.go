package check

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/retailscope/retailscope/internal/configfiles"
)

// FileCheckResult represents the result of a file check
type FileCheckResult struct {
	Path        string
	Exists      bool
	Created     bool
	Description string
	Error       error
}

// checkFiles checks the configuration file and offers to create it
func (c *Checker) checkFiles() error {
	result := c.checkConfigFile()
	c.report.AddFileResult(result)
	return result.Error
}

// checkConfigFile prompts for creation from the embedded example when the
// configuration file is missing
func (c *Checker) checkConfigFile() FileCheckResult {
	result := FileCheckResult{
		Path:        c.configPath,
		Description: "Server, page, export and logging configuration",
	}

	if fileExists(c.configPath) {
		result.Exists = true
		c.printFileStatus(c.configPath, true)
		return result
	}

	c.printFileStatus(c.configPath, false)

	confirm, err := c.confirm(c.configPath)
	if err != nil {
		result.Error = fmt.Errorf("failed to get user confirmation: %w", err)
		return result
	}
	if !confirm {
		return result
	}

	if err := ensureDir(c.configPath); err != nil {
		result.Error = err
		return result
	}
	if err := os.WriteFile(c.configPath, configfiles.GetConfigExample(), 0644); err != nil {
		result.Error = fmt.Errorf("failed to create file %s: %w", c.configPath, err)
		return result
	}

	result.Created = true
	color.New(color.FgGreen).Fprintf(c.out, "  ✓ Created %s\n", c.configPath)
	return result
}

// printFileStatus prints the status of a file check
func (c *Checker) printFileStatus(path string, exists bool) {
	if exists {
		color.New(color.FgGreen).Fprintf(c.out, "  ✓ %s\n", path)
		return
	}
	color.New(color.FgYellow).Fprintf(c.out, "  ⚠ %s does not exist\n", path)
}
