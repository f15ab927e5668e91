package check

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/retailscope/retailscope/consts"
)

// Report collects and displays check results
type Report struct {
	FileResults       []FileCheckResult
	ValidationResults []ValidationResult
}

// NewReport creates a new report
func NewReport() *Report {
	return &Report{
		FileResults:       make([]FileCheckResult, 0),
		ValidationResults: make([]ValidationResult, 0),
	}
}

// AddFileResult adds a file check result
func (r *Report) AddFileResult(result FileCheckResult) {
	r.FileResults = append(r.FileResults, result)
}

// AddValidationResult adds a validation result
func (r *Report) AddValidationResult(result ValidationResult) {
	r.ValidationResults = append(r.ValidationResults, result)
}

// ReportSummary holds the summary statistics
type ReportSummary struct {
	FilesExist       int
	FilesCreated     int
	FilesMissing     int
	ValidationsValid int
	ValidationErrors int
	Warnings         int
	HasErrors        bool
}

// Summary calculates the summary from all results
func (r *Report) Summary() ReportSummary {
	var s ReportSummary

	for _, result := range r.FileResults {
		switch {
		case result.Created:
			s.FilesCreated++
			s.FilesExist++
		case result.Exists:
			s.FilesExist++
		default:
			s.FilesMissing++
		}
		if result.Error != nil {
			s.HasErrors = true
		}
	}

	for _, result := range r.ValidationResults {
		if result.Valid {
			s.ValidationsValid++
		} else {
			s.ValidationErrors++
			s.HasErrors = true
		}
		s.Warnings += len(result.Warnings)
	}

	return s
}

// Print prints the separator and the final status line
func (r *Report) Print(w io.Writer) {
	separator := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	fmt.Fprintln(w, separator.Render(strings.Repeat("─", 50)))

	s := r.Summary()
	switch {
	case s.HasErrors:
		color.New(color.FgRed, color.Bold).Fprint(w, "✗ Check completed")
	case s.Warnings > 0 || s.FilesMissing > 0:
		color.New(color.FgYellow, color.Bold).Fprint(w, "⚠ Check completed")
	default:
		color.New(color.FgGreen, color.Bold).Fprint(w, "✓ Check completed")
	}

	var details []string
	if s.FilesCreated > 0 {
		details = append(details, fmt.Sprintf("%d file(s) created", s.FilesCreated))
	}
	if s.FilesMissing > 0 {
		details = append(details, fmt.Sprintf("%d file(s) missing", s.FilesMissing))
	}
	if s.ValidationErrors > 0 {
		details = append(details, fmt.Sprintf("%d validation error(s)", s.ValidationErrors))
	}
	if s.Warnings > 0 {
		details = append(details, fmt.Sprintf("%d warning(s)", s.Warnings))
	}

	if len(details) > 0 {
		fmt.Fprintf(w, " (%s)\n", strings.Join(details, ", "))
	} else {
		fmt.Fprintln(w, " - All checks passed")
	}
}

// PrintDetailedReport prints a boxed header, every result and the summary
func (r *Report) PrintDetailedReport(w io.Writer) {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 2).
		Width(50).
		Align(lipgloss.Center)
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14"))

	fmt.Fprintln(w, boxStyle.Render(titleStyle.Render(consts.ProjectName+" Environment Check Report")))
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("📁 File Check"))
	for _, result := range r.FileResults {
		switch {
		case result.Error != nil:
			color.New(color.FgRed).Fprintf(w, "  ✗ %s: %v\n", result.Path, result.Error)
		case result.Created:
			color.New(color.FgGreen).Fprintf(w, "  ✓ %s (created)\n", result.Path)
		case result.Exists:
			color.New(color.FgGreen).Fprintf(w, "  ✓ %s\n", result.Path)
		default:
			color.New(color.FgYellow).Fprintf(w, "  ⚠ %s does not exist\n", result.Path)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("📝 Validation"))
	for _, result := range r.ValidationResults {
		printValidationResult(w, result)
	}
	fmt.Fprintln(w)

	r.Print(w)
}
