package check

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportSummary(t *testing.T) {
	tests := []struct {
		name   string
		report *Report
		want   ReportSummary
	}{
		{
			name:   "empty",
			report: NewReport(),
		},
		{
			name: "existing and created",
			report: &Report{
				FileResults: []FileCheckResult{{Path: "a", Exists: true}, {Path: "b", Created: true}},
				ValidationResults: []ValidationResult{
					{Path: "a", Valid: true},
					{Path: "browser", Valid: true, Warnings: []string{"Chrome not found"}},
				},
			},
			want: ReportSummary{FilesExist: 2, FilesCreated: 1, ValidationsValid: 2, Warnings: 1},
		},
		{
			name: "missing and invalid",
			report: &Report{
				FileResults:       []FileCheckResult{{Path: "a"}},
				ValidationResults: []ValidationResult{{Path: "a", Error: errors.New("file does not exist")}},
			},
			want: ReportSummary{FilesMissing: 1, ValidationErrors: 1, HasErrors: true},
		},
		{
			name: "file error",
			report: &Report{
				FileResults: []FileCheckResult{{Path: "a", Error: errors.New("permission denied")}},
			},
			want: ReportSummary{FilesMissing: 1, HasErrors: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report.Summary())
		})
	}
}

func TestReportPrint(t *testing.T) {
	tests := []struct {
		name   string
		report *Report
		want   string
	}{
		{"all passed", &Report{FileResults: []FileCheckResult{{Exists: true}}}, "✓ Check completed - All checks passed"},
		{"warnings", &Report{ValidationResults: []ValidationResult{{Valid: true, Warnings: []string{"w"}}}}, "⚠ Check completed (1 warning(s))"},
		{"created", &Report{FileResults: []FileCheckResult{{Created: true}}}, "✓ Check completed (1 file(s) created)"},
		{"errors", &Report{ValidationResults: []ValidationResult{{Error: errors.New("bad")}}}, "✗ Check completed (1 validation error(s))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.report.Print(&buf)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestPrintDetailedReport(t *testing.T) {
	r := NewReport()
	r.AddFileResult(FileCheckResult{Path: "config/retailscope.yaml", Created: true})
	r.AddFileResult(FileCheckResult{Path: "other.yaml"})
	r.AddValidationResult(ValidationResult{Path: "config/retailscope.yaml", Valid: true})
	r.AddValidationResult(ValidationResult{Path: "headless browser", Valid: true, Warnings: []string{"Chrome not found"}})

	var buf bytes.Buffer
	r.PrintDetailedReport(&buf)
	out := buf.String()

	assert.Contains(t, out, "RetailScope Environment Check Report")
	assert.Contains(t, out, "✓ config/retailscope.yaml (created)")
	assert.Contains(t, out, "⚠ other.yaml does not exist")
	assert.Contains(t, out, "└─ Chrome not found")
	assert.Contains(t, out, "1 file(s) missing")
}
