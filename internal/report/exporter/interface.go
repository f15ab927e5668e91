// Package exporter provides report export functionality with pluggable exporters.
package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/pkg/errors"
	"github.com/retailscope/retailscope/pkg/idgen"
	"github.com/retailscope/retailscope/pkg/logger"
	"github.com/retailscope/retailscope/pkg/telemetry"
)

// ExportFormat represents the export format type
type ExportFormat string

const (
	// ExportFormatHTML is the standalone report document
	ExportFormatHTML ExportFormat = "html"
	// ExportFormatHost is the wrapper page with the document embedded in a frame
	ExportFormatHost ExportFormat = "host"
	// ExportFormatJSON is the content model
	ExportFormatJSON ExportFormat = "json"
	// ExportFormatPDF is a headless Chrome print of the document
	ExportFormatPDF ExportFormat = "pdf"
)

// ParseFormats splits a comma separated format list, dropping blanks and duplicates
func ParseFormats(list string) []ExportFormat {
	var formats []ExportFormat
	for _, f := range strings.Split(list, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(formats, ExportFormat(f)) {
			continue
		}
		formats = append(formats, ExportFormat(f))
	}
	return formats
}

// ReportExporter defines the interface for report exporters
type ReportExporter interface {
	// Export renders the report into the exporter's format
	Export(ctx context.Context, rpt *model.Report) ([]byte, error)
	// Name returns the human-readable name of the exporter (e.g., "HTML", "PDF")
	Name() string
	// FileExtension returns the file extension for this format (e.g., ".html", ".pdf")
	FileExtension() string
}

// ExportManager manages all registered exporters
type ExportManager struct {
	exporters map[ExportFormat]ReportExporter
	mu        sync.RWMutex
}

// NewExportManager creates a new export manager
func NewExportManager() *ExportManager {
	return &ExportManager{
		exporters: make(map[ExportFormat]ReportExporter),
	}
}

// Register registers an exporter for a specific format
func (m *ExportManager) Register(format ExportFormat, exporter ReportExporter) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exporters[format] = exporter
	logger.Debug("Registered report exporter",
		zap.String("format", string(format)),
		zap.String("name", exporter.Name()),
	)
}

// Export exports a report using the specified format
func (m *ExportManager) Export(ctx context.Context, rpt *model.Report, format ExportFormat) ([]byte, error) {
	m.mu.RLock()
	exporter, ok := m.exporters[format]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.ErrUnsupportedFormat(string(format))
	}

	exportID := idgen.NewExportID()
	ctx, span := telemetry.StartExportSpan(ctx, exportID, string(format))
	defer span.End()

	metrics := telemetry.GetMetrics()
	metrics.RecordExportStarted(ctx, string(format))

	logger.Debug("Exporting report",
		zap.String("export_id", exportID),
		zap.String("slug", rpt.Slug),
		zap.String("format", string(format)),
		zap.String("exporter", exporter.Name()),
	)

	start := time.Now()
	content, err := exporter.Export(ctx, rpt)
	metrics.RecordExportCompleted(ctx, string(format), err == nil, int64(len(content)), time.Since(start).Seconds())
	telemetry.EndExport(span, len(content), err)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.ErrExportFailed(exporter.Name(), err)
	}

	return content, nil
}

// ExportToFile exports a report into dir and returns the written path
func (m *ExportManager) ExportToFile(ctx context.Context, rpt *model.Report, dir string, format ExportFormat) (string, error) {
	content, err := m.Export(ctx, rpt, format)
	if err != nil {
		return "", err
	}

	// Ensure directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(dir, m.GenerateFilename(rpt, format))
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Info("Report exported to file",
		zap.String("slug", rpt.Slug),
		zap.String("format", string(format)),
		zap.String("path", outputPath),
		zap.String("size", formatBytes(len(content))),
	)

	return outputPath, nil
}

// GenerateFilename generates a filename for the exported report
func (m *ExportManager) GenerateFilename(rpt *model.Report, format ExportFormat) string {
	m.mu.RLock()
	exporter, ok := m.exporters[format]
	m.mu.RUnlock()

	// Base name from slug or document title
	baseName := rpt.Slug
	if baseName == "" {
		baseName = rpt.DocumentTitle
	}
	baseName = sanitizeFilename(baseName)
	if baseName == "" {
		baseName = "report"
	}
	if format == ExportFormatHost {
		baseName += "-page"
	}

	// Get extension from exporter if available
	if ok {
		return baseName + exporter.FileExtension()
	}

	// Fallback to format-based extension
	switch format {
	case ExportFormatJSON:
		return baseName + ".json"
	case ExportFormatHTML, ExportFormatHost:
		return baseName + ".html"
	case ExportFormatPDF:
		return baseName + ".pdf"
	default:
		return baseName + ".txt"
	}
}

// SupportedFormats returns all registered export formats, sorted
func (m *ExportManager) SupportedFormats() []ExportFormat {
	m.mu.RLock()
	defer m.mu.RUnlock()

	formats := make([]ExportFormat, 0, len(m.exporters))
	for format := range m.exporters {
		formats = append(formats, format)
	}
	slices.Sort(formats)
	return formats
}

// GetExporter returns the exporter for a specific format
func (m *ExportManager) GetExporter(format ExportFormat) (ReportExporter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exporter, ok := m.exporters[format]
	if !ok {
		return nil, errors.ErrUnsupportedFormat(string(format))
	}
	return exporter, nil
}

// ContentType returns the HTTP media type of a format
func ContentType(format ExportFormat) string {
	switch format {
	case ExportFormatHTML, ExportFormatHost:
		return "text/html; charset=utf-8"
	case ExportFormatJSON:
		return "application/json; charset=utf-8"
	case ExportFormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// sanitizeFilename removes unsafe characters from filename
func sanitizeFilename(name string) string {
	// Replace unsafe characters
	unsafe := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " "}
	result := name
	for _, char := range unsafe {
		result = strings.ReplaceAll(result, char, "_")
	}

	// Remove consecutive underscores
	for strings.Contains(result, "__") {
		result = strings.ReplaceAll(result, "__", "_")
	}

	// Trim underscores
	result = strings.Trim(result, "_")

	// Limit length
	if len(result) > 100 {
		result = result[:100]
	}

	return result
}

// formatBytes converts bytes to human-readable format
func formatBytes(bytes int) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := int64(bytes) / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
