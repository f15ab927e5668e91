package exporter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/retailscope/retailscope/internal/model"
)

// JSONExporter exports the content model
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export encodes the report as indented JSON
func (e *JSONExporter) Export(ctx context.Context, rpt *model.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(rpt, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// Name returns the human-readable name of this exporter
func (e *JSONExporter) Name() string {
	return "JSON"
}

// FileExtension returns the file extension for JSON files
func (e *JSONExporter) FileExtension() string {
	return ".json"
}
