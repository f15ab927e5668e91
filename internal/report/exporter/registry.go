package exporter

import (
	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/report"
)

// NewDefaultManager registers every built-in exporter against renderer
func NewDefaultManager(renderer *report.Renderer, cfg *config.Config) *ExportManager {
	m := NewExportManager()
	m.Register(ExportFormatHTML, NewHTMLExporter(renderer))
	m.Register(ExportFormatHost, NewHostExporter(renderer, cfg.Page))
	m.Register(ExportFormatJSON, NewJSONExporter())
	m.Register(ExportFormatPDF, NewPDFExporterWithOptions(renderer, PDFOptionsFromConfig(cfg.Export.PDF)))
	return m
}
