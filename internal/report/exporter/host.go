package exporter

import (
	"context"

	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/host"
	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/widget"
)

// HostExporter exports the wrapper page with the document embedded in its frame
type HostExporter struct {
	renderer *report.Renderer
	page     config.PageConfig
}

// NewHostExporter creates a wrapper page exporter
func NewHostExporter(renderer *report.Renderer, page config.PageConfig) *HostExporter {
	return &HostExporter{renderer: renderer, page: page}
}

// Export renders the document and composes the wrapper around it
func (e *HostExporter) Export(ctx context.Context, rpt *model.Report) ([]byte, error) {
	doc, err := e.renderer.Render(ctx, rpt, widget.DefaultViewState(""))
	if err != nil {
		return nil, err
	}
	return host.RenderBytes(e.page, e.renderer.Language().String(), doc)
}

// Name returns the human-readable name of this exporter
func (e *HostExporter) Name() string {
	return "Host page"
}

// FileExtension returns the file extension for the wrapper page
func (e *HostExporter) FileExtension() string {
	return ".html"
}
