package exporter

import (
	"context"

	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/widget"
)

// HTMLExporter exports the standalone report document
type HTMLExporter struct {
	renderer *report.Renderer
	state    widget.ViewState
}

// NewHTMLExporter creates an HTML exporter rendering the default view state
func NewHTMLExporter(renderer *report.Renderer) *HTMLExporter {
	return &HTMLExporter{
		renderer: renderer,
		state:    widget.DefaultViewState(""),
	}
}

// Export renders the self-contained document. Tailwind, Chart.js and the
// font are still loaded from their CDNs when the file is opened.
func (e *HTMLExporter) Export(ctx context.Context, rpt *model.Report) ([]byte, error) {
	return e.renderer.Render(ctx, rpt, e.state)
}

// Name returns the human-readable name of this exporter
func (e *HTMLExporter) Name() string {
	return "HTML"
}

// FileExtension returns the file extension for HTML files
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}
