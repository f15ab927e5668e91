// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/host"
	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/report/exporter"
	"github.com/retailscope/retailscope/pkg/errors"
	"github.com/retailscope/retailscope/pkg/logger"
)

const contentTypeHTML = "text/html; charset=utf-8"

// ReportHandler serves the report page, the raw document and its exports
type ReportHandler struct {
	renderer *report.Renderer
	exports  *exporter.ExportManager
	report   *model.Report
	page     config.PageConfig
}

// NewReportHandler creates a new report handler
func NewReportHandler(renderer *report.Renderer, exports *exporter.ExportManager, rpt *model.Report, page config.PageConfig) *ReportHandler {
	return &ReportHandler{
		renderer: renderer,
		exports:  exports,
		report:   rpt,
		page:     page,
	}
}

// render returns the document with the initial state read from the query string
func (h *ReportHandler) render(c *gin.Context) ([]byte, bool) {
	state := h.renderer.ViewState(h.report, c.Request.URL.Query())
	doc, err := h.renderer.Render(c.Request.Context(), h.report, state)
	if err != nil {
		logger.Error("Failed to render report",
			zap.String("slug", h.report.Slug),
			zap.String("tab", state.Tab),
			zap.Error(err),
		)
		_ = c.Error(err)
		return nil, false
	}
	return doc, true
}

// GetPage handles GET /
// The document is embedded in the wrapper page's frame.
func (h *ReportHandler) GetPage(c *gin.Context) {
	doc, ok := h.render(c)
	if !ok {
		return
	}

	page, err := host.RenderBytes(h.page, h.renderer.Language().String(), doc)
	if err != nil {
		logger.Error("Failed to compose host page", zap.Error(err))
		_ = c.Error(errors.ErrRender("failed to compose host page", err))
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, page)
}

// GetDocument handles GET /report
func (h *ReportHandler) GetDocument(c *gin.Context) {
	doc, ok := h.render(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, doc)
}

// GetReport handles GET /api/v1/report
func (h *ReportHandler) GetReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.report)
}

// GetCharts handles GET /api/v1/report/charts
func (h *ReportHandler) GetCharts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"charts": h.report.Charts(),
	})
}

// ExportReport handles GET /api/v1/report/export?format=html|host|json|pdf
func (h *ReportHandler) ExportReport(c *gin.Context) {
	format := exporter.ExportFormat(strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", string(exporter.ExportFormatHTML)))))

	start := time.Now()
	logger.Info("[API] Export requested",
		zap.String("slug", h.report.Slug),
		zap.String("format", string(format)),
	)

	content, err := h.exports.Export(c.Request.Context(), h.report, format)
	if err != nil {
		logger.Error("[API] Export failed",
			zap.String("format", string(format)),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		_ = c.Error(err)
		return
	}

	filename := h.exports.GenerateFilename(h.report, format)
	logger.Info("[API] Export completed",
		zap.String("format", string(format)),
		zap.String("filename", filename),
		zap.Int("bytes", len(content)),
		zap.Duration("duration", time.Since(start)),
	)

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, exporter.ContentType(format), content)
}

// ListFormats handles GET /api/v1/report/formats
func (h *ReportHandler) ListFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"formats": h.exports.SupportedFormats(),
	})
}
