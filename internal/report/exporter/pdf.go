package exporter

import (
	"context"
	stderrors "errors"
	"fmt"
	"html"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/widget"
	"github.com/retailscope/retailscope/pkg/errors"
	"github.com/retailscope/retailscope/pkg/logger"
)

// chartsReady matches once the document script has drawn its charts
const chartsReady = "body[data-chart-generation]"

// PDFOptions contains configuration for PDF generation
type PDFOptions struct {
	// Paper dimensions in inches (A4: 8.27 x 11.69)
	PaperWidth  float64
	PaperHeight float64

	// Margins in inches
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	// Print background colors and images
	PrintBackground bool
	Landscape       bool

	// Scale of the webpage rendering (1.0 = 100%)
	Scale float64

	// ChromePath overrides CHROME_PATH and browser discovery
	ChromePath string

	// Settle is how long to wait after charts are drawn for their animation
	Settle time.Duration

	// Timeout for PDF generation
	Timeout time.Duration
}

// DefaultPDFOptions returns default PDF options for A4 paper
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		PaperWidth:      8.27,
		PaperHeight:     11.69,
		MarginTop:       0.59, // ~15mm
		MarginBottom:    0.59,
		MarginLeft:      0.59,
		MarginRight:     0.59,
		PrintBackground: true,
		Scale:           1.0,
		Settle:          1500 * time.Millisecond,
		Timeout:         60 * time.Second,
	}
}

// PDFOptionsFromConfig applies the export config on top of the defaults
func PDFOptionsFromConfig(cfg config.PDFConfig) PDFOptions {
	opts := DefaultPDFOptions()
	opts.ChromePath = cfg.ChromePath
	opts.PrintBackground = cfg.PrintBackground
	opts.Landscape = cfg.Landscape
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	return opts
}

// PDFExporter prints the report document with headless Chrome
type PDFExporter struct {
	renderer *report.Renderer
	options  PDFOptions
}

// NewPDFExporter creates a new PDF exporter with default options
func NewPDFExporter(renderer *report.Renderer) *PDFExporter {
	return NewPDFExporterWithOptions(renderer, DefaultPDFOptions())
}

// NewPDFExporterWithOptions creates a new PDF exporter with custom options
func NewPDFExporterWithOptions(renderer *report.Renderer, opts PDFOptions) *PDFExporter {
	return &PDFExporter{
		renderer: renderer,
		options:  opts,
	}
}

// Options returns the exporter's options
func (e *PDFExporter) Options() PDFOptions {
	return e.options
}

// Export renders the document, loads it in headless Chrome and prints it
func (e *PDFExporter) Export(ctx context.Context, rpt *model.Report) ([]byte, error) {
	startTime := time.Now()

	doc, err := e.renderer.Render(ctx, rpt, widget.DefaultViewState(""))
	if err != nil {
		return nil, err
	}

	// Write HTML to temporary file (avoids data URL size limits)
	tmpFile, err := os.CreateTemp("", consts.ServiceName+"-pdf-*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(doc); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	tmpFile.Close()

	logger.Debug("[PDF Export] Temporary HTML file created",
		zap.String("slug", rpt.Slug),
		zap.String("temp_path", tmpPath),
		zap.Int("file_size", len(doc)),
	)

	ctx, cancel := context.WithTimeout(ctx, e.options.Timeout)
	defer cancel()

	browserCtx, browserCancel := NewBrowserContext(ctx, e.options.ChromePath, "[PDF Export]")
	defer browserCancel()

	var pdfData []byte
	chromeStartTime := time.Now()
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+tmpPath),
		chromedp.WaitReady("body"),
		chromedp.WaitReady(chartsReady, chromedp.ByQuery),
		chromedp.Sleep(e.options.Settle),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPaperWidth(e.options.PaperWidth).
				WithPaperHeight(e.options.PaperHeight).
				WithMarginTop(e.options.MarginTop).
				WithMarginBottom(e.options.MarginBottom).
				WithMarginLeft(e.options.MarginLeft).
				WithMarginRight(e.options.MarginRight).
				WithLandscape(e.options.Landscape).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate("<span></span>").
				WithFooterTemplate(footerTemplate(rpt)).
				WithPrintBackground(e.options.PrintBackground).
				WithScale(e.options.Scale).
				WithPreferCSSPageSize(false).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		logger.Error("[PDF Export] Failed to generate PDF",
			zap.String("slug", rpt.Slug),
			zap.Error(err),
			zap.Duration("chrome_duration", time.Since(chromeStartTime)),
		)
		return nil, classifyChromeError(ctx, err)
	}

	logger.Info("[PDF Export] PDF export completed successfully",
		zap.String("slug", rpt.Slug),
		zap.Int("pdf_size_bytes", len(pdfData)),
		zap.String("pdf_size_human", formatBytes(len(pdfData))),
		zap.Duration("chrome_duration", time.Since(chromeStartTime)),
		zap.Duration("total_duration", time.Since(startTime)),
	)

	return pdfData, nil
}

// Name returns the human-readable name of this exporter
func (e *PDFExporter) Name() string {
	return "PDF"
}

// FileExtension returns the file extension for PDF files
func (e *PDFExporter) FileExtension() string {
	return ".pdf"
}

// footerTemplate shows the brand on the left and page numbers on the right.
// Chrome fills the pageNumber and totalPages classes.
func footerTemplate(rpt *model.Report) string {
	return fmt.Sprintf(`<div style="width:100%%; padding:0 20px; font-size:9px; font-family:Inter,system-ui,sans-serif; color:#6b7280; display:flex; justify-content:space-between;">`+
		`<span>%s</span>`+
		`<span>Page <span class="pageNumber"></span> of <span class="totalPages"></span></span>`+
		`</div>`, html.EscapeString(rpt.Brand))
}

// NewBrowserContext starts a headless Chrome allocator and browser context.
// chromePath falls back to CHROME_PATH, then to chromedp's discovery.
func NewBrowserContext(ctx context.Context, chromePath, logPrefix string) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
		// Increase WebSocket URL timeout (default is 20s which may not be enough for slow systems)
		chromedp.WSURLReadTimeout(60*time.Second),
	)

	if path := ResolveChromePath(chromePath); path != "" {
		opts = append(opts, chromedp.ExecPath(path))
		logger.Debug(logPrefix+" Using custom Chrome path", zap.String("chrome_path", path))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(logPrefix+" chromedp: "+format, args...))
		}),
	)

	return browserCtx, func() {
		browserCancel()
		allocCancel()
	}
}

// ResolveChromePath returns the configured browser path, or CHROME_PATH
func ResolveChromePath(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv("CHROME_PATH")
}

// ChromeAvailable reports whether a browser binary can be found
func ChromeAvailable(configured string) bool {
	if path := ResolveChromePath(configured); path != "" {
		_, err := os.Stat(path)
		return err == nil
	}
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func classifyChromeError(ctx context.Context, err error) error {
	switch {
	case stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.ErrExportTimeout("PDF", err)
	case stderrors.Is(err, exec.ErrNotFound):
		return errors.ErrBrowserUnavailable(err)
	default:
		return errors.ErrExportFailed("PDF", err)
	}
}
