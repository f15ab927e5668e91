// Package host provides the app-hosting wrapper page: a page configuration,
// a title element and an HTML embed frame rendered around the report document.
package host

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/retailscope/retailscope/internal/report/assets"
	"github.com/retailscope/retailscope/pkg/logger"
)

// Layout controls the width of the page's content column
type Layout string

const (
	// LayoutCentered keeps content in a fixed-width column
	LayoutCentered Layout = "centered"
	// LayoutWide lets content span the full viewport
	LayoutWide Layout = "wide"
)

// centeredMaxWidth is the content column width of the centered layout
const centeredMaxWidth = "46rem"

var (
	// ErrPageConfigOrder is returned when the page config is set twice or after an element
	ErrPageConfigOrder = errors.New("page config must be set once, before any element")
	// ErrInvalidHeight is returned for a non-positive embed height
	ErrInvalidHeight = errors.New("embed height must be positive")
	// ErrInvalidLayout is returned for a layout other than centered or wide
	ErrInvalidLayout = errors.New("unknown layout")
)

// ParseLayout converts a config value into a Layout. Empty means centered.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", LayoutCentered:
		return LayoutCentered, nil
	case LayoutWide:
		return LayoutWide, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLayout, s)
	}
}

// PageConfig is the page-level configuration
type PageConfig struct {
	Layout    Layout
	PageTitle string
	// Lang is the wrapper's html lang attribute; empty means "en"
	Lang string
}

// element is one block on the page: a title or an HTML embed
type element struct {
	IsTitle   bool
	Title     string
	Doc       string
	Height    int
	Scrolling string
}

// Page collects elements in call order and renders them as one document.
// It is safe for concurrent use.
type Page struct {
	mu         sync.Mutex
	cfg        PageConfig
	configured bool
	elements   []element
}

// NewPage creates an empty page with the centered layout
func NewPage() *Page {
	return &Page{cfg: PageConfig{Layout: LayoutCentered}}
}

// SetPageConfig applies cfg. It may be called at most once and only before
// any element has been added.
func (p *Page) SetPageConfig(cfg PageConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.configured || len(p.elements) > 0 {
		return ErrPageConfigOrder
	}
	if _, err := ParseLayout(string(cfg.Layout)); err != nil {
		return err
	}
	if cfg.Layout == "" {
		cfg.Layout = LayoutCentered
	}
	p.cfg = cfg
	p.configured = true
	return nil
}

// Title appends a page title element
func (p *Page) Title(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements = append(p.elements, element{IsTitle: true, Title: text})
}

// HTML appends an embed frame holding doc. The frame is height pixels tall
// and scrolls internally when scrolling is set.
func (p *Page) HTML(doc []byte, height int, scrolling bool) error {
	if height <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHeight, height)
	}

	mode := "no"
	if scrolling {
		mode = "yes"
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.elements = append(p.elements, element{
		Doc:       string(doc),
		Height:    height,
		Scrolling: mode,
	})
	return nil
}

// Config returns the effective page configuration
func (p *Page) Config() PageConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Len returns the number of elements added so far
func (p *Page) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.elements)
}

var hostTemplate = template.Must(template.New("host").Parse(assets.HostTemplate))

type pageData struct {
	Lang      string
	PageTitle string
	Layout    Layout
	MaxWidth  template.CSS
	Elements  []element
}

// Render writes the wrapper document to w. The embedded document is passed
// through the srcdoc attribute and is attribute-escaped, so the browser
// decodes it back to the original bytes.
func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	data := pageData{
		Lang:      p.cfg.Lang,
		PageTitle: p.cfg.PageTitle,
		Layout:    p.cfg.Layout,
		MaxWidth:  maxWidth(p.cfg.Layout),
		Elements:  append([]element(nil), p.elements...),
	}
	p.mu.Unlock()

	if data.Lang == "" {
		data.Lang = "en"
	}

	if err := hostTemplate.Execute(w, data); err != nil {
		logger.Error("Failed to render host page", zap.Error(err))
		return fmt.Errorf("failed to render host page: %w", err)
	}
	return nil
}

func maxWidth(l Layout) template.CSS {
	if l == LayoutWide {
		return "max-width: none;"
	}
	return template.CSS("max-width: " + centeredMaxWidth + ";")
}
