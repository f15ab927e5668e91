package host

import (
	"bytes"
	"fmt"

	"github.com/retailscope/retailscope/internal/config"
)

// Compose builds the report page the way the app script does: page config,
// then the title, then the document in a fixed-height frame.
func Compose(cfg config.PageConfig, lang string, doc []byte) (*Page, error) {
	layout, err := ParseLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}

	page := NewPage()
	if err := page.SetPageConfig(PageConfig{
		Layout:    layout,
		PageTitle: cfg.Title,
		Lang:      lang,
	}); err != nil {
		return nil, err
	}
	page.Title(cfg.Title)
	if err := page.HTML(doc, cfg.FrameHeight, cfg.Scrolling); err != nil {
		return nil, err
	}
	return page, nil
}

// RenderBytes composes the page and returns the rendered wrapper document
func RenderBytes(cfg config.PageConfig, lang string, doc []byte) ([]byte, error) {
	page, err := Compose(cfg, lang, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to compose host page: %w", err)
	}
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
