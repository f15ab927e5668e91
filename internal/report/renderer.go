// Package report renders the report document from its content literal.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/internal/config"
	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/internal/report/assets"
	"github.com/retailscope/retailscope/internal/widget"
	"github.com/retailscope/retailscope/pkg/errors"
	"github.com/retailscope/retailscope/pkg/logger"
	"github.com/retailscope/retailscope/pkg/telemetry"
)

// Options configures a Renderer
type Options struct {
	// Language is a BCP 47 tag or "auto"
	Language string
	// DefaultTab is shown when the view state names no tab
	DefaultTab string
	// Cache keeps rendered bytes per report and view state
	Cache bool
}

// OptionsFromConfig builds renderer options from the report config
func OptionsFromConfig(cfg config.ReportConfig) Options {
	return Options{
		Language:   cfg.Language,
		DefaultTab: cfg.DefaultTab,
		Cache:      cfg.CacheRenders,
	}
}

// Renderer executes the document template
type Renderer struct {
	tmpl       *template.Template
	lang       *config.LanguageConfig
	defaultTab string
	cache      bool

	mu     sync.Mutex
	cached map[string][]byte
}

// statCard feeds the "stat" sub-template
type statCard struct {
	Card model.StatCard
	Size string
	Gap  string
}

type documentData struct {
	Report      *model.Report
	Lang        string
	Dir         string
	State       widget.ViewState
	Generator   string
	TailwindCDN string
	ChartJSCDN  string
	FontCSS     string
	CSS         template.CSS
	JS          template.JS
	ChartSpecs  template.JS
}

// NewRenderer parses the embedded document template
func NewRenderer(opts Options) (*Renderer, error) {
	tmpl, err := template.New("document").Funcs(template.FuncMap{
		"stat": func(c model.StatCard, size, gap string) statCard {
			return statCard{Card: c, Size: size, Gap: gap}
		},
	}).Parse(assets.DocumentTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document template: %w", err)
	}

	return &Renderer{
		tmpl:       tmpl,
		lang:       config.ParseLanguage(opts.Language),
		defaultTab: opts.DefaultTab,
		cache:      opts.Cache,
		cached:     make(map[string][]byte),
	}, nil
}

// ViewState reads the initial widget state for rpt from query values
func (r *Renderer) ViewState(rpt *model.Report, q url.Values) widget.ViewState {
	keys := rpt.TabKeys()
	vs := widget.ParseViewState(q, keys, len(rpt.Leaders.Entries))
	if !slices.Contains(keys, q.Get(widget.QueryTab)) {
		vs.Tab = r.defaultTab
	}
	return r.normalize(rpt, vs)
}

func (r *Renderer) normalize(rpt *model.Report, vs widget.ViewState) widget.ViewState {
	if vs.Tab == "" {
		vs.Tab = r.defaultTab
	}
	return vs.Normalize(rpt.TabKeys(), len(rpt.Leaders.Entries))
}

// Render returns the complete document for rpt with the given initial state.
// Unknown tabs or entries in state fall back to the defaults. The returned
// slice belongs to the caller, even when served from the cache.
func (r *Renderer) Render(ctx context.Context, rpt *model.Report, state widget.ViewState) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	state = r.normalize(rpt, state)
	key := rpt.Slug + "|" + state.Key()

	ctx, span := telemetry.StartRenderSpan(ctx, rpt.Slug, state.Tab, state.Open)
	defer span.End()

	metrics := telemetry.GetMetrics()

	if r.cache {
		r.mu.Lock()
		doc, ok := r.cached[key]
		r.mu.Unlock()
		telemetry.MarkCacheHit(span, ok)
		if ok {
			metrics.RecordRender(ctx, true, 0)
			return bytes.Clone(doc), nil
		}
	}

	start := time.Now()
	doc, err := r.execute(rpt, state)
	if err != nil {
		telemetry.SetSpanError(span, err)
		return nil, errors.ErrRender("failed to render report document", err)
	}
	metrics.RecordRender(ctx, false, time.Since(start).Seconds())

	logger.Debug("Rendered report document",
		zap.String("slug", rpt.Slug),
		zap.String("tab", state.Tab),
		zap.Int("open", state.Open),
		zap.Int("bytes", len(doc)),
	)

	if r.cache {
		r.mu.Lock()
		r.cached[key] = bytes.Clone(doc)
		r.mu.Unlock()
	}
	telemetry.SetSpanOK(span)
	return doc, nil
}

func (r *Renderer) execute(rpt *model.Report, state widget.ViewState) ([]byte, error) {
	specs, err := ChartSpecsJSON(rpt)
	if err != nil {
		return nil, err
	}

	data := documentData{
		Report:      rpt,
		Lang:        r.lang.String(),
		Dir:         r.lang.Dir(),
		State:       state,
		Generator:   consts.ProjectName + " " + consts.Version,
		TailwindCDN: assets.TailwindCDN,
		ChartJSCDN:  assets.ChartJSCDN,
		FontCSS:     assets.InterFontCSS,
		CSS:         template.CSS(assets.StyleCSS),
		JS:          template.JS(assets.ReportJS),
		ChartSpecs:  template.JS(specs),
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Language returns the document language
func (r *Renderer) Language() *config.LanguageConfig {
	return r.lang
}

// ChartSpecsJSON encodes the report's charts as embedded in the document.
// json.Marshal escapes '<' and '>' so the payload cannot close its script tag.
func ChartSpecsJSON(rpt *model.Report) ([]byte, error) {
	data, err := json.Marshal(rpt.Charts())
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart specs: %w", err)
	}
	return data, nil
}
