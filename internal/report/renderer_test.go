package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/internal/widget"
)

func newTestRenderer(t *testing.T, cache bool) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{Language: "en-IN", DefaultTab: "personalization", Cache: cache})
	require.NoError(t, err)
	return r
}

func renderDoc(t *testing.T, r *Renderer, state widget.ViewState) *goquery.Document {
	t.Helper()
	out, err := r.Render(context.Background(), IndianRetail(), state)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	return doc
}

func visiblePanes(doc *goquery.Document) []string {
	var ids []string
	doc.Find(".tab-pane").Each(func(_ int, s *goquery.Selection) {
		if !s.HasClass("hidden") {
			ids = append(ids, s.AttrOr("id", ""))
		}
	})
	return ids
}

func TestRenderDefaultState(t *testing.T) {
	r := newTestRenderer(t, false)
	doc := renderDoc(t, r, widget.DefaultViewState(""))

	assert.Equal(t, "en-IN", doc.Find("html").AttrOr("lang", ""))
	assert.Equal(t, "ltr", doc.Find("html").AttrOr("dir", ""))
	assert.Equal(t, "The Rise of AI in Indian Retail: An Interactive Report", doc.Find("title").Text())
	assert.Equal(t, "AI in Indian Retail", doc.Find("#header h1").Text())

	assert.Equal(t, []string{"personalization-content"}, visiblePanes(doc))
	assert.Equal(t, 1, doc.Find(".tab-btn.active").Length())
	assert.Equal(t, "personalization", doc.Find(".tab-btn.active").AttrOr("data-tab", ""))

	assert.Equal(t, 4, doc.Find(".accordion-item").Length())
	assert.Equal(t, 0, doc.Find(".accordion-item.open").Length())
	assert.True(t, doc.Find("#mobile-menu").HasClass("hidden"))
}

func TestRenderSelectedState(t *testing.T) {
	r := newTestRenderer(t, false)
	doc := renderDoc(t, r, widget.ViewState{Tab: "service", Open: 2})

	assert.Equal(t, []string{"service-content"}, visiblePanes(doc))
	assert.Equal(t, "service", doc.Find(".tab-btn.active").AttrOr("data-tab", ""))

	open := doc.Find(".accordion-item.open")
	require.Equal(t, 1, open.Length())
	assert.Contains(t, open.Find(".accordion-header").Text(), "Panasonic (Consumer Durables)")
	assert.Equal(t, "true", open.AttrOr("data-open", ""))
	assert.Equal(t, "×", strings.TrimSpace(open.Find(".accordion-icon").Text()))
}

func TestRenderUnknownStateFallsBack(t *testing.T) {
	r := newTestRenderer(t, false)
	doc := renderDoc(t, r, widget.ViewState{Tab: "pricing", Open: 17})

	assert.Equal(t, []string{"personalization-content"}, visiblePanes(doc))
	assert.Equal(t, 0, doc.Find(".accordion-item.open").Length())
}

func TestRenderStructure(t *testing.T) {
	r := newTestRenderer(t, false)
	doc := renderDoc(t, r, widget.DefaultViewState(""))
	rpt := IndianRetail()

	// header links and mobile links point at the same sections
	var header, mobile []string
	doc.Find("#header .nav-link").Each(func(_ int, s *goquery.Selection) { header = append(header, s.AttrOr("href", "")) })
	doc.Find("#mobile-menu a").Each(func(_ int, s *goquery.Selection) { mobile = append(mobile, s.AttrOr("href", "")) })
	assert.Equal(t, []string{"#market", "#consumer", "#applications", "#leaders", "#references"}, header)
	assert.Equal(t, header, mobile)

	for _, s := range rpt.Sections() {
		assert.Equal(t, 1, doc.Find("section#"+s.ID).Length(), "section %s", s.ID)
	}

	for _, c := range rpt.Charts() {
		canvas := doc.Find("canvas#" + c.Canvas)
		require.Equal(t, 1, canvas.Length(), "canvas %s", c.Canvas)
		assert.Equal(t, 1, canvas.Closest(".chart-container").Length())
	}

	assert.Equal(t, 20, doc.Find("#references li").Length())

	// every in-page link resolves
	doc.Find(`a[href^="#"]`).Each(func(_ int, s *goquery.Selection) {
		id := strings.TrimPrefix(s.AttrOr("href", ""), "#")
		assert.Equal(t, 1, doc.Find("#"+id).Length(), "link target #%s", id)
	})

	sup := doc.Find("section").First().Find(".reference-link-sup a").First()
	assert.Equal(t, "[1, 2]", sup.Text())
	assert.Equal(t, "#ref-1", sup.AttrOr("href", ""))

	assert.Contains(t, doc.Find(".stat-card").Eq(6).Text(), "₹9")
	assert.Contains(t, doc.Find("footer").Text(), "© 2024 Interactive Report on AI in Indian Retail")
}

func TestRenderEmbedsChartSpecs(t *testing.T) {
	r := newTestRenderer(t, false)
	doc := renderDoc(t, r, widget.DefaultViewState(""))

	script := doc.Find(`script#chart-specs`)
	require.Equal(t, 1, script.Length())
	assert.Equal(t, "application/json", script.AttrOr("type", ""))

	var specs []model.ChartSpec
	require.NoError(t, json.Unmarshal([]byte(script.Text()), &specs))
	if diff := cmp.Diff(IndianRetail().Charts(), specs); diff != "" {
		t.Errorf("embedded chart specs differ (-want +got):\n%s", diff)
	}
}

func TestRenderCache(t *testing.T) {
	r := newTestRenderer(t, true)
	ctx := context.Background()
	rpt := IndianRetail()

	first, err := r.Render(ctx, rpt, widget.DefaultViewState(""))
	require.NoError(t, err)
	second, err := r.Render(ctx, rpt, widget.DefaultViewState("personalization"))
	require.NoError(t, err)
	assert.Equal(t, first, second, "equivalent states share a cache entry")

	other, err := r.Render(ctx, rpt, widget.ViewState{Tab: "operations", Open: -1})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
	assert.Len(t, r.cached, 2)
}

func TestRenderCacheReturnsCopies(t *testing.T) {
	r := newTestRenderer(t, true)
	ctx := context.Background()
	rpt := IndianRetail()
	state := widget.DefaultViewState("")

	first, err := r.Render(ctx, rpt, state)
	require.NoError(t, err)
	want := bytes.Clone(first)
	for i := range first {
		first[i] = 'x'
	}

	second, err := r.Render(ctx, rpt, state)
	require.NoError(t, err)
	assert.Equal(t, want, second)

	second[0] = 'y'
	third, err := r.Render(ctx, rpt, state)
	require.NoError(t, err)
	assert.Equal(t, want, third)
}

func TestRenderConcurrent(t *testing.T) {
	r := newTestRenderer(t, true)
	rpt := IndianRetail()
	states := []widget.ViewState{
		{Tab: "personalization", Open: -1},
		{Tab: "operations", Open: 0},
		{Tab: "service", Open: 3},
	}

	var wg sync.WaitGroup
	for i := 0; i < 24; i++ {
		wg.Add(1)
		go func(state widget.ViewState) {
			defer wg.Done()
			_, err := r.Render(context.Background(), rpt, state)
			assert.NoError(t, err)
		}(states[i%len(states)])
	}
	wg.Wait()
	assert.Len(t, r.cached, 3)
}

func TestRenderCancelledContext(t *testing.T) {
	r := newTestRenderer(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Render(ctx, IndianRetail(), widget.DefaultViewState(""))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRendererViewState(t *testing.T) {
	r, err := NewRenderer(Options{DefaultTab: "operations"})
	require.NoError(t, err)
	rpt := IndianRetail()

	assert.Equal(t, widget.ViewState{Tab: "operations", Open: -1}, r.ViewState(rpt, url.Values{}))
	assert.Equal(t, widget.ViewState{Tab: "service", Open: 1}, r.ViewState(rpt, url.Values{"tab": {"service"}, "open": {"1"}}))
	assert.Equal(t, widget.ViewState{Tab: "operations", Open: -1}, r.ViewState(rpt, url.Values{"tab": {"bogus"}}))
	assert.Equal(t, "en", r.Language().String())
}
