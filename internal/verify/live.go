package verify

import (
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/retailscope/retailscope/consts"
	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/internal/report/exporter"
	"github.com/retailscope/retailscope/internal/widget"
	"github.com/retailscope/retailscope/pkg/logger"
)

// LiveOptions configures the headless browser run
type LiveOptions struct {
	// ChromePath overrides CHROME_PATH and browser discovery
	ChromePath string
	// Timeout bounds the whole run
	Timeout time.Duration
	// Width and Height are the initial viewport in CSS pixels
	Width  int64
	Height int64
	// Settle is the pause after an interaction before reading the DOM
	Settle time.Duration
}

// DefaultLiveOptions returns a desktop viewport with a two minute timeout
func DefaultLiveOptions() LiveOptions {
	return LiveOptions{
		Timeout: 2 * time.Minute,
		Width:   1280,
		Height:  900,
		Settle:  250 * time.Millisecond,
	}
}

// In-page probes. Each returns plain JSON values.
const (
	jsVisiblePanes = `Array.from(document.querySelectorAll('.tab-pane'))` +
		`.filter(function (p) { return !p.classList.contains('hidden'); })` +
		`.map(function (p) { return p.id; })`
	jsOpenEntries = `Array.from(document.querySelectorAll('.accordion-item'))` +
		`.map(function (item, i) { return item.dataset.open === 'true' ? i : -1; })` +
		`.filter(function (i) { return i >= 0; })`
	jsSections = `Array.from(document.querySelectorAll('main section'))` +
		`.map(function (s) { return { id: s.id, top: s.offsetTop }; })`
	jsActiveLinks = `Array.from(document.querySelectorAll('#header .nav-link.active'))` +
		`.map(function (a) { return a.getAttribute('href'); })`
	jsChartGeneration = `Number(document.body.dataset.chartGeneration || 0)`
	jsChartInstances  = `Number(document.body.dataset.chartInstances || 0)`
	jsMenuHidden      = `document.getElementById('mobile-menu').classList.contains('hidden')`
)

// jsClick clicks the index-th element matching selector and reports whether it existed.
// Clicking through the DOM does not depend on layout or stylesheet availability.
func jsClick(selector string, index int) string {
	return fmt.Sprintf(`(function () { var el = document.querySelectorAll(%q)[%d]; if (!el) { return false; } el.click(); return true; })()`, selector, index)
}

// click runs jsClick and fails when nothing matched
func click(selector string, index int) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		var ok bool
		if err := chromedp.Evaluate(jsClick(selector, index), &ok).Do(ctx); err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no element %d for %s", index, selector)
		}
		return nil
	})
}

// Live loads doc in headless Chrome and exercises tabs, the accordion, the
// scroll spy, the mobile menu and chart redraw on resize.
func Live(ctx context.Context, doc []byte, rpt *model.Report, opts LiveOptions) (*Report, error) {
	tmpFile, err := os.CreateTemp("", consts.ServiceName+"-verify-*.html")
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

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	browserCtx, browserCancel := exporter.NewBrowserContext(ctx, opts.ChromePath, "[Verify]")
	defer browserCancel()

	if err := chromedp.Run(browserCtx,
		chromedp.EmulateViewport(opts.Width, opts.Height),
		chromedp.Navigate("file://"+tmpPath),
		chromedp.WaitReady(`body[data-chart-generation]`, chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	logger.Debug("[Verify] Document loaded", zap.String("path", tmpPath))

	out := &Report{}
	steps := []func(context.Context, *model.Report, LiveOptions, *Report) error{
		liveTabs,
		liveAccordion,
		liveScrollSpy,
		liveResize,
		liveMobileMenu,
	}
	for _, step := range steps {
		if err := step(browserCtx, rpt, opts, out); err != nil {
			return out, err
		}
	}
	return out, nil
}

// liveTabs clicks every tab, in order and then in reverse, and expects exactly
// the clicked pane to be visible after each click.
func liveTabs(ctx context.Context, rpt *model.Report, opts LiveOptions, out *Report) error {
	keys := rpt.TabKeys()
	group, err := widget.NewTabGroup(keys...)
	if err != nil {
		return err
	}

	sequence := append(slices.Clone(keys), keys...)
	slices.Reverse(sequence[len(keys):])

	for _, key := range sequence {
		var visible []string
		if err := chromedp.Run(ctx,
			click(`.tab-btn[data-tab="`+key+`"]`, 0),
			chromedp.Sleep(opts.Settle),
			chromedp.Evaluate(jsVisiblePanes, &visible),
		); err != nil {
			return fmt.Errorf("tab %s: %w", key, err)
		}
		_ = group.Select(key)
		want := group.Active() + "-content"
		if len(visible) != 1 || visible[0] != want {
			out.Fail(CheckLiveTabs, "after clicking %s visible panes are %v, want [%s]", key, visible, want)
			return nil
		}
	}
	out.Pass(CheckLiveTabs, "%d clicks, one visible pane each time", len(sequence))
	return nil
}

// liveAccordion clicks headers in a sequence that opens, switches and closes
// entries, comparing the page with the accordion model after every click.
func liveAccordion(ctx context.Context, rpt *model.Report, opts LiveOptions, out *Report) error {
	n := len(rpt.Leaders.Entries)
	if n == 0 {
		out.Pass(CheckLiveAccordion, "no entries")
		return nil
	}
	acc := widget.NewAccordion(n)

	sequence := []int{0, 0}
	for i := 0; i < n; i++ {
		sequence = append(sequence, i)
	}
	sequence = append(sequence, n-1)

	for _, i := range sequence {
		var open []int
		if err := chromedp.Run(ctx,
			click(`.accordion-item .accordion-header`, i),
			chromedp.Sleep(opts.Settle),
			chromedp.Evaluate(jsOpenEntries, &open),
		); err != nil {
			return fmt.Errorf("accordion entry %d: %w", i, err)
		}
		if err := acc.Toggle(i); err != nil {
			return err
		}

		var want []int
		if idx, ok := acc.Open(); ok {
			want = []int{idx}
		}
		if !slices.Equal(open, want) {
			out.Fail(CheckLiveAccordion, "after clicking entry %d open entries are %v, want %v", i, open, want)
			return nil
		}
	}
	out.Pass(CheckLiveAccordion, "%d clicks, at most one entry open", len(sequence))
	return nil
}

// liveScrollSpy scrolls to every section top and compares the highlighted
// link with the scroll spy model built from the measured offsets.
func liveScrollSpy(ctx context.Context, rpt *model.Report, opts LiveOptions, out *Report) error {
	var sections []widget.SectionOffset
	if err := chromedp.Run(ctx, chromedp.Evaluate(jsSections, &sections)); err != nil {
		return fmt.Errorf("measure sections: %w", err)
	}
	spy := widget.NewScrollSpy(widget.DefaultThreshold, sections...)

	positions := []float64{0}
	for _, s := range sections {
		positions = append(positions, s.Top, s.Top+1)
	}

	for _, pos := range positions {
		var scrollY float64
		var active []string
		if err := chromedp.Run(ctx,
			chromedp.Evaluate(fmt.Sprintf(`window.scrollTo(0, %g); window.scrollY`, pos), &scrollY),
			chromedp.Sleep(opts.Settle),
			chromedp.Evaluate(jsActiveLinks, &active),
		); err != nil {
			return fmt.Errorf("scroll to %g: %w", pos, err)
		}

		var want []string
		if id, ok := spy.Current(scrollY); ok {
			want = []string{"#" + id}
		}
		if !slices.Equal(active, want) {
			out.Fail(CheckLiveScrollSpy, "at scrollY %g active links are %v, want %v", scrollY, active, want)
			return nil
		}
	}
	out.Pass(CheckLiveScrollSpy, "%d scroll positions match", len(positions))
	return nil
}

// liveResize changes the viewport and expects every chart to be rebuilt
func liveResize(ctx context.Context, rpt *model.Report, opts LiveOptions, out *Report) error {
	var before, after, instances int
	if err := chromedp.Run(ctx,
		chromedp.Evaluate(jsChartGeneration, &before),
		chromedp.EmulateViewport(opts.Width/2, opts.Height),
		chromedp.Sleep(opts.Settle),
		chromedp.EmulateViewport(opts.Width, opts.Height),
		chromedp.Sleep(opts.Settle),
		chromedp.Evaluate(jsChartGeneration, &after),
		chromedp.Evaluate(jsChartInstances, &instances),
	); err != nil {
		return fmt.Errorf("resize: %w", err)
	}

	want := len(rpt.Charts())
	switch {
	case after <= before:
		out.Fail(CheckLiveResize, "chart generation stayed at %d after resize", after)
	case instances != want:
		out.Fail(CheckLiveResize, "%d charts after resize, want %d (is Chart.js reachable?)", instances, want)
	default:
		out.Pass(CheckLiveResize, "generation %d -> %d with %d charts", before, after, instances)
	}
	return nil
}

// liveMobileMenu opens the menu on a narrow viewport, follows a link and
// expects the menu to close.
func liveMobileMenu(ctx context.Context, rpt *model.Report, opts LiveOptions, out *Report) error {
	if len(rpt.Nav) == 0 {
		out.Pass(CheckLiveMobileMenu, "no navigation links")
		return nil
	}
	menu := &widget.MobileMenu{}

	var scrollY float64
	var afterToggle, afterLink bool
	if err := chromedp.Run(ctx,
		chromedp.EmulateViewport(375, opts.Height),
		chromedp.Evaluate(`window.scrollTo(0, 0); window.scrollY`, &scrollY),
		chromedp.Sleep(opts.Settle),
		click(`#mobile-menu-button`, 0),
		chromedp.Evaluate(jsMenuHidden, &afterToggle),
		click(`#mobile-menu a[href="`+rpt.Nav[0].Href()+`"]`, 0),
		chromedp.Evaluate(jsMenuHidden, &afterLink),
		chromedp.EmulateViewport(opts.Width, opts.Height),
	); err != nil {
		return fmt.Errorf("mobile menu: %w", err)
	}

	menu.Toggle()
	if afterToggle != menu.Hidden() {
		out.Fail(CheckLiveMobileMenu, "menu hidden=%t after toggle, want %t", afterToggle, menu.Hidden())
		return nil
	}
	menu.LinkClicked()
	if afterLink != menu.Hidden() {
		out.Fail(CheckLiveMobileMenu, "menu hidden=%t after following a link, want %t", afterLink, menu.Hidden())
		return nil
	}
	out.Pass(CheckLiveMobileMenu, "menu opens and closes on navigation")
	return nil
}
