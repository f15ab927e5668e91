package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"github.com/retailscope/retailscope/internal/model"
	"github.com/retailscope/retailscope/internal/report"
	"github.com/retailscope/retailscope/internal/widget"
)

// Literal chart values the document must carry
var (
	GrowthLabels = []string{"2024", "2025", "2026", "2027", "2028", "2029", "2030"}
	GrowthValues = []float64{584.7, 781.7, 1045.1, 1397.3, 1868.2, 2500.0, 3474.6}
	ShareValues  = []float64{88.52, 11.48}
)

const shareTotal = 100.0

// maxParallelRenders bounds concurrent renders of the view-state matrix
const maxParallelRenders = 4

// Static renders rpt in its default state and in every tab and accordion
// state, and checks each document's markup.
func Static(ctx context.Context, renderer *report.Renderer, rpt *model.Report) (*Report, error) {
	out := &Report{}

	if vs := report.Lint(rpt); len(vs) > 0 {
		out.Fail(CheckContent, "%d violation(s): %s", len(vs), vs[0])
	} else {
		out.Pass(CheckContent, "report content is consistent")
	}

	doc, err := renderer.Render(ctx, rpt, renderer.ViewState(rpt, nil))
	if err != nil {
		return nil, err
	}
	parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	out.Merge(CheckDocument(parsed, rpt))

	states, err := checkViewStates(ctx, renderer, rpt)
	if err != nil {
		return nil, err
	}
	out.Merge(states)

	return out, nil
}

// CheckDocument runs the markup checks against one parsed document
func CheckDocument(doc *goquery.Document, rpt *model.Report) *Report {
	out := &Report{}
	checkTabPanes(out, doc, "")
	checkAccordion(out, doc, -1, false)
	checkChartContainers(out, doc)
	checkAnchors(out, doc)
	checkNavTargets(out, doc, rpt)
	specs := checkChartSpecs(out, doc, rpt)
	checkGrowthSeries(out, specs)
	checkMarketShare(out, specs)
	checkChartRedraw(out, doc, specs)
	return out
}

// VisiblePanes returns the ids of tab panes not marked hidden
func VisiblePanes(doc *goquery.Document) []string {
	var ids []string
	doc.Find(".tab-pane").Each(func(_ int, s *goquery.Selection) {
		if !s.HasClass("hidden") {
			ids = append(ids, s.AttrOr("id", ""))
		}
	})
	return ids
}

// OpenEntries returns the indexes of expanded accordion entries
func OpenEntries(doc *goquery.Document) []int {
	var open []int
	doc.Find(".accordion-item").Each(func(i int, s *goquery.Selection) {
		if s.HasClass("open") || s.AttrOr("data-open", "") == "true" {
			open = append(open, i)
		}
	})
	return open
}

// checkTabPanes expects exactly one visible pane, and when want is set, that it is want
func checkTabPanes(out *Report, doc *goquery.Document, want string) bool {
	visible := VisiblePanes(doc)
	switch {
	case len(visible) != 1:
		out.Fail(CheckTabPanes, "%d visible tab panes %v, want exactly 1", len(visible), visible)
		return false
	case want != "" && visible[0] != want:
		out.Fail(CheckTabPanes, "visible pane %q, want %q", visible[0], want)
		return false
	}

	active := doc.Find(".tab-btn.active")
	if active.Length() != 1 {
		out.Fail(CheckTabPanes, "%d active tab buttons, want 1", active.Length())
		return false
	}
	if key := active.AttrOr("data-tab", ""); key+"-content" != visible[0] {
		out.Fail(CheckTabPanes, "active button %q does not match visible pane %q", key, visible[0])
		return false
	}
	out.Pass(CheckTabPanes, "exactly one visible pane (%s)", visible[0])
	return true
}

// checkAccordion expects zero or one open entry; with exact set, exactly want
func checkAccordion(out *Report, doc *goquery.Document, want int, exact bool) bool {
	open := OpenEntries(doc)
	if len(open) > 1 {
		out.Fail(CheckAccordion, "%d open entries %v, want at most 1", len(open), open)
		return false
	}
	if exact {
		got := -1
		if len(open) == 1 {
			got = open[0]
		}
		if got != want {
			out.Fail(CheckAccordion, "open entry %d, want %d", got, want)
			return false
		}
	}

	bad := 0
	doc.Find(".accordion-item").Each(func(i int, s *goquery.Selection) {
		icon := strings.TrimSpace(s.Find(".accordion-icon").Text())
		isOpen := slices.Contains(open, i)
		if (isOpen && icon != "×") || (!isOpen && icon != "+") {
			bad++
		}
	})
	if bad > 0 {
		out.Fail(CheckAccordion, "%d entries show an icon that does not match their state", bad)
		return false
	}
	out.Pass(CheckAccordion, "%d of %d entries open", len(open), doc.Find(".accordion-item").Length())
	return true
}

func checkChartContainers(out *Report, doc *goquery.Document) {
	var orphans []string
	canvases := doc.Find("canvas")
	canvases.Each(func(_ int, s *goquery.Selection) {
		if s.Closest(".chart-container").Length() == 0 {
			orphans = append(orphans, s.AttrOr("id", "?"))
		}
	})
	if len(orphans) > 0 {
		out.Fail(CheckChartContainers, "canvases outside a .chart-container: %v", orphans)
		return
	}
	out.Pass(CheckChartContainers, "%d canvases in containers", canvases.Length())
}

func checkAnchors(out *Report, doc *goquery.Document) {
	ids := make(map[string]bool)
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		ids[s.AttrOr("id", "")] = true
	})

	var dangling []string
	links := doc.Find(`a[href^="#"]`)
	links.Each(func(_ int, s *goquery.Selection) {
		target := strings.TrimPrefix(s.AttrOr("href", ""), "#")
		if target != "" && !ids[target] && !slices.Contains(dangling, target) {
			dangling = append(dangling, target)
		}
	})
	if len(dangling) > 0 {
		out.Fail(CheckAnchors, "links to missing ids: %v", dangling)
		return
	}
	out.Pass(CheckAnchors, "%d in-page links resolve", links.Length())
}

func checkNavTargets(out *Report, doc *goquery.Document, rpt *model.Report) {
	var missing []string
	for _, link := range rpt.Nav {
		if doc.Find("main section#"+link.Target).Length() != 1 {
			missing = append(missing, link.Target)
		}
		if doc.Find(`#header .nav-link[href="`+link.Href()+`"]`).Length() != 1 {
			missing = append(missing, "header:"+link.Target)
		}
		if doc.Find(`#mobile-menu a[href="`+link.Href()+`"]`).Length() != 1 {
			missing = append(missing, "mobile:"+link.Target)
		}
	}
	if len(missing) > 0 {
		out.Fail(CheckNavTargets, "navigation targets without a section or link: %v", missing)
		return
	}
	out.Pass(CheckNavTargets, "%d navigation links point at sections", len(rpt.Nav))
}

// checkChartSpecs decodes the embedded specs and compares them with the literal
func checkChartSpecs(out *Report, doc *goquery.Document, rpt *model.Report) []model.ChartSpec {
	raw := doc.Find("script#chart-specs").Text()
	if raw == "" {
		out.Fail(CheckChartSpecs, "no embedded chart specs")
		return nil
	}
	var specs []model.ChartSpec
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		out.Fail(CheckChartSpecs, "embedded chart specs are not valid JSON: %v", err)
		return nil
	}
	if diff := cmp.Diff(rpt.Charts(), specs); diff != "" {
		out.Fail(CheckChartSpecs, "embedded specs differ from content (-want +got):\n%s", diff)
		return specs
	}
	out.Pass(CheckChartSpecs, "%d chart specs match content", len(specs))
	return specs
}

func findChart(specs []model.ChartSpec, typ model.ChartType) (model.ChartSpec, bool) {
	for _, s := range specs {
		if s.Type == typ {
			return s, true
		}
	}
	return model.ChartSpec{}, false
}

func checkGrowthSeries(out *Report, specs []model.ChartSpec) {
	line, ok := findChart(specs, model.ChartLine)
	if !ok || len(line.Datasets) == 0 {
		out.Fail(CheckGrowthSeries, "no line chart")
		return
	}
	if !slices.Equal(line.Labels, GrowthLabels) {
		out.Fail(CheckGrowthSeries, "labels %v, want %v", line.Labels, GrowthLabels)
		return
	}
	if !slices.Equal(line.Datasets[0].Data, GrowthValues) {
		out.Fail(CheckGrowthSeries, "values %v, want %v", line.Datasets[0].Data, GrowthValues)
		return
	}
	out.Pass(CheckGrowthSeries, "%d points %s..%s", len(GrowthLabels), GrowthLabels[0], GrowthLabels[len(GrowthLabels)-1])
}

func checkMarketShare(out *Report, specs []model.ChartSpec) {
	doughnut, ok := findChart(specs, model.ChartDoughnut)
	if !ok || len(doughnut.Datasets) == 0 {
		out.Fail(CheckMarketShare, "no doughnut chart")
		return
	}
	ds := doughnut.Datasets[0]
	if !slices.Equal(ds.Data, ShareValues) {
		out.Fail(CheckMarketShare, "segments %v, want %v", ds.Data, ShareValues)
		return
	}
	if sum := ds.Sum(); math.Abs(sum-shareTotal) > 1e-6 {
		out.Fail(CheckMarketShare, "segments sum to %v, want %v", sum, shareTotal)
		return
	}
	out.Pass(CheckMarketShare, "segments sum to %v", shareTotal)
}

// SurfaceFromDocument maps every canvas in doc to its chart container
func SurfaceFromDocument(doc *goquery.Document) widget.MapSurface {
	surface := widget.MapSurface{}
	doc.Find("canvas[id]").Each(func(_ int, s *goquery.Selection) {
		id := s.AttrOr("id", "")
		surface[id] = widget.Canvas{
			ID:          id,
			InContainer: s.Closest(".chart-container").Length() > 0,
		}
	})
	return surface
}

// checkChartRedraw builds the charts against the document twice, the way a
// resize does, and expects a full rebuild each time.
func checkChartRedraw(out *Report, doc *goquery.Document, specs []model.ChartSpec) {
	if len(specs) == 0 {
		out.Fail(CheckChartRedraw, "no chart specs to draw")
		return
	}
	surface := SurfaceFromDocument(doc)
	charts := widget.NewChartSet(specs)

	if built := charts.Render(surface); built != len(specs) {
		out.Fail(CheckChartRedraw, "initial draw built %d of %d charts", built, len(specs))
		return
	}
	first := charts.Instances()

	if built := charts.Render(surface); built != len(specs) {
		out.Fail(CheckChartRedraw, "redraw built %d of %d charts", built, len(specs))
		return
	}
	for _, inst := range first {
		if !inst.Destroyed() {
			out.Fail(CheckChartRedraw, "chart %s survived a redraw", inst.Spec.Canvas)
			return
		}
	}
	out.Pass(CheckChartRedraw, "generation %d with %d charts", charts.Generation(), len(charts.Instances()))
}

// checkViewStates renders every tab with every accordion entry open (and none)
// and checks the initial state of each document.
func checkViewStates(ctx context.Context, renderer *report.Renderer, rpt *model.Report) (*Report, error) {
	var states []widget.ViewState
	for _, tab := range rpt.TabKeys() {
		for open := -1; open < len(rpt.Leaders.Entries); open++ {
			states = append(states, widget.ViewState{Tab: tab, Open: open})
		}
	}

	failures := make([]string, len(states))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelRenders)
	for i, vs := range states {
		i, vs := i, vs
		g.Go(func() error {
			doc, err := renderer.Render(ctx, rpt, vs)
			if err != nil {
				return err
			}
			parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
			if err != nil {
				return err
			}
			probe := &Report{}
			checkTabPanes(probe, parsed, vs.Tab+"-content")
			checkAccordion(probe, parsed, vs.Open, true)
			if f := probe.Failed(); len(f) > 0 {
				failures[i] = vs.Tab + "/" + strconv.Itoa(vs.Open) + ": " + f[0].Message
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to render view states: %w", err)
	}

	out := &Report{}
	var failed []string
	for _, f := range failures {
		if f != "" {
			failed = append(failed, f)
		}
	}
	if len(failed) > 0 {
		out.Fail(CheckViewStates, "%d of %d states wrong: %s", len(failed), len(states), strings.Join(failed, "; "))
	} else {
		out.Pass(CheckViewStates, "%d tab and accordion states render correctly", len(states))
	}
	return out, nil
}
