package report

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/retailscope/retailscope/internal/model"
)

// Lint rules
const (
	RuleCitationTarget = "citation-target"
	RuleNavTarget      = "nav-target"
	RuleDoughnutSum    = "doughnut-sum"
	RuleGrowthSeries   = "growth-series"
	RuleDatasetLength  = "dataset-length"
	RuleReferenceOrder = "reference-order"
	RuleUniqueIDs      = "unique-ids"
)

// Market growth series covers these years inclusive
const (
	GrowthFirstYear = 2024
	GrowthLastYear  = 2030
)

const sumTolerance = 1e-6

// Violation is one content-integrity problem
type Violation struct {
	Rule    string `json:"rule"`
	Where   string `json:"where"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s (%s): %s", v.Where, v.Rule, v.Message)
}

// Violations is the result of Lint
type Violations []Violation

// Err returns nil when there are no violations, else one error listing them
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	lines := make([]string, len(vs))
	for i, v := range vs {
		lines[i] = v.String()
	}
	return fmt.Errorf("report has %d content violation(s):\n  %s", len(vs), strings.Join(lines, "\n  "))
}

// Lint checks the report's content integrity and returns every violation
func Lint(rpt *model.Report) Violations {
	var out Violations
	add := func(rule, where, format string, args ...any) {
		out = append(out, Violation{Rule: rule, Where: where, Message: fmt.Sprintf(format, args...)})
	}

	refs := make(map[int]bool, len(rpt.References.Items))
	for i, ref := range rpt.References.Items {
		if ref.N != i+1 {
			add(RuleReferenceOrder, fmt.Sprintf("references[%d]", i), "expected number %d, got %d", i+1, ref.N)
		}
		refs[ref.N] = true
	}
	for _, site := range rpt.AllCitations() {
		if len(site.Citation.Refs) == 0 {
			add(RuleCitationTarget, site.Where, "citation names no reference")
		}
		for _, n := range site.Citation.Refs {
			if !refs[n] {
				add(RuleCitationTarget, site.Where, "citation %s targets missing reference %s", site.Citation.Label(), model.RefAnchor(n))
			}
		}
	}

	sections := make(map[string]bool)
	for _, s := range rpt.Sections() {
		if s.ID == "" {
			continue
		}
		if sections[s.ID] {
			add(RuleUniqueIDs, "section "+s.ID, "duplicate section id")
		}
		sections[s.ID] = true
	}
	for i, link := range rpt.Nav {
		if !sections[link.Target] {
			add(RuleNavTarget, fmt.Sprintf("nav[%d]", i), "link %q targets missing section %q", link.Label, link.Target)
		}
	}

	canvases := make(map[string]bool)
	for _, chart := range rpt.Charts() {
		where := "chart " + chart.Canvas
		if canvases[chart.Canvas] {
			add(RuleUniqueIDs, where, "duplicate canvas id")
		}
		canvases[chart.Canvas] = true

		for j, ds := range chart.Datasets {
			if len(ds.Data) != len(chart.Labels) {
				add(RuleDatasetLength, where, "dataset %d (%q) has %d points for %d labels", j, ds.Label, len(ds.Data), len(chart.Labels))
			}
		}
		if chart.Type == model.ChartDoughnut {
			for j, ds := range chart.Datasets {
				if sum := ds.Sum(); math.Abs(sum-100) > sumTolerance {
					add(RuleDoughnutSum, where, "dataset %d segments sum to %v, want 100", j, sum)
				}
			}
		}
	}

	growth := rpt.Market.Growth.Chart
	if want := yearLabels(GrowthFirstYear, GrowthLastYear); !slices.Equal(growth.Labels, want) {
		add(RuleGrowthSeries, "chart "+growth.Canvas, "labels %v, want %v", growth.Labels, want)
	}

	tabs := make(map[string]bool)
	for _, t := range rpt.Applications.Tabs {
		if tabs[t.Key] {
			add(RuleUniqueIDs, "tab "+t.Key, "duplicate tab key")
		}
		tabs[t.Key] = true
	}

	return out
}

func yearLabels(first, last int) []string {
	labels := make([]string, 0, last-first+1)
	for y := first; y <= last; y++ {
		labels = append(labels, strconv.Itoa(y))
	}
	return labels
}

// ValidateDefaultTab reports a configured default tab that rpt does not have.
// An empty tab selects the first one.
func ValidateDefaultTab(rpt *model.Report, tab string) error {
	if tab == "" || slices.Contains(rpt.TabKeys(), tab) {
		return nil
	}
	return fmt.Errorf("default tab %q is not one of %s", tab, strings.Join(rpt.TabKeys(), ", "))
}
