// Package verify checks a rendered report document against its presentation
// contract: one visible tab pane, at most one open accordion entry, charts
// inside sized containers, resolvable anchors, literal chart data and
// redraw-on-resize. Static checks parse the markup; live checks drive a
// headless browser.
package verify

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Check names
const (
	CheckTabPanes        = "tab-panes"
	CheckAccordion       = "accordion"
	CheckChartContainers = "chart-containers"
	CheckAnchors         = "anchors"
	CheckNavTargets      = "nav-targets"
	CheckChartSpecs      = "chart-specs"
	CheckGrowthSeries    = "growth-series"
	CheckMarketShare     = "market-share"
	CheckChartRedraw     = "chart-redraw"
	CheckViewStates      = "view-states"
	CheckContent         = "content"

	CheckLiveTabs       = "live-tabs"
	CheckLiveAccordion  = "live-accordion"
	CheckLiveScrollSpy  = "live-scroll-spy"
	CheckLiveResize     = "live-resize"
	CheckLiveMobileMenu = "live-mobile-menu"
)

// Check is the outcome of one contract check
type Check struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// Report collects check outcomes in the order they ran
type Report struct {
	Checks []Check `json:"checks"`
}

// Pass records a passing check
func (r *Report) Pass(name, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, Passed: true, Message: fmt.Sprintf(format, args...)})
}

// Fail records a failing check
func (r *Report) Fail(name, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Name: name, Message: fmt.Sprintf(format, args...)})
}

// Merge appends the checks of other
func (r *Report) Merge(other *Report) {
	if other != nil {
		r.Checks = append(r.Checks, other.Checks...)
	}
}

// Passed reports whether every check passed
func (r *Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Failed returns the failing checks
func (r *Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// Find returns the first check with name
func (r *Report) Find(name string) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Print writes the checks and a summary line to w
func (r *Report) Print(w io.Writer) {
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14"))
	fmt.Fprintln(w, sectionStyle.Render("Presentation checks"))

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	for _, c := range r.Checks {
		if c.Passed {
			green.Fprintf(w, "  ✓ %s", c.Name)
		} else {
			red.Fprintf(w, "  ✗ %s", c.Name)
		}
		if c.Message != "" {
			fmt.Fprintf(w, ": %s", c.Message)
		}
		fmt.Fprintln(w)
	}

	separator := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	fmt.Fprintln(w, separator.Render(strings.Repeat("─", 50)))

	failed := len(r.Failed())
	if failed == 0 {
		color.New(color.FgGreen, color.Bold).Fprintf(w, "✓ %d check(s) passed\n", len(r.Checks))
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(w, "✗ %d of %d check(s) failed\n", failed, len(r.Checks))
}
