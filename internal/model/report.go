// Package model defines the data models for the application.
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Report is the full content of a rendered report. It is a fixed literal;
// nothing in the application mutates it after construction.
type Report struct {
	Slug          string    `json:"slug"`
	Brand         string    `json:"brand"`          // header title
	DocumentTitle string    `json:"document_title"` // <title> of the embedded document
	Nav           []NavLink `json:"nav"`

	Hero         Hero                `json:"hero"`
	Market       MarketSection       `json:"market"`
	Consumer     ConsumerSection     `json:"consumer"`
	Applications ApplicationsSection `json:"applications"`
	Leaders      LeadersSection      `json:"leaders"`
	References   ReferencesSection   `json:"references"`

	Footer string `json:"footer"`
}

// NavLink is a header navigation entry pointing at a section anchor
type NavLink struct {
	Label  string `json:"label"`
	Target string `json:"target"` // section id without '#'
}

// Href returns the in-page link for the nav entry
func (n NavLink) Href() string {
	return "#" + n.Target
}

// SectionIntro is the heading block shared by every identified section
type SectionIntro struct {
	ID      string `json:"id"`
	Heading string `json:"heading"`
	Summary string `json:"summary,omitempty"`
}

// Hero is the unidentified banner at the top of the document
type Hero struct {
	Headline string     `json:"headline"`
	Lead     string     `json:"lead"`
	Stats    []StatCard `json:"stats"`
}

// StatCard is a single highlighted figure
type StatCard struct {
	Value   string    `json:"value"`
	Caption string    `json:"caption"`
	Cite    Citations `json:"cite,omitempty"`
}

// Figure is a titled chart with an optional note below it
type Figure struct {
	Title string    `json:"title"`
	Cite  Citations `json:"cite,omitempty"`
	Chart ChartSpec `json:"chart"`
	Note  Text      `json:"note,omitempty"`
}

// MarketSection holds the market growth and component charts
type MarketSection struct {
	SectionIntro
	Growth     Figure `json:"growth"`
	Components Figure `json:"components"`
}

// ConsumerSection holds consumer stats and the sentiment chart
type ConsumerSection struct {
	SectionIntro
	Stats     []StatCard `json:"stats"`
	Sentiment Figure     `json:"sentiment"`
}

// ApplicationsSection holds the tabbed use cases
type ApplicationsSection struct {
	SectionIntro
	Tabs []Tab `json:"tabs"`
}

// Tab is one pane of the applications tab group
type Tab struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Heading     string    `json:"heading"`
	HeadingCite Citations `json:"heading_cite,omitempty"`
	Summary     string    `json:"summary"`
	Points      []Point   `json:"points"`
}

// PaneID returns the DOM id of the tab's pane
func (t Tab) PaneID() string {
	return t.Key + "-content"
}

// Point is a bullet with a bold label
type Point struct {
	Label string    `json:"label"`
	Text  string    `json:"text"`
	Cite  Citations `json:"cite,omitempty"`
}

// LeadersSection holds the company accordion
type LeadersSection struct {
	SectionIntro
	Entries []AccordionEntry `json:"entries"`
}

// AccordionEntry is one collapsible company case study
type AccordionEntry struct {
	Company string    `json:"company"`
	Sector  string    `json:"sector"`
	Cite    Citations `json:"cite,omitempty"`
	Body    string    `json:"body"`
}

// Title returns the header text, e.g. "Myntra (Fashion Retail)"
func (e AccordionEntry) Title() string {
	if e.Sector == "" {
		return e.Company
	}
	return e.Company + " (" + e.Sector + ")"
}

// ReferencesSection is the numbered citation list
type ReferencesSection struct {
	SectionIntro
	Items []Reference `json:"items"`
}

// Reference is a numbered source
type Reference struct {
	N    int    `json:"n"`
	Text string `json:"text"`
}

// Anchor returns the DOM id of the reference, e.g. "ref-3"
func (r Reference) Anchor() string {
	return RefAnchor(r.N)
}

// RefAnchor returns the DOM id for reference n
func RefAnchor(n int) string {
	return "ref-" + strconv.Itoa(n)
}

// Citation is one superscript link. A citation may name several references
// ("[1, 2]"); the link targets the first.
type Citation struct {
	Refs []int `json:"refs"`
}

// Cite builds a single citation over the given reference numbers
func Cite(refs ...int) Citation {
	return Citation{Refs: refs}
}

// Label returns the visible marker, e.g. "[1, 2]"
func (c Citation) Label() string {
	parts := make([]string, len(c.Refs))
	for i, n := range c.Refs {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Href returns the link target of the citation
func (c Citation) Href() string {
	if len(c.Refs) == 0 {
		return ""
	}
	return "#" + RefAnchor(c.Refs[0])
}

// Citations is a group of citations rendered in one superscript
type Citations []Citation

// Run is a span of text optionally followed by citations
type Run struct {
	Text string    `json:"text"`
	Cite Citations `json:"cite,omitempty"`
}

// Text is a paragraph made of runs, so citations can sit mid-sentence
type Text []Run

// Plain returns the paragraph without citation markers
func (t Text) Plain() string {
	var b strings.Builder
	for _, r := range t {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Sections returns the identified sections in document order
func (r *Report) Sections() []SectionIntro {
	return []SectionIntro{
		r.Market.SectionIntro,
		r.Consumer.SectionIntro,
		r.Applications.SectionIntro,
		r.Leaders.SectionIntro,
		r.References.SectionIntro,
	}
}

// Charts returns every chart in document order
func (r *Report) Charts() []ChartSpec {
	return []ChartSpec{
		r.Market.Growth.Chart,
		r.Market.Components.Chart,
		r.Consumer.Sentiment.Chart,
	}
}

// TabKeys returns the tab keys in display order
func (r *Report) TabKeys() []string {
	keys := make([]string, len(r.Applications.Tabs))
	for i, t := range r.Applications.Tabs {
		keys[i] = t.Key
	}
	return keys
}

// CitationSite names where a citation appears, for diagnostics
type CitationSite struct {
	Where    string
	Citation Citation
}

// AllCitations walks the report and returns every citation with its location
func (r *Report) AllCitations() []CitationSite {
	var sites []CitationSite
	add := func(where string, cs Citations) {
		for _, c := range cs {
			sites = append(sites, CitationSite{Where: where, Citation: c})
		}
	}

	for i, s := range r.Hero.Stats {
		add(fmt.Sprintf("hero.stats[%d]", i), s.Cite)
	}
	for _, f := range []struct {
		name string
		fig  Figure
	}{
		{"market.growth", r.Market.Growth},
		{"market.components", r.Market.Components},
		{"consumer.sentiment", r.Consumer.Sentiment},
	} {
		add(f.name, f.fig.Cite)
		for i, run := range f.fig.Note {
			add(fmt.Sprintf("%s.note[%d]", f.name, i), run.Cite)
		}
	}
	for i, s := range r.Consumer.Stats {
		add(fmt.Sprintf("consumer.stats[%d]", i), s.Cite)
	}
	for _, t := range r.Applications.Tabs {
		add("applications."+t.Key, t.HeadingCite)
		for i, p := range t.Points {
			add(fmt.Sprintf("applications.%s.points[%d]", t.Key, i), p.Cite)
		}
	}
	for i, e := range r.Leaders.Entries {
		add(fmt.Sprintf("leaders.entries[%d]", i), e.Cite)
	}
	return sites
}
