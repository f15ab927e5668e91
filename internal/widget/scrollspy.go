package widget

import (
	"sort"
)

// DefaultThreshold is the header allowance in pixels added to the scroll
// offset before comparing against section tops.
const DefaultThreshold = 60

// SectionOffset is a section's id and its top offset within the document.
// Sections without an id still take part; landing on one activates nothing.
type SectionOffset struct {
	ID  string  `json:"id"`
	Top float64 `json:"top"`
}

// ScrollSpy decides which navigation link is active for a scroll offset
type ScrollSpy struct {
	threshold float64
	sections  []SectionOffset
}

// NewScrollSpy creates a spy over sections given in document order
func NewScrollSpy(threshold float64, sections ...SectionOffset) *ScrollSpy {
	sorted := append([]SectionOffset(nil), sections...)
	// stable keeps document order among equal tops; the later one wins
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Top < sorted[j].Top })
	return &ScrollSpy{threshold: threshold, sections: sorted}
}

// Current returns the id of the section with the greatest top not exceeding
// scrollY + threshold. ok is false when no identified section qualifies, in
// which case no link is active.
func (s *ScrollSpy) Current(scrollY float64) (id string, ok bool) {
	limit := scrollY + s.threshold
	found := -1
	for i, sec := range s.sections {
		if sec.Top > limit {
			break
		}
		found = i
	}
	if found < 0 || s.sections[found].ID == "" {
		return "", false
	}
	return s.sections[found].ID, true
}

// ActiveLinks returns, for each link target, whether it is highlighted.
// At most one entry is true.
func (s *ScrollSpy) ActiveLinks(targets []string, scrollY float64) []bool {
	active := make([]bool, len(targets))
	current, ok := s.Current(scrollY)
	if !ok {
		return active
	}
	for i, t := range targets {
		if t == current {
			active[i] = true
			break
		}
	}
	return active
}
