package widget

import (
	"fmt"
)

const noEntry = -1

// Accordion is a list of entries of which at most one is expanded
type Accordion struct {
	n    int
	open int
}

// NewAccordion creates an accordion of n entries, all collapsed
func NewAccordion(n int) *Accordion {
	return &Accordion{n: n, open: noEntry}
}

// Toggle handles a click on entry i: every entry collapses, then i expands
// unless it was the one already open.
func (a *Accordion) Toggle(i int) error {
	if i < 0 || i >= a.n {
		return fmt.Errorf("accordion entry %d out of range [0, %d)", i, a.n)
	}
	wasOpen := a.open == i
	a.CollapseAll()
	if !wasOpen {
		a.open = i
	}
	return nil
}

// Open returns the expanded entry, if any
func (a *Accordion) Open() (int, bool) {
	return a.open, a.open != noEntry
}

// IsOpen reports whether entry i is expanded
func (a *Accordion) IsOpen(i int) bool {
	return a.open == i && i != noEntry
}

// CollapseAll collapses every entry
func (a *Accordion) CollapseAll() {
	a.open = noEntry
}

// Len returns the number of entries
func (a *Accordion) Len() int {
	return a.n
}

// OpenCount returns how many entries are expanded, zero or one
func (a *Accordion) OpenCount() int {
	if _, ok := a.Open(); ok {
		return 1
	}
	return 0
}
