package widget

import (
	"errors"
	"fmt"
)

// ErrUnknownTab is returned when selecting a key the group does not have
var ErrUnknownTab = errors.New("unknown tab")

// TabGroup is a set of panes of which exactly one is visible
type TabGroup struct {
	keys   []string
	active int
}

// NewTabGroup creates a group over keys with the first key active.
// Keys must be non-empty and unique.
func NewTabGroup(keys ...string) (*TabGroup, error) {
	if len(keys) == 0 {
		return nil, errors.New("tab group needs at least one tab")
	}
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" {
			return nil, errors.New("tab key must not be empty")
		}
		if seen[k] {
			return nil, fmt.Errorf("duplicate tab key %q", k)
		}
		seen[k] = true
	}
	return &TabGroup{keys: append([]string(nil), keys...)}, nil
}

// Select makes key the visible pane. An unknown key leaves the group unchanged.
func (g *TabGroup) Select(key string) error {
	for i, k := range g.keys {
		if k == key {
			g.active = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, key)
}

// Active returns the key of the visible pane
func (g *TabGroup) Active() string {
	return g.keys[g.active]
}

// Visible reports whether the pane for key is shown
func (g *TabGroup) Visible(key string) bool {
	return g.Active() == key
}

// Keys returns the tab keys in display order
func (g *TabGroup) Keys() []string {
	return append([]string(nil), g.keys...)
}

// VisibleCount returns how many panes are shown. It is always 1.
func (g *TabGroup) VisibleCount() int {
	n := 0
	for _, k := range g.keys {
		if g.Visible(k) {
			n++
		}
	}
	return n
}
