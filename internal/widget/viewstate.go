package widget

import (
	"net/url"
	"strconv"
)

// Query parameters that select the initial widget state
const (
	QueryTab  = "tab"
	QueryOpen = "open"
)

// ViewState is the initial widget state of a rendered document
type ViewState struct {
	// Tab is the key of the visible tab pane
	Tab string
	// Open is the index of the expanded accordion entry, or -1 for none
	Open int
}

// DefaultViewState shows defaultTab with every accordion entry collapsed
func DefaultViewState(defaultTab string) ViewState {
	return ViewState{Tab: defaultTab, Open: noEntry}
}

// ParseViewState reads tab and open from query values. Unknown tabs and
// out-of-range entries fall back to the defaults.
func ParseViewState(q url.Values, tabs []string, entries int) ViewState {
	def := ""
	if len(tabs) > 0 {
		def = tabs[0]
	}
	vs := DefaultViewState(def)

	if t := q.Get(QueryTab); t != "" {
		for _, k := range tabs {
			if k == t {
				vs.Tab = t
				break
			}
		}
	}
	if o := q.Get(QueryOpen); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 && n < entries {
			vs.Open = n
		}
	}
	return vs
}

// Normalize returns vs with unknown values replaced by defaults
func (vs ViewState) Normalize(tabs []string, entries int) ViewState {
	q := url.Values{}
	q.Set(QueryTab, vs.Tab)
	q.Set(QueryOpen, strconv.Itoa(vs.Open))
	return ParseViewState(q, tabs, entries)
}

// Key identifies the state, e.g. for caching rendered documents
func (vs ViewState) Key() string {
	return vs.Tab + "|" + strconv.Itoa(vs.Open)
}

// Query encodes the state as URL query values
func (vs ViewState) Query() url.Values {
	q := url.Values{}
	if vs.Tab != "" {
		q.Set(QueryTab, vs.Tab)
	}
	if vs.Open != noEntry {
		q.Set(QueryOpen, strconv.Itoa(vs.Open))
	}
	return q
}
