package controls

// Filter is one bubble of the filter bar.
type Filter struct {
	ID    string
	Label string
}

// FilterBar holds the filter bubbles above a table. At most one filter is
// active at a time.
type FilterBar struct {
	filters []Filter
	active  string
}

func NewFilterBar(filters ...Filter) *FilterBar {
	return &FilterBar{filters: filters}
}

// Toggle activates the given filter, deactivating whichever was active.
// Toggling the already-active filter deselects it, leaving none active.
func (fb *FilterBar) Toggle(id string) {
	if fb.active == id {
		fb.active = ""
		return
	}
	for _, f := range fb.filters {
		if f.ID == id {
			fb.active = id
			return
		}
	}
}

// Active returns the id of the active filter, or "" when none is.
func (fb *FilterBar) Active() string { return fb.active }

// Filters returns the declared bubbles in order.
func (fb *FilterBar) Filters() []Filter {
	out := make([]Filter, len(fb.filters))
	copy(out, fb.filters)
	return out
}
