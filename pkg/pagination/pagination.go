// Package pagination computes the windowed page-number sequence shown
// under tables and validates page/limit parameters.
package pagination

import (
	"net/url"
	"strconv"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MinLimit     = 1

	// DefaultRadius is how many neighbors are kept on each side of the
	// current page before distant ranges collapse to an ellipsis.
	DefaultRadius = 2
)

// Params holds validated pagination parameters.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse extracts and validates page/limit from query parameters.
func Parse(query url.Values) Params {
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	if page < 1 {
		page = DefaultPage
	}
	if limit < MinLimit {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Item is one element of the rendered page strip: a page number, or an
// ellipsis standing in for a collapsed range.
type Item struct {
	Page     int
	Ellipsis bool
}

// Window returns the visible page strip for the current page: the first and
// last pages, the pages within radius of current, and ellipsis markers for
// the collapsed ranges. With a single page there is nothing to render and
// the result is empty.
func Window(current, totalPages, radius int) []Item {
	if totalPages <= 1 {
		return nil
	}
	if radius < 1 {
		radius = DefaultRadius
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	show := func(p int) bool {
		if p == 1 || p == totalPages {
			return true
		}
		return p >= current-radius && p <= current+radius
	}

	var items []Item
	prev := 0
	for p := 1; p <= totalPages; p++ {
		if !show(p) {
			continue
		}
		if prev != 0 && p-prev > 1 {
			items = append(items, Item{Ellipsis: true})
		}
		items = append(items, Item{Page: p})
		prev = p
	}
	return items
}
