package pagination

import "slices"

// Page is one slice of an ordered collection.
type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// Paginate slices items into the requested page. Out of range pages yield an
// empty or short page; currentPage is never clamped.
func Paginate[T any](items []T, currentPage, itemsPerPage int) Page[T] {
	page := Page[T]{
		Items:       []T{},
		CurrentPage: currentPage,
	}
	if itemsPerPage <= 0 {
		return page
	}

	page.TotalPages = (len(items) + itemsPerPage - 1) / itemsPerPage

	start := (currentPage - 1) * itemsPerPage
	end := start + itemsPerPage
	if start < 0 {
		start = 0
	}
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return page
	}

	page.Items = slices.Clone(items[start:end])
	return page
}

// HasNext reports whether a next page exists.
func (p Page[T]) HasNext() bool {
	return p.CurrentPage != p.TotalPages && p.TotalPages > 0
}

// HasPrev reports whether a previous page exists.
func (p Page[T]) HasPrev() bool {
	return p.CurrentPage != 1
}
