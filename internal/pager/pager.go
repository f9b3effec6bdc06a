// Package pager slices ordered results into fixed-size pages.
package pager

// WindowSize is the number of page buttons shown around the current page.
const WindowSize = 5

// Page is one page of results plus the metadata needed by navigation controls.
type Page[T any] struct {
	Items      []T   `json:"items"`
	PageNumber int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int   `json:"total"`
	TotalPages int   `json:"total_pages"`
	Window     []int `json:"window"`
}

// Paginate returns page pageNumber (1-indexed) of items. Pages outside
// [1, TotalPages] have no items but keep TotalPages; nothing here fails.
// The returned items alias the input slice.
func Paginate[T any](items []T, pageSize, pageNumber int) Page[T] {
	p := Page[T]{
		Items:      []T{},
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalItems: len(items),
	}
	if pageSize <= 0 {
		p.Window = []int{}
		return p
	}

	p.TotalPages = len(items) / pageSize
	if len(items)%pageSize != 0 {
		p.TotalPages++
	}
	p.Window = Window(p.TotalPages, pageNumber)

	if pageNumber < 1 || pageNumber > p.TotalPages {
		return p
	}
	start := (pageNumber - 1) * pageSize
	end := len(items)
	if pageSize < end-start {
		end = start + pageSize
	}
	p.Items = items[start:end]
	return p
}

// Window returns up to WindowSize contiguous page numbers around pageNumber,
// clamped to [1, totalPages]. With more than WindowSize pages it always
// returns exactly WindowSize numbers.
func Window(totalPages, pageNumber int) []int {
	if totalPages <= 0 {
		return []int{}
	}

	var first int
	switch {
	case totalPages <= WindowSize:
		first = 1
	case pageNumber <= 3:
		first = 1
	case pageNumber >= totalPages-2:
		first = totalPages - WindowSize + 1
	default:
		first = pageNumber - 2
	}

	n := WindowSize
	if totalPages < n {
		n = totalPages
	}
	window := make([]int, n)
	for i := range window {
		window[i] = first + i
	}
	return window
}

// Clamp keeps pageNumber within [1, totalPages], for Previous/Next controls.
func Clamp(pageNumber, totalPages int) int {
	if pageNumber > totalPages {
		pageNumber = totalPages
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	return pageNumber
}
