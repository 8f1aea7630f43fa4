package estimator

import "fmt"

// Pagination is the direct-bound search strategy. It trusts the last-page
// control advertised by the source and needs exactly two requests regardless
// of the total size, provided that control is accurate.
type Pagination struct{}

// Total computes the participant count from the first and last pages.
//
// The per-page size is taken from page 1 and assumed constant across all
// non-final pages; this is a design assumption, not verified. The last-page
// fetch may advertise a different (possibly larger) bound than the first
// fetch did, so the final arithmetic always uses the bound observed on the
// last-page fetch.
func (Pagination) Total(src PageSource, _ int) (int, error) {
	first, err := src.Page(1)
	if err != nil {
		return 0, fmt.Errorf("probing first page: %w", err)
	}
	if first.Rows == 0 {
		return 0, nil
	}
	if first.LastPage <= 1 {
		return first.Rows, nil
	}

	last, err := src.Page(first.LastPage)
	if err != nil {
		return 0, fmt.Errorf("probing last page %d: %w", first.LastPage, err)
	}

	pageSize := first.Rows
	return (last.LastPage-1)*pageSize + last.Rows, nil
}
