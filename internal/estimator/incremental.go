package estimator

import "fmt"

// Incremental is the inferred search strategy, used when the source exposes
// no reliable last-page control. It assumes a fixed page size, starts from
// the page the previously-recorded total points at, and walks until it finds
// the partial or empty page that ends the listing.
type Incremental struct {
	// PageSize is the assumed rows per full page. Zero means
	// DefaultPageSize.
	PageSize int
}

// InferStartPage returns the page a previously-recorded total points at:
// max(1, ceil(previousTotal / pageSize)). Starting there instead of at page 1
// keeps the cost of a run proportional to how much the count moved since the
// last one.
func InferStartPage(previousTotal, pageSize int) int {
	if previousTotal <= 0 {
		return 1
	}
	return (previousTotal + pageSize - 1) / pageSize
}

// Total walks pages forward from the inferred start until the listing ends.
//
// A full page is remembered and the walk continues. A partial page ends the
// listing directly. An empty page ends it too when a full page has already
// been seen (the last page was exactly full); before any full page it means
// the inferred start overshot the true last page, since the recorded total
// can lag reality, so the walk steps backward one page at a time, down to
// page 1, until it finds rows.
func (s Incremental) Total(src PageSource, previousTotal int) (int, error) {
	size := s.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	page := InferStartPage(previousTotal, size)
	lastFull := 0
	lastFullRows := 0

	for {
		p, err := src.Page(page)
		if err != nil {
			return 0, fmt.Errorf("probing page %d: %w", page, err)
		}

		switch {
		case p.Rows >= size:
			lastFull = page
			lastFullRows = p.Rows
			page++
		case p.Rows > 0:
			// Partial final page.
			return (page-1)*size + p.Rows, nil
		case lastFull > 0:
			// The page after the last full page is empty, so the true
			// last page was exactly full.
			return (lastFull-1)*size + lastFullRows, nil
		case page == 1:
			return 0, nil
		default:
			// Inferred start overshot the true last page.
			page--
		}
	}
}
