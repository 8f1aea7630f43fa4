package estimator

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pfrederiksen/startlist-watch/internal/scraper"
)

const (
	// DefaultURL is the unfiltered startlist template for the tracked event.
	DefaultURL = "https://paderborner-osterlauf.r.mikatiming.com/2026/?page={page}&event=10&pid=startlist_list"

	// DefaultPageSize is the number of rows the provider renders on a full
	// startlist page. The incremental strategy assumes it without verifying
	// it against the source; if the provider changes its rendering, the
	// arithmetic is silently wrong.
	DefaultPageSize = 25

	// nameParam is the query parameter the provider uses for name search.
	nameParam = "search%5Bname%5D"
)

// ErrCountDecreased reports a computed total below the previously recorded
// one. That indicates source-side data corruption or a logic bug, so the run
// is aborted loudly instead of clamping the value.
var ErrCountDecreased = errors.New("participant count decreased since last run")

// PageSource returns the parsed startlist page at the given index.
// *scraper.Listing satisfies it; tests substitute fakes.
type PageSource interface {
	Page(n int) (*scraper.Page, error)
}

// SourceFactory builds a PageSource for a URL template. It exists so the
// named-subset search can derive filtered listings from the same client.
type SourceFactory func(urlTemplate string) PageSource

// Strategy computes the total participant count of one listing.
// previousTotal is the last recorded total; strategies may use it to pick a
// starting page and must treat zero rows on a probed page as authoritative
// termination, never as a failure.
type Strategy interface {
	Total(src PageSource, previousTotal int) (int, error)
}

// Config carries the knobs that used to be hard-coded constants, so tests
// can substitute fake endpoints and page sizes.
type Config struct {
	// URL is the listing URL template containing a {page} placeholder.
	// Defaults to DefaultURL.
	URL string

	// PageSize is the assumed rows per full page for the incremental
	// strategy. Defaults to DefaultPageSize.
	PageSize int

	// Strategy computes the total count. Defaults to Pagination{}.
	Strategy Strategy
}

// Estimator drives a page source with the configured search strategy.
type Estimator struct {
	cfg     Config
	sources SourceFactory
}

// New creates an Estimator that fetches pages through the given factory,
// applying defaults for any zero-value Config field.
func New(cfg Config, sources SourceFactory) *Estimator {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Strategy == nil {
		cfg.Strategy = Pagination{}
	}
	return &Estimator{cfg: cfg, sources: sources}
}

// TotalCount computes the total participant count of the unfiltered listing.
// previousTotal is the last recorded total; the returned count is asserted
// to be monotonic against it and a violation yields ErrCountDecreased.
func (e *Estimator) TotalCount(previousTotal int) (int, error) {
	total, err := e.cfg.Strategy.Total(e.sources(e.cfg.URL), previousTotal)
	if err != nil {
		return 0, err
	}
	if total < previousTotal {
		return 0, fmt.Errorf("%w: %d < %d", ErrCountDecreased, total, previousTotal)
	}
	return total, nil
}

// NameCount computes the participant count of the name-filtered listing.
//
// The provider's search transliterates accented characters, sometimes
// dropping or substituting the first one. When a single-word name of more
// than one rune yields zero results, the search is retried exactly once with
// the first rune removed; a positive retry result wins, otherwise the
// original zero stands.
func (e *Estimator) NameCount(name string) (int, error) {
	count, err := e.countForName(name)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		if runes := []rune(name); len(runes) > 1 && !strings.ContainsRune(name, ' ') {
			fallback, err := e.countForName(string(runes[1:]))
			if err != nil {
				return 0, err
			}
			if fallback > 0 {
				return fallback, nil
			}
		}
	}
	return count, nil
}

// countForName runs the pagination-bound search against a name-filtered
// listing. Name searches always expose a last-page control, so the
// incremental strategy is never needed here.
func (e *Estimator) countForName(name string) (int, error) {
	src := e.sources(NameURL(e.cfg.URL, name))
	return Pagination{}.Total(src, 0)
}

// NameURL appends a percent-encoded name filter to a listing URL template.
// Spaces are encoded as %20, the form the provider's own search links use.
func NameURL(urlTemplate, name string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return urlTemplate + "&" + nameParam + "=" + escaped
}
