// Package estimator computes the total participant count of a paginated
// startlist without knowing the page size or last-page index in advance.
//
// Two interchangeable search strategies are provided, reflecting the two
// kinds of pagination the timing provider has exposed: a direct
// pagination-bound search that trusts the advertised last-page control and
// needs exactly two requests, and an incremental search that infers a
// starting page from the previously-recorded total and walks to the true
// last page. The estimator also counts the participants matching a name
// filter, with a fallback for names the provider's search transliterates.
package estimator
