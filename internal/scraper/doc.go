// Package scraper provides HTTP fetching and HTML parsing for the race
// startlist on the timing provider's site.
//
// The scraper package fetches individual pages of the paginated startlist and
// extracts the number of participant rows on each page, together with the
// highest page number advertised by the pagination controls. It handles both
// markup variants the provider has served over time: a Bootstrap list-group
// layout and a plain table layout.
package scraper
