package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	listContainerSelector = "div.pid-startlist_list"
	listRowSelector       = "li.list-group-item.row"
	headerRowClass        = "list-group-header"
	paginationSelector    = "ul.pagination a"
	noResultsMarker       = "no results"
)

// Parse extracts a Page from raw startlist markup.
//
// Two extraction strategies are tried in order, first non-empty result wins:
// the list-group layout (participant rows inside the startlist container,
// minus header rows and "no results" placeholders) and a plain-table
// fallback (rows of the first table that contain at least one data cell).
// Zero rows from both strategies is the authoritative "no more rows" signal,
// not a parse failure.
func Parse(markup string, page int) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML for page %d: %w", page, err)
	}

	result := &Page{
		Number:   page,
		LastPage: lastPageFromPagination(doc, page),
	}

	result.Rows = countListGroupRows(doc)
	if result.Rows > 0 {
		return result, nil
	}

	result.Rows = countTableRows(doc)
	return result, nil
}

// countListGroupRows counts participant rows in the list-group layout.
func countListGroupRows(doc *goquery.Document) int {
	count := 0
	doc.Find(listContainerSelector).First().Find(listRowSelector).Each(func(i int, row *goquery.Selection) {
		if row.HasClass(headerRowClass) {
			return
		}
		text := strings.ToLower(strings.TrimSpace(row.Text()))
		if strings.HasPrefix(text, noResultsMarker) {
			return
		}
		count++
	})
	return count
}

// countTableRows counts rows of the first table that carry at least one data
// cell, which skips header-only rows.
func countTableRows(doc *goquery.Document) int {
	count := 0
	doc.Find("table").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if row.Find("td").Length() > 0 {
			count++
		}
	})
	return count
}

// lastPageFromPagination scans pagination-control links for purely numeric
// labels and returns the maximum, or the current page if none is found.
func lastPageFromPagination(doc *goquery.Document, page int) int {
	last := page
	doc.Find(paginationSelector).Each(func(i int, link *goquery.Selection) {
		label := strings.TrimSpace(link.Text())
		if n, err := strconv.Atoi(label); err == nil && n > last {
			last = n
		}
	})
	return last
}
