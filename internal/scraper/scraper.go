package scraper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/pfrederiksen/startlist-watch/internal/logging"
)

const (
	// PagePlaceholder is the token in a URL template that is replaced with
	// the page number of each request.
	PagePlaceholder = "{page}"

	UserAgent = "Mozilla/5.0 (compatible; startlist-watch/1.0; github.com/pfrederiksen/startlist-watch)"
	Timeout   = 10 * time.Second
)

// Page is the parsed result of one startlist page. It is ephemeral and only
// lives for the duration of one fetch+parse.
type Page struct {
	// Number is the 1-based index of the fetched page.
	Number int
	// Rows is the count of genuine participant rows found on the page.
	Rows int
	// LastPage is the highest page number advertised by the pagination
	// controls, or Number when no pagination control is present.
	LastPage int
}

// Client fetches startlist pages from the timing provider
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// New creates a new Client with the fixed user agent and timeout
func New() *Client {
	http := resty.New()
	http.SetHeader("User-Agent", UserAgent)
	http.SetTimeout(Timeout)

	return &Client{
		http: http,
		log:  logging.NewLogger("scraper"),
	}
}

// FetchPage fetches and parses one startlist page. The URL is built by
// substituting the page number into the template. A timeout, connection
// failure, or non-success HTTP status is returned as an error; the caller
// does not retry.
func (c *Client) FetchPage(urlTemplate string, page int) (*Page, error) {
	url := strings.ReplaceAll(urlTemplate, PagePlaceholder, strconv.Itoa(page))

	c.log.Debug().Int("page", page).Str("url", url).Msg("fetching startlist page")

	resp, err := c.http.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching page %d: %w", page, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching page %d: unexpected status code: %d", page, resp.StatusCode())
	}

	// The provider occasionally serves bytes that are not valid UTF-8;
	// substitute replacement runes rather than failing the run.
	markup := strings.ToValidUTF8(string(resp.Body()), "�")

	result, err := Parse(markup, page)
	if err != nil {
		return nil, err
	}

	c.log.Debug().Int("page", page).Int("rows", result.Rows).Int("last_page", result.LastPage).Msg("parsed startlist page")
	return result, nil
}

// Listing binds a Client to one URL template so callers can walk its pages.
type Listing struct {
	client   *Client
	template string
}

// Listing returns a page source for the given URL template.
func (c *Client) Listing(urlTemplate string) *Listing {
	return &Listing{client: c, template: urlTemplate}
}

// Page fetches and parses the page at the given index.
func (l *Listing) Page(n int) (*Page, error) {
	return l.client.FetchPage(l.template, n)
}
