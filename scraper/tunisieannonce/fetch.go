package tunisieannonce

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"tunisie-annonce/models"
)

// maxBodyBytes caps how much of a catalog page is read.
const maxBodyBytes = 10 * 1024 * 1024

// PageFetcher retrieves one catalog page and returns its table rows. Any
// returned error means the page yielded no rows.
type PageFetcher interface {
	FetchRows(ctx context.Context, pageURL string) ([]models.RawRow, error)
}

// HTTPFetcher issues a single GET per page.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher creates a fetcher whose requests time out after timeout.
// A zero timeout disables the limit.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// FetchRows implements PageFetcher. Non-2xx statuses are errors.
func (f *HTTPFetcher) FetchRows(ctx context.Context, pageURL string) ([]models.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "fr-FR,fr;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: HTTP %d for %s", resp.StatusCode, pageURL)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("fetch: decode body: %w", err)
	}
	return ParseRows(body)
}

// ParseRows reads every <tr> of an HTML document, in document order, into a
// RawRow of its <td> cells.
func ParseRows(r io.Reader) ([]models.RawRow, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse html: %w", err)
	}
	return rowsFromDocument(doc), nil
}

func rowsFromDocument(doc *goquery.Document) []models.RawRow {
	var rows []models.RawRow
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row models.RawRow
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, cellFrom(td))
		})
		rows = append(rows, row)
	})
	return rows
}

func cellFrom(td *goquery.Selection) models.Cell {
	c := models.Cell{Text: td.Text()}
	if a := td.Find("a").First(); a.Length() > 0 {
		c.HasLink = true
		c.LinkText = a.Text()
		c.Href, _ = a.Attr("href")
	}
	return c
}
