package tunisieannonce

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"tunisie-annonce/models"
	"tunisie-annonce/services"
	"tunisie-annonce/utils"
)

// Options configures a Scraper.
type Options struct {
	BaseURL   string
	PageParam string
	Layout    Layout
	Window    services.Window
}

// Result is what a scrape gathered before it stopped.
type Result struct {
	Listings     []models.Listing
	PagesVisited int
	LastPage     int
	StoppedEarly bool
}

// Scraper drives a PageFetcher across a page range, one page at a time.
type Scraper struct {
	fetcher PageFetcher
	opts    Options
	logger  *utils.Logger
}

// New creates a ready-to-use Scraper.
func New(fetcher PageFetcher, opts Options, logger *utils.Logger) *Scraper {
	return &Scraper{fetcher: fetcher, opts: opts, logger: logger}
}

// Scrape visits pages start..end in order and returns the accepted listings
// in page then row order. The first page that yields no accepted listing,
// whatever the reason, ends the scrape. A cancelled ctx returns what was
// gathered so far along with ctx.Err().
func (s *Scraper) Scrape(ctx context.Context, start, end int) (*Result, error) {
	s.logger.Info("[scraper] Starting scrape — pages %d..%d, window %s", start, end, s.opts.Window)

	res := &Result{}
	for page := start; page <= end; page++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		pageURL, err := PageURL(s.opts.BaseURL, s.opts.PageParam, page)
		if err != nil {
			return res, err
		}

		s.logger.Info("[scraper] Scraping page %d...", page)
		res.PagesVisited++
		res.LastPage = page

		accepted := s.scrapePage(ctx, pageURL, page)
		if len(accepted) == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			s.logger.Warn("[scraper] No listings found on page %d, stopping", page)
			res.StoppedEarly = page < end
			break
		}

		res.Listings = append(res.Listings, accepted...)
		s.logger.Info("[scraper] Found %d listings on page %d", len(accepted), page)
	}

	s.logger.Info("[scraper] Scrape complete — total listings: %d", len(res.Listings))
	return res, nil
}

func (s *Scraper) scrapePage(ctx context.Context, pageURL string, page int) []models.Listing {
	rows, err := s.fetcher.FetchRows(ctx, pageURL)
	if err != nil {
		s.logger.Warn("[scraper] Page %d failed: %v", page, err)
		return nil
	}

	var accepted []models.Listing
	for _, row := range rows {
		l, ok := s.opts.Layout.Extract(row)
		if !ok {
			continue
		}
		if !s.opts.Window.Accept(l.PublicationDate) {
			continue
		}
		accepted = append(accepted, l)
	}
	s.logger.Debug("[scraper] Page %d — %d rows, %d accepted", page, len(rows), len(accepted))
	return accepted
}

// PageURL sets the page parameter on the base catalog query.
func PageURL(base, param string, page int) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("scraper: parse base url: %w", err)
	}
	q := u.Query()
	q.Set(param, strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
