// Package pipeline runs one full scrape and persists its result to the flat
// file and the relational store.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tunisie-annonce/models"
	"tunisie-annonce/scraper/tunisieannonce"
	"tunisie-annonce/storage"
	"tunisie-annonce/utils"
)

// Scraper is the part of the scraper the pipeline drives.
type Scraper interface {
	Scrape(ctx context.Context, start, end int) (*tunisieannonce.Result, error)
}

// Pipeline wires a scrape to its two sinks. DB may be nil to skip the
// relational destination.
type Pipeline struct {
	Scraper Scraper
	File    storage.RawListingWriter
	DB      storage.ListingWriter
	Logger  *utils.Logger

	// FilePath is only reported back in the RunReport.
	FilePath string
}

// Run scrapes pages start..end and writes the accepted listings to both
// sinks. A relational failure is recorded in the report and does not stop
// the flat-file write; a flat-file failure is returned as the run's error.
func (p *Pipeline) Run(ctx context.Context, start, end int) (*models.RunReport, error) {
	report := &models.RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		FilePath:  p.FilePath,
	}
	defer func() { report.Duration = time.Since(report.StartedAt) }()

	p.Logger.Info("[pipeline] Run %s starting", report.RunID)

	res, err := p.Scraper.Scrape(ctx, start, end)
	if res == nil {
		res = &tunisieannonce.Result{}
	}
	report.Accepted = len(res.Listings)
	report.Listings = res.Listings
	report.PagesVisited = res.PagesVisited
	report.LastPage = res.LastPage
	report.StoppedEarly = res.StoppedEarly
	if err != nil {
		return report, fmt.Errorf("pipeline: scrape: %w", err)
	}
	listings := res.Listings

	if len(listings) == 0 {
		p.Logger.Warn("[pipeline] No listings in window; sinks will be emptied")
	}

	if p.DB == nil {
		report.RelationalSkipped = true
		p.Logger.Info("[pipeline] Relational sink disabled, skipping")
	} else if err := p.DB.Write(ctx, listings); err != nil {
		report.RelationalErr = err
		p.Logger.Error("[pipeline] Relational write failed: %v", err)
	} else {
		p.Logger.Info("[pipeline] %d listings saved to the annonces table", len(listings))
	}

	if err := p.File.WriteRaw(listings); err != nil {
		p.Logger.Error("[pipeline] CSV write failed: %v", err)
		return report, fmt.Errorf("pipeline: flat file: %w", err)
	}
	p.Logger.Info("[pipeline] %d listings saved to %s", len(listings), p.FilePath)

	return report, nil
}
