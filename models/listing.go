package models

import "time"

// NotAvailable is stored in place of a field whose cell was empty or had no link.
const NotAvailable = "N/A"

// Cell is one <td> of a catalog row. The link fields describe the first
// anchor found inside the cell, if any.
type Cell struct {
	Text     string
	LinkText string
	Href     string
	HasLink  bool
}

// RawRow is the ordered list of cells read from one <tr>. It only lives for
// the duration of a single page extraction.
type RawRow []Cell

// Listing holds the scraped field values exactly as displayed on the catalog.
// It is produced by the extractor and, once it passes the date window, is
// what both sinks receive.
type Listing struct {
	Title           string
	RawPrice        string
	PropertyType    string
	Location        string
	PublicationDate string
	Link            string
}

// NormalizedListing is the relational projection of a Listing. Price is nil
// when the raw price is not purely numeric after stripping separators.
type NormalizedListing struct {
	Listing
	Price *int64
}

// RunReport summarises one pipeline run.
type RunReport struct {
	RunID        string
	StartedAt    time.Time
	Duration     time.Duration
	PagesVisited int
	LastPage     int
	StoppedEarly bool
	Accepted     int
	Listings     []Listing
	FilePath     string

	RelationalSkipped bool
	RelationalErr     error
}

// InsightReport holds the computed analytics over a listing set.
type InsightReport struct {
	TotalListings  int
	PricedListings int
	AveragePrice   float64
	MinPrice       int64
	MaxPrice       int64
	MostExpensive  *NormalizedListing
	TopCities      []CityCount
	ByPropertyType map[string]int
}

// CityCount is one entry of the top cities ranking.
type CityCount struct {
	City  string
	Count int
}
