package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"tunisie-annonce/models"
	"tunisie-annonce/utils"
)

const topCities = 10

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(listings []models.Listing) *models.InsightReport {
	report := &models.InsightReport{
		ByPropertyType: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	byCity := make(map[string]int)
	var total int64

	for _, n := range Normalize(listings) {
		byCity[City(n.Location)]++
		report.ByPropertyType[PropertyType(n.Listing)]++

		if n.Price == nil {
			continue
		}
		p := *n.Price
		if report.PricedListings == 0 || p < report.MinPrice {
			report.MinPrice = p
		}
		if report.PricedListings == 0 || p > report.MaxPrice {
			report.MaxPrice = p
			report.MostExpensive = &n
		}
		report.PricedListings++
		total += p
	}

	if report.PricedListings > 0 {
		report.AveragePrice = round2(float64(total) / float64(report.PricedListings))
	}

	for city, cnt := range byCity {
		report.TopCities = append(report.TopCities, models.CityCount{City: city, Count: cnt})
	}
	sort.Slice(report.TopCities, func(i, j int) bool {
		a, b := report.TopCities[i], report.TopCities[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.City < b.City
	})
	if len(report.TopCities) > topCities {
		report.TopCities = report.TopCities[:topCities]
	}

	s.logger.Debug("[insights] %d listings, %d with a numeric price", report.TotalListings, report.PricedListings)
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  TUNISIE ANNONCE INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Listings in window     : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Fprintf(w, "  With a numeric price   : \033[1m%d\033[0m\n", r.PricedListings)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price Statistics\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.PricedListings > 0 {
		fmt.Fprintf(w, "  Average price : \033[1;32m%s DT\033[0m\n", formatPrice(int64(r.AveragePrice+0.5)))
		fmt.Fprintf(w, "  Minimum price : \033[1;32m%s DT\033[0m\n", formatPrice(r.MinPrice))
		fmt.Fprintf(w, "  Maximum price : \033[1;32m%s DT\033[0m\n", formatPrice(r.MaxPrice))
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	if r.MostExpensive != nil {
		fmt.Fprintf(w, "\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s\n", truncate(r.MostExpensive.Title, 50))
		fmt.Fprintf(w, "  Location : %s\n", r.MostExpensive.Location)
		fmt.Fprintf(w, "  Price    : \033[1;31m%s DT\033[0m\n", formatPrice(*r.MostExpensive.Price))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Top %d Cities\033[0m\n", topCities)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopCities) == 0 {
		fmt.Fprintf(w, "  No location data\n")
	} else {
		for _, c := range r.TopCities {
			bar := strings.Repeat("█", min(c.Count, 30))
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(c.City, 28), bar, c.Count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Property Types\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	types := make([]string, 0, len(r.ByPropertyType))
	for t := range r.ByPropertyType {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(w, "  %-30s %d\n", truncate(t, 28), r.ByPropertyType[t])
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// formatPrice groups thousands with spaces, the way the catalog displays prices.
func formatPrice(p int64) string {
	return strings.ReplaceAll(humanize.Comma(p), ",", " ")
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
