package services

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"tunisie-annonce/models"
	"tunisie-annonce/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, true) }

func sampleListings() []models.Listing {
	return []models.Listing{
		{Title: "Villa A", RawPrice: "450 000", PropertyType: "Villa", Location: "Hammamet Nord, Nabeul"},
		{Title: "Studio B", RawPrice: "90 000", PropertyType: "Appartement", Location: "Lac 2, Tunis"},
		{Title: "Appart C", RawPrice: "210,000", PropertyType: "N/A", Location: "Ennasr, Ariana"},
		{Title: "Terrain D", RawPrice: "prix sur demande", PropertyType: "Terrain", Location: "Bizerte"},
		{Title: "Duplex E", RawPrice: "300 000", PropertyType: "Duplex", Location: "Carthage, Tunis"},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleListings())
	if r.TotalListings != 5 {
		t.Errorf("TotalListings: got %d, want 5", r.TotalListings)
	}
	if r.PricedListings != 4 {
		t.Errorf("PricedListings: got %d, want 4", r.PricedListings)
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleListings())
	if r.AveragePrice != 262500 {
		t.Errorf("AveragePrice: got %.2f, want 262500", r.AveragePrice)
	}
	if r.MinPrice != 90000 {
		t.Errorf("MinPrice: got %d, want 90000", r.MinPrice)
	}
	if r.MaxPrice != 450000 {
		t.Errorf("MaxPrice: got %d, want 450000", r.MaxPrice)
	}
	if r.MostExpensive == nil || r.MostExpensive.Title != "Villa A" {
		t.Errorf("MostExpensive: got %+v, want Villa A", r.MostExpensive)
	}
}

func TestInsightCityRanking(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleListings())
	if len(r.TopCities) != 4 {
		t.Fatalf("TopCities len: got %d, want 4", len(r.TopCities))
	}
	if r.TopCities[0] != (models.CityCount{City: "Tunis", Count: 2}) {
		t.Errorf("TopCities[0]: got %+v, want Tunis x2", r.TopCities[0])
	}
	if r.TopCities[1].City != "Ariana" {
		t.Errorf("ties should sort by name, got %q first", r.TopCities[1].City)
	}
}

func TestInsightPropertyTypes(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleListings())
	if r.ByPropertyType["Appartement"] != 2 {
		t.Errorf("Appartement count: got %d, want 2", r.ByPropertyType["Appartement"])
	}
	if r.ByPropertyType["Duplex"] != 1 {
		t.Errorf("Duplex count: got %d, want 1", r.ByPropertyType["Duplex"])
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(nil)
	if r.TotalListings != 0 || r.MostExpensive != nil {
		t.Errorf("expected an empty report, got %+v", r)
	}
}

func TestInsightPrint(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	var buf bytes.Buffer
	svc.Print(&buf, svc.Generate(sampleListings()))

	out := buf.String()
	for _, want := range []string{"450 000 DT", "90 000 DT", "Villa A", "Tunis"} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q", want)
		}
	}
}
