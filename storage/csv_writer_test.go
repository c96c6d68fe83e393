package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tunisie-annonce/models"
)

func sampleListings() []models.Listing {
	return []models.Listing{
		{Title: "Villa, piscine", RawPrice: "450 000", PropertyType: "Villa", Location: "Hammamet, Nabeul", PublicationDate: "15/01/2025", Link: "/a/1"},
		{Title: `S+2 "haut standing"`, RawPrice: "1,200,000", PropertyType: "Appartement", Location: "Ennasr, Ariana", PublicationDate: "28/02/2025", Link: "N/A"},
		{Title: "Local", RawPrice: "prix sur demande", PropertyType: "N/A", Location: "Sfax", PublicationDate: "03/02/2025", Link: "/a/3"},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "annonces.csv")
	w := NewCSVWriter(path)

	if err := w.WriteRaw(sampleListings()); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if diff := cmp.Diff(sampleListings(), got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annonces.csv")
	if err := NewCSVWriter(path).WriteRaw(nil); err != nil {
		t.Fatalf("WriteRaw: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "title,price,property_type,location,publication_date,link\n" {
		t.Errorf("header-only file: got %q", got)
	}
}

func TestCSVOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annonces.csv")
	w := NewCSVWriter(path)

	if err := w.WriteRaw(sampleListings()); err != nil {
		t.Fatalf("first WriteRaw: %v", err)
	}
	second := sampleListings()[2:]
	if err := w.WriteRaw(second); err != nil {
		t.Fatalf("second WriteRaw: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("file should hold only the last run (-want +got):\n%s", diff)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestCSVWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewCSVWriter(filepath.Join(blocker, "annonces.csv"))
	if err := w.WriteRaw(sampleListings()); err == nil {
		t.Error("expected an error when the output directory is a file")
	}
}

func TestReadCSVRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.csv")
	if err := os.WriteFile(path, []byte("a,b,c,d,e,f\n1,2,3,4,5,6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCSV(path); err == nil {
		t.Error("expected an error for an unexpected header")
	}

	empty := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCSV(empty); err == nil {
		t.Error("expected an error for an empty file")
	}
}
