package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tunisie-annonce/models"
)

// Header is the flat-file header row.
var Header = []string{"title", "price", "property_type", "location", "publication_date", "link"}

// CSVWriter writes raw listings to a CSV file, replacing it in full.
type CSVWriter struct {
	path string
}

// NewCSVWriter returns a writer for path. Nothing is touched until WriteRaw.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Path returns the destination file.
func (c *CSVWriter) Path() string { return c.path }

// WriteRaw writes the header and one row per listing to a temporary file next
// to the destination, then renames it over the destination. Readers never see
// a partially written file.
func (c *CSVWriter) WriteRaw(listings []models.Listing) (err error) {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("csv: create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := writeListings(tmp, listings); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("csv: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csv: close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("csv: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("csv: replace %q: %w", c.path, err)
	}
	return nil
}

func writeListings(out io.Writer, listings []models.Listing) error {
	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, l := range listings {
		row := []string{
			l.Title,
			l.RawPrice,
			l.PropertyType,
			l.Location,
			l.PublicationDate,
			l.Link,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}

// ReadCSV loads listings written by WriteRaw, in file order.
func ReadCSV(path string) ([]models.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(Header)

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: %q is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	for i, name := range Header {
		if header[i] != name {
			return nil, fmt.Errorf("csv: unexpected column %d %q, want %q", i, header[i], name)
		}
	}

	var listings []models.Listing
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row: %w", err)
		}
		listings = append(listings, models.Listing{
			Title:           rec[0],
			RawPrice:        rec[1],
			PropertyType:    rec[2],
			Location:        rec[3],
			PublicationDate: rec[4],
			Link:            rec[5],
		})
	}
	return listings, nil
}
