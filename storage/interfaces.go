package storage

import (
	"context"

	"tunisie-annonce/models"
)

// ListingWriter is the interface for the relational destination. Each call
// replaces the stored set with listings.
type ListingWriter interface {
	Write(ctx context.Context, listings []models.Listing) error
}

// RawListingWriter is the interface for persisting scraped values unchanged.
type RawListingWriter interface {
	WriteRaw(listings []models.Listing) error
}
