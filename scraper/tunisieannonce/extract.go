package tunisieannonce

import (
	"strings"

	"tunisie-annonce/models"
)

// Extract maps a row onto a Listing using the layout. It returns false for
// rows that do not have exactly layout.Cells cells (headers, separators,
// partial rows).
func (l Layout) Extract(row models.RawRow) (models.Listing, bool) {
	if len(row) != l.Cells {
		return models.Listing{}, false
	}
	return models.Listing{
		Title:           l.read(row, FieldTitle),
		RawPrice:        l.read(row, FieldPrice),
		PropertyType:    l.read(row, FieldPropertyType),
		Location:        l.read(row, FieldLocation),
		PublicationDate: l.read(row, FieldPublicationDate),
		Link:            l.read(row, FieldLink),
	}, true
}

func (l Layout) read(row models.RawRow, f Field) string {
	spec, ok := l.Fields[f]
	if !ok || spec.Index < 0 || spec.Index >= len(row) {
		return models.NotAvailable
	}
	cell := row[spec.Index]

	switch spec.Source {
	case SourceLinkText:
		if !cell.HasLink {
			return models.NotAvailable
		}
		return strings.TrimSpace(cell.LinkText)
	case SourceLinkHref:
		if !cell.HasLink || cell.Href == "" {
			return models.NotAvailable
		}
		return strings.TrimSpace(cell.Href)
	default:
		if cell.Text == "" {
			return models.NotAvailable
		}
		return strings.TrimSpace(cell.Text)
	}
}
