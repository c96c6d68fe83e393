package tunisieannonce

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Field names a Listing attribute read from a catalog row.
type Field string

const (
	FieldTitle           Field = "title"
	FieldPrice           Field = "price"
	FieldPropertyType    Field = "property_type"
	FieldLocation        Field = "location"
	FieldPublicationDate Field = "publication_date"
	FieldLink            Field = "link"
)

// Fields lists every field a Layout must map, in flat-file column order.
var Fields = []Field{FieldTitle, FieldPrice, FieldPropertyType, FieldLocation, FieldPublicationDate, FieldLink}

// Source selects which part of a cell a field is read from.
type Source string

const (
	SourceText     Source = "text"
	SourceLinkText Source = "link_text"
	SourceLinkHref Source = "link_href"
)

// FieldSpec locates one field inside a row.
type FieldSpec struct {
	Index  int    `yaml:"index"`
	Source Source `yaml:"source"`
}

// Layout describes the catalog table: rows with any other cell count are not
// listings.
type Layout struct {
	Cells  int                 `yaml:"cells"`
	Fields map[Field]FieldSpec `yaml:"fields"`
}

// DefaultLayout is the tunisie-annonce real-estate results table.
func DefaultLayout() Layout {
	return Layout{
		Cells: 13,
		Fields: map[Field]FieldSpec{
			FieldLocation:        {Index: 1, Source: SourceLinkText},
			FieldPropertyType:    {Index: 5, Source: SourceText},
			FieldTitle:           {Index: 7, Source: SourceLinkText},
			FieldLink:            {Index: 7, Source: SourceLinkHref},
			FieldPrice:           {Index: 9, Source: SourceText},
			FieldPublicationDate: {Index: 11, Source: SourceText},
		},
	}
}

// LoadLayout reads a YAML layout file. An empty path yields DefaultLayout.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("layout: read %q: %w", path, err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("layout: parse %q: %w", path, err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks that every field is mapped to an existing cell.
func (l Layout) Validate() error {
	if l.Cells <= 0 {
		return fmt.Errorf("layout: cells must be positive, got %d", l.Cells)
	}
	for _, f := range Fields {
		spec, ok := l.Fields[f]
		if !ok {
			return fmt.Errorf("layout: field %q is not mapped", f)
		}
		if spec.Index < 0 || spec.Index >= l.Cells {
			return fmt.Errorf("layout: field %q index %d outside [0, %d)", f, spec.Index, l.Cells)
		}
		switch spec.Source {
		case SourceText, SourceLinkText, SourceLinkHref:
		default:
			return fmt.Errorf("layout: field %q has unknown source %q", f, spec.Source)
		}
	}
	return nil
}
