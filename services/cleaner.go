package services

import (
	"strconv"
	"strings"
	"unicode"

	"tunisie-annonce/models"
)

// UnknownCity is reported for listings whose location carries no city token.
const UnknownCity = "Inconnu"

// NormalizePrice strips whitespace and grouping commas from a displayed price
// and parses the rest as a non-negative integer. It returns nil when what is
// left is not purely numeric ("prix sur demande", "N/A", "").
func NormalizePrice(raw string) *int64 {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ',' {
			return -1
		}
		return r
	}, raw)
	if cleaned == "" {
		return nil
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// Normalize projects raw listings into their relational form, keeping order.
func Normalize(listings []models.Listing) []models.NormalizedListing {
	out := make([]models.NormalizedListing, len(listings))
	for i, l := range listings {
		out[i] = models.NormalizedListing{Listing: l, Price: NormalizePrice(l.RawPrice)}
	}
	return out
}

// City returns the trailing comma-separated token of a location.
func City(location string) string {
	location = strings.TrimSpace(location)
	if location == "" || location == models.NotAvailable {
		return UnknownCity
	}
	parts := strings.Split(location, ",")
	city := strings.TrimSpace(parts[len(parts)-1])
	if city == "" {
		return UnknownCity
	}
	return city
}

// InferPropertyType guesses a property category from the listing title.
func InferPropertyType(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "appart"), strings.Contains(t, "app."),
		strings.Contains(t, "s1"), strings.Contains(t, "s2"), strings.Contains(t, "s3"):
		return "Appartement"
	case strings.Contains(t, "villa"):
		return "Villa"
	case strings.Contains(t, "terrain"):
		return "Terrain"
	case strings.Contains(t, "maison"):
		return "Maison"
	default:
		return "Autre"
	}
}

// PropertyType returns the scraped type, or the one inferred from the title
// when the catalog cell was empty.
func PropertyType(l models.Listing) string {
	pt := strings.TrimSpace(l.PropertyType)
	if pt == "" || pt == models.NotAvailable {
		return InferPropertyType(l.Title)
	}
	return pt
}
