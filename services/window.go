package services

import (
	"strconv"
	"strings"
	"time"
)

// PublicationDateLayout is the catalog's day/month/year date format. Single
// digit days and months are accepted.
const PublicationDateLayout = "2/1/2006"

// Window accepts publication dates whose month is one of Months and whose
// year equals Year.
type Window struct {
	Months []time.Month
	Year   int
}

// NewWindow builds a Window.
func NewWindow(year int, months ...time.Month) Window {
	return Window{Months: months, Year: year}
}

// Accept reports whether raw parses as a publication date inside the window.
// Unparsable strings are rejected the same way as out-of-window dates.
func (w Window) Accept(raw string) bool {
	d, err := time.Parse(PublicationDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if d.Year() != w.Year {
		return false
	}
	for _, m := range w.Months {
		if d.Month() == m {
			return true
		}
	}
	return false
}

func (w Window) String() string {
	names := make([]string, len(w.Months))
	for i, m := range w.Months {
		names[i] = m.String()
	}
	return strings.Join(names, "/") + " " + strconv.Itoa(w.Year)
}
