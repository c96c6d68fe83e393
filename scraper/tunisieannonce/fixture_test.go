package tunisieannonce

import (
	"fmt"
	"io"
	"strings"

	"tunisie-annonce/utils"
)

type fixtureRow struct {
	title, price, propertyType, location, date, link string
}

// listingRow renders a 13-cell results row laid out like DefaultLayout.
func listingRow(r fixtureRow) string {
	cells := make([]string, 13)
	for i := range cells {
		cells[i] = "<td></td>"
	}
	cells[0] = `<td><img src="x.gif"></td>`
	cells[1] = fmt.Sprintf(`<td><a href="/loc">%s</a></td>`, r.location)
	cells[5] = fmt.Sprintf("<td>%s</td>", r.propertyType)
	cells[7] = fmt.Sprintf(`<td><a href="%s">%s</a></td>`, r.link, r.title)
	cells[9] = fmt.Sprintf("<td> %s </td>", r.price)
	cells[11] = fmt.Sprintf("<td>%s</td>", r.date)
	return "<tr>" + strings.Join(cells, "") + "</tr>"
}

func catalogPage(rows ...string) string {
	return `<html><head><meta charset="utf-8"></head><body><table>` +
		`<tr><td>Région</td><td>Nature</td><td>Type</td><td>Texte</td><td>Prix</td><td>Modifiée</td></tr>` +
		strings.Join(rows, "") +
		`<tr><td colspan="13"></td></tr>` +
		`</table></body></html>`
}

func newTestLogger() *utils.Logger { return utils.NewLoggerTo(io.Discard, true) }
