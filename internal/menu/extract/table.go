package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/menu/normalize"
)

// tableCandidates implements the table strategy: one table per weekday in
// document order, each data row carrying name, description and price in its
// first three cells. Malformed rows are skipped, never errors.
func tableCandidates(container *goquery.Selection, allowZeroPrice bool) []Candidate {
	parse := normalize.ParsePrice
	if allowZeroPrice {
		parse = normalize.ParsePriceAllowZero
	}

	days := entity.Weekdays()
	tables := container.Find("table")

	count := tables.Length()
	if count > len(days) {
		count = len(days)
	}

	var candidates []Candidate
	for i := 0; i < count; i++ {
		day := days[i]
		tables.Eq(i).Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 3 {
				// Header rows and spacer rows land here.
				return
			}

			name := strings.TrimSpace(cells.Eq(0).Text())
			if name == "" {
				return
			}

			price, ok := parse(cells.Eq(2).Text())
			if !ok {
				return
			}

			candidates = append(candidates, Candidate{
				Name:        name,
				Description: strings.TrimSpace(cells.Eq(1).Text()),
				Price:       price,
				Weekday:     day,
			})
		})
	}

	return candidates
}
