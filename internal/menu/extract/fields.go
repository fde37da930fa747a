package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lunch-radar/internal/domain/entity"
	"lunch-radar/internal/menu/normalize"
)

// Ordered selector-candidate lists per field, tried in sequence with the
// first usable match winning. Kept as data so per-source quirks extend the
// list instead of growing conditionals.
var (
	nameSelectors = []string{
		".lunch-name",
		".name",
		".title",
		"h1, h2, h3, h4, h5, h6",
		"b, strong",
	}

	descriptionSelectors = []string{
		".lunch-description",
		".description",
		".desc",
	}

	priceSelectors = []string{
		".lunch-price",
		".price",
		".cost",
	}
)

// Candidate is one extraction candidate prior to validation. Week and
// source attribution are filled in by the parser, not the engine.
type Candidate struct {
	Name        string
	Description string
	Price       int
	Weekday     entity.Weekday
}

// extractCandidate field-extracts a single candidate element. It returns
// ok=false when no non-empty name or no acceptable price is found.
func extractCandidate(el *goquery.Selection, day entity.Weekday, allowZeroPrice bool) (Candidate, bool) {
	name := firstNonEmptyText(el, nameSelectors)
	if name == "" {
		return Candidate{}, false
	}

	description := firstNonEmptyText(el, descriptionSelectors)
	if description == "" {
		description = strings.TrimSpace(el.Find("p").First().Text())
	}

	price, ok := extractPrice(el, allowZeroPrice)
	if !ok {
		return Candidate{}, false
	}

	return Candidate{
		Name:        name,
		Description: description,
		Price:       price,
		Weekday:     day,
	}, true
}

// firstNonEmptyText tries each selector in order and returns the trimmed
// text of the first non-empty match.
func firstNonEmptyText(el *goquery.Selection, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(el.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractPrice tries the price selector chain, falling back to the full
// element text when no dedicated price container parses.
func extractPrice(el *goquery.Selection, allowZero bool) (int, bool) {
	parse := normalize.ParsePrice
	if allowZero {
		parse = normalize.ParsePriceAllowZero
	}

	for _, selector := range priceSelectors {
		text := strings.TrimSpace(el.Find(selector).First().Text())
		if text == "" {
			continue
		}
		if price, ok := parse(text); ok {
			return price, true
		}
	}

	return parse(el.Text())
}
