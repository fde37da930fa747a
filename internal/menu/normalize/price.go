// Package normalize turns the raw text fragments pulled out of menu markup
// into typed field values. Every function is pure and tolerant: input that
// cannot be normalized is reported as invalid rather than coerced to a zero
// value, so the caller can discard the record instead of storing garbage.
package normalize

import (
	"regexp"
	"strconv"
)

// priceDigits matches the first integer sequence in a price fragment.
// Menu sites write prices as "125:-", "125 kr", "125kr" or "125 kronor";
// the currency marker is noise and only the digit run matters.
var priceDigits = regexp.MustCompile(`\d+`)

// ParsePrice extracts a positive price in whole kronor from text.
// It returns ok=false when no digit sequence is found or when the extracted
// value is not positive. A leading minus sign is not part of the match, so
// "-50 kr" normalizes to 50.
func ParsePrice(text string) (int, bool) {
	return parsePrice(text, false)
}

// ParsePriceAllowZero behaves like ParsePrice but accepts a zero price.
// Used for sources that publish included or subsidised lunches.
func ParsePriceAllowZero(text string) (int, bool) {
	return parsePrice(text, true)
}

func parsePrice(text string, allowZero bool) (int, bool) {
	match := priceDigits.FindString(text)
	if match == "" {
		return 0, false
	}

	price, err := strconv.Atoi(match)
	if err != nil {
		// Digit runs longer than an int are not prices.
		return 0, false
	}

	if price < 0 || (price == 0 && !allowZero) {
		return 0, false
	}
	return price, true
}
