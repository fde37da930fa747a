package normalize

import (
	"regexp"
	"strings"
)

// closureKeywords are the notices Swedish lunch sites put up instead of a
// menu when the kitchen is closed. Matching is substring-based against the
// lowercased container text.
var closureKeywords = []string{
	"semesterstängt",
	"semester",
	"sommarstängt",
	"stängt",
	"stängd",
	"uppehåll",
	"underhåll",
	"closed",
	"vacation",
	"holiday",
	"maintenance",
}

// weekRangePattern matches week-range closure notices like "V.29-32" or
// "v 29 - 32", which sites use to announce multi-week breaks.
var weekRangePattern = regexp.MustCompile(`(?i)v\.?\s*\d{1,2}\s*[-–]\s*\d{1,2}`)

// Closure is the result of closure detection over a menu container.
type Closure struct {
	Closed     bool
	Indicators []string
}

// DetectClosure scans container text for closure notices.
// Any keyword or week-range match classifies the document as intentionally
// empty; the matched indicators are kept for diagnostics. No match leaves
// the document unclassified: callers treat zero extracted records without
// closure indicators as an extraction failure, not a closure.
func DetectClosure(text string) Closure {
	lower := strings.ToLower(text)

	var indicators []string
	for _, keyword := range closureKeywords {
		if strings.Contains(lower, keyword) {
			indicators = append(indicators, keyword)
		}
	}
	if match := weekRangePattern.FindString(text); match != "" {
		indicators = append(indicators, match)
	}

	return Closure{
		Closed:     len(indicators) > 0,
		Indicators: indicators,
	}
}
