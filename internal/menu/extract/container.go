package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultContainerSelectors is the ordered candidate list the locator tries
// when a source does not configure its own, most specific first with a
// universal fallback last.
var DefaultContainerSelectors = []string{
	"#lunch-menu",
	".lunch-menu",
	"#lunchmeny",
	".lunchmeny",
	".menu-container",
	"#menu",
	".menu",
	"main",
	"body",
}

// minContainerTextLength filters out decorative matches: a subtree holding a
// real menu carries at least this much text.
const minContainerTextLength = 40

// containerKeywords are the domain markers a menu container is expected to
// mention somewhere in its text.
var containerKeywords = []string{
	"lunch",
	"meny",
	"menu",
	"vecka",
	"week",
	"dagens",
}

// LocateContainer finds the subtree most likely to contain menu data.
// For each candidate selector in order it takes the first match and accepts
// it only if it has child elements, non-trivial text, and at least one
// domain keyword. Returns nil when no candidate is accepted. Pure function
// of (root, selectors).
func LocateContainer(root *goquery.Selection, selectors []string) *goquery.Selection {
	if len(selectors) == 0 {
		selectors = DefaultContainerSelectors
	}

	for _, selector := range selectors {
		match := root.Find(selector).First()
		if match.Length() == 0 {
			continue
		}
		if acceptContainer(match) {
			return match
		}
	}
	return nil
}

func acceptContainer(sel *goquery.Selection) bool {
	if sel.Children().Length() == 0 {
		return false
	}

	text := strings.ToLower(strings.TrimSpace(sel.Text()))
	if len(text) < minContainerTextLength {
		return false
	}

	for _, keyword := range containerKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
