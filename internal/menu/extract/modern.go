package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"lunch-radar/internal/domain/entity"
)

const (
	// maxSiblingDepth bounds the sibling scan after a weekday heading so a
	// missing next-day heading cannot drag in the rest of the page.
	maxSiblingDepth = 10

	headingSelector = "h1, h2, h3, h4, h5, h6"

	// itemMarkers identify elements that look like a single menu item.
	itemMarkers = ".lunch-item, .menu-item, .item, .dish, li"

	// tabPanelSelector matches tab-panel-like containers.
	tabPanelSelector = "[role='tabpanel'], .tab-pane, [data-day], [data-tab]"
)

// modernCandidates implements the modern-structure strategy. For each
// weekday, three location methods contribute candidate elements in any
// combination: weekday headings followed by item-bearing siblings, tab
// panels labelled with the weekday, and elements whose class or id encode
// the weekday. Collected elements are field-extracted through the ordered
// selector chains.
func modernCandidates(container *goquery.Selection, allowZeroPrice bool) []Candidate {
	var candidates []Candidate

	for _, day := range entity.Weekdays() {
		seen := make(map[*html.Node]bool)
		var elements []*goquery.Selection

		add := func(sel *goquery.Selection) {
			sel.Each(func(_ int, el *goquery.Selection) {
				node := el.Get(0)
				if seen[node] {
					return
				}
				seen[node] = true
				elements = append(elements, el)
			})
		}

		collectAfterHeading(container, day, add)
		collectTabPanels(container, day, add)
		collectByClassOrID(container, day, add)

		for _, el := range elements {
			if candidate, ok := extractCandidate(el, day, allowZeroPrice); ok {
				candidates = append(candidates, candidate)
			}
		}
	}

	return candidates
}

// collectAfterHeading finds headings naming the weekday and scans their
// following siblings for item-like elements, up to maxSiblingDepth and
// stopping at the next heading.
func collectAfterHeading(container *goquery.Selection, day entity.Weekday, add func(*goquery.Selection)) {
	container.Find(headingSelector).Each(func(_ int, heading *goquery.Selection) {
		if !mentionsDay(heading.Text(), day) {
			return
		}

		sibling := heading.Next()
		for depth := 0; depth < maxSiblingDepth && sibling.Length() > 0; depth++ {
			if sibling.Is(headingSelector) {
				break
			}
			if sibling.Is(itemMarkers) {
				add(sibling)
			} else {
				add(sibling.Find(itemMarkers))
			}
			sibling = sibling.Next()
		}
	})
}

// collectTabPanels finds tab-panel-like elements whose attributes, ARIA
// labelling, or own text name the weekday.
func collectTabPanels(container *goquery.Selection, day entity.Weekday, add func(*goquery.Selection)) {
	container.Find(tabPanelSelector).Each(func(_ int, panel *goquery.Selection) {
		if !panelMatchesDay(panel, day) {
			return
		}

		items := panel.Find(itemMarkers)
		if items.Length() > 0 {
			add(items)
			return
		}
		add(panel)
	})
}

// collectByClassOrID finds elements whose class or id directly encode the
// weekday name.
func collectByClassOrID(container *goquery.Selection, day entity.Weekday, add func(*goquery.Selection)) {
	selector := fmt.Sprintf("[class*='%s'], [id*='%s']", day, day)
	container.Find(selector).Each(func(_ int, el *goquery.Selection) {
		items := el.Find(itemMarkers)
		if items.Length() > 0 {
			add(items)
			return
		}
		add(el)
	})
}

func panelMatchesDay(panel *goquery.Selection, day entity.Weekday) bool {
	for _, attr := range []string{"data-day", "data-tab", "aria-label", "id", "class"} {
		if value, ok := panel.Attr(attr); ok && mentionsDay(value, day) {
			return true
		}
	}
	return mentionsDay(panel.Text(), day)
}

func mentionsDay(text string, day entity.Weekday) bool {
	return strings.Contains(strings.ToLower(text), string(day))
}
