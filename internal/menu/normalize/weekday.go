package normalize

import (
	"strings"

	"lunch-radar/internal/domain/entity"
)

// weekdayAliases maps the spellings seen in the wild onto the canonical
// five-day set: Swedish and English full names plus their common
// abbreviations. Keys are lowercase.
var weekdayAliases = map[string]entity.Weekday{
	"måndag":    entity.Monday,
	"mån":       entity.Monday,
	"monday":    entity.Monday,
	"mon":       entity.Monday,
	"tisdag":    entity.Tuesday,
	"tis":       entity.Tuesday,
	"tuesday":   entity.Tuesday,
	"tue":       entity.Tuesday,
	"onsdag":    entity.Wednesday,
	"ons":       entity.Wednesday,
	"wednesday": entity.Wednesday,
	"wed":       entity.Wednesday,
	"torsdag":   entity.Thursday,
	"tor":       entity.Thursday,
	"tors":      entity.Thursday,
	"thursday":  entity.Thursday,
	"thu":       entity.Thursday,
	"fredag":    entity.Friday,
	"fre":       entity.Friday,
	"friday":    entity.Friday,
	"fri":       entity.Friday,
}

// Weekday normalizes text into one of the five serving days.
// Matching is case-insensitive and ignores surrounding whitespace and
// trailing punctuation ("Måndag:" headings). Anything outside the known
// alias set is invalid.
func Weekday(text string) (entity.Weekday, bool) {
	key := strings.ToLower(strings.TrimSpace(text))
	key = strings.TrimRight(key, ":.")

	day, ok := weekdayAliases[key]
	return day, ok
}
