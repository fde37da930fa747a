package normalize

import (
	"strconv"
	"time"
)

// dateTokenLength is the length of a compact YYYYMMDD date token.
// Some sites publish "Vecka 20250714" instead of "Vecka 29" and expect the
// reader to work the week out from the Monday date.
const dateTokenLength = 8

// ResolveWeek turns a week token into a week number in [1, 53].
// The token is either an explicit one- or two-digit week number or an
// eight-digit YYYYMMDD date, which is converted via ISO 8601 week numbering
// (Thursday-anchored). Tokens that do not parse, or that resolve outside
// [1, 53], fall back to the current ISO week at now.
func ResolveWeek(token string, now time.Time) int {
	if week, ok := parseWeekToken(token); ok {
		return week
	}
	return CurrentWeek(now)
}

// CurrentWeek returns the ISO week number at t.
func CurrentWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

func parseWeekToken(token string) (int, bool) {
	if token == "" {
		return 0, false
	}

	if len(token) == dateTokenLength {
		date, err := time.Parse("20060102", token)
		if err != nil {
			return 0, false
		}
		_, week := date.ISOWeek()
		return week, true
	}

	if len(token) > 2 {
		return 0, false
	}
	week, err := strconv.Atoi(token)
	if err != nil || week < 1 || week > 53 {
		return 0, false
	}
	return week, true
}
