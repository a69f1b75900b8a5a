// Package validation turns possibly-malformed model output into objects that
// are guaranteed to satisfy the downstream schema. Validate* functions decide
// validity; Clean* functions repair and never fail.
package validation

import (
	"strconv"
	"time"
)

// zeroDate is the canonical "unknown" value for ddmmyyyy date fields.
const zeroDate = "00000000"

// validDate reports whether s is exactly 8 digits in day-month-year
// concatenated form and round-trips through date construction. The all-zero
// sentinel counts as valid.
func validDate(s string) bool {
	if s == zeroDate {
		return true
	}
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	day, _ := strconv.Atoi(s[0:2])
	month, _ := strconv.Atoi(s[2:4])
	year, _ := strconv.Atoi(s[4:8])

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month && t.Year() == year
}

// cleanDate returns the value unchanged when valid, the zero sentinel
// otherwise.
func cleanDate(v any) string {
	s, ok := v.(string)
	if !ok || !validDate(s) {
		return zeroDate
	}
	return s
}
