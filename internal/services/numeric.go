package services

import (
	"strconv"
	"strings"
)

// Unbounded is the sentinel passed for min/max when no window applies.
const Unbounded = -1

// ExtractNumber pulls a bounded numeric value out of free-form model output.
// The whole string is tried first; failing that, whitespace-separated tokens
// (newlines normalized to spaces) are scanned left to right and the first
// token that is numeric and inside the window wins. A token is numeric when,
// after stripping at most one decimal point, only digits remain. When
// bounded is false the window is ignored.
//
// The second return value reports success; on failure callers fall back to
// the -1 soft sentinel and log, never error.
func ExtractNumber(text string, min, max float64, bounded bool) (float64, bool) {
	trimmed := strings.TrimSpace(text)

	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if !bounded || (v >= min && v <= max) {
			return v, true
		}
	}

	normalized := strings.ReplaceAll(trimmed, "\n", " ")
	for _, token := range strings.Fields(normalized) {
		if !numericToken(token) {
			continue
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		if bounded && (v < min || v > max) {
			continue
		}
		return v, true
	}

	return 0, false
}

// numericToken reports whether a token is all digits with at most one
// decimal point. Signs are not accepted here; a bare negative number only
// passes via the whole-string parse.
func numericToken(token string) bool {
	if token == "" {
		return false
	}

	seenDot := false
	for _, r := range token {
		if r == '.' {
			if seenDot {
				return false
			}
			seenDot = true
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}

	return token != "." && token != ""
}
