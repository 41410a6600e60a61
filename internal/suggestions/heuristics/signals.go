package heuristics

import (
	"strings"
	"time"
)

// combinedText joins title and description, lower-cased, for keyword checks.
func combinedText(title, description string) string {
	return strings.ToLower(strings.TrimSpace(title + " " + description))
}

// wordCount counts whitespace-separated words.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// containsAny reports whether text contains any of the keywords as a
// substring. Keywords are expected lower-case; text must already be
// lower-cased by the caller.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// daysUntil returns the signed number of days from now until t.
// Negative values mean t is in the past.
func daysUntil(t, now time.Time) float64 {
	return t.Sub(now).Hours() / 24
}
