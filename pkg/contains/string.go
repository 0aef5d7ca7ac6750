package contains

import (
	"strings"
)

// String returns true if the sequence of items contains value s.
func String(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

// Any returns true if text contains at least one of the terms as a
// substring.
func Any(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// Count returns the number of distinct terms which occur in text.  Repeated
// occurrences of the same term count once.
func Count(text string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(text, term) {
			n++
		}
	}
	return n
}
