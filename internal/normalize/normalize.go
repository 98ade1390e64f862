// Package normalize provides description cleaning and the shared string
// similarity metric used by merchant matching and duplicate detection.
package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MaxNormalizedLength bounds comparison cost and trims trailing reference
// numbers from long statement descriptions.
const MaxNormalizedLength = 30

var (
	// Date-like substrings commonly embedded in UK statement descriptions:
	// 15/01/24, 15/01/2024, 2024 JAN 15, 150124.
	slashDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	monthDatePattern = regexp.MustCompile(`\b\d{4} (?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC) \d{1,2}\b`)
	sixDigitPattern  = regexp.MustCompile(`\b\d{6}\b`)

	// Corporate suffixes that add no signal for brand matching.
	suffixPattern = regexp.MustCompile(`\b(?:LTD|LIMITED|PLC|UK)\b`)

	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Description normalizes a raw transaction description for merchant matching:
// uppercase, everything after the first comma dropped, date-like substrings
// and corporate suffixes stripped, whitespace collapsed, and the result
// truncated to MaxNormalizedLength characters.
func Description(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))

	if idx := strings.Index(s, ","); idx >= 0 {
		s = s[:idx]
	}

	s = slashDatePattern.ReplaceAllString(s, " ")
	s = monthDatePattern.ReplaceAllString(s, " ")
	s = sixDigitPattern.ReplaceAllString(s, " ")
	s = suffixPattern.ReplaceAllString(s, " ")

	// Card terminals pad descriptions with asterisks and hashes.
	s = strings.NewReplacer("*", " ", "#", " ").Replace(s)

	s = strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))

	// Truncate on a rune boundary so currency symbols and accented
	// characters near the cut never leave invalid UTF-8 behind.
	if utf8.RuneCountInString(s) > MaxNormalizedLength {
		s = strings.TrimSpace(string([]rune(s)[:MaxNormalizedLength]))
	}

	return s
}

// MerchantKey returns the grouping key used to correlate a transaction with
// historical activity for the same merchant.
func MerchantKey(raw string) string {
	return Description(raw)
}

// Similarity computes a 0-100 similarity score between two strings based on
// Levenshtein edit distance over the longer string's length. Two empty
// strings are not considered similar.
func Similarity(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}

	dist := levenshtein.ComputeDistance(a, b)
	score := 100 - (100*dist)/maxLen
	if score < 0 {
		return 0
	}
	return score
}
