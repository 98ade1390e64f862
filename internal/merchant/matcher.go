// Package merchant implements fuzzy matching of transaction descriptions
// against the known merchant table.
package merchant

import (
	"strings"

	"github.com/marchwood/taxledger/internal/model"
	"github.com/marchwood/taxledger/internal/normalize"
)

// DefaultThreshold is the minimum similarity score a candidate must reach
// before it is considered a match.
const DefaultThreshold = 60

const (
	// minMatchLength guards against false positives on truncated or garbled
	// imports: normalized descriptions shorter than this never match.
	minMatchLength = 4

	// Partial-but-exact brand-name presence is more reliable than fuzzy
	// character-level similarity for short merchant names, so substring
	// containment scores near the maximum regardless of edit distance.
	exactScore     = 100
	substringScore = 95
)

// Match is the result of looking up a description in the merchant table.
type Match struct {
	Merchant    *model.MerchantRecord
	Score       int
	IsSubstring bool
}

// Matcher finds the best-matching merchant record for a raw transaction
// description. The merchant slice is treated as a read-only snapshot for the
// lifetime of the matcher.
type Matcher struct {
	merchants []model.MerchantRecord
	threshold int
}

// NewMatcher creates a matcher over the given merchant snapshot. A threshold
// of zero or less selects DefaultThreshold.
func NewMatcher(merchants []model.MerchantRecord, threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{merchants: merchants, threshold: threshold}
}

// Match normalizes the raw description and returns the highest-scoring
// merchant at or above the threshold, or nil if none qualifies. Ties are
// broken by higher confidence boost, then table order.
func (m *Matcher) Match(description string) *Match {
	normalized := normalize.Description(description)
	if len(normalized) < minMatchLength {
		return nil
	}

	var best *Match
	for i := range m.merchants {
		record := &m.merchants[i]
		score, isSubstring := scoreMerchant(normalized, record)
		if score < m.threshold {
			continue
		}

		if best == nil ||
			score > best.Score ||
			(score == best.Score && record.ConfidenceBoost > best.Merchant.ConfidenceBoost) {
			best = &Match{Merchant: record, Score: score, IsSubstring: isSubstring}
		}
	}

	return best
}

// scoreMerchant returns the best score across the canonical name and all
// aliases of a single merchant record.
func scoreMerchant(normalized string, record *model.MerchantRecord) (int, bool) {
	bestScore, bestSubstring := scoreName(normalized, record.CanonicalName)

	for _, alias := range record.Aliases {
		score, isSubstring := scoreName(normalized, normalize.Description(alias))
		if score > bestScore {
			bestScore, bestSubstring = score, isSubstring
		}
	}

	return bestScore, bestSubstring
}

// scoreName scores a normalized description against a single candidate name.
// Short brand names (BP, KFC, O2) are too noisy for containment or edit
// distance, so they only match as a whole token of the description.
func scoreName(normalized, name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	if normalized == name {
		return exactScore, true
	}
	if len(name) < minMatchLength {
		if containsToken(normalized, name) {
			return substringScore, true
		}
		return 0, false
	}
	if contains(normalized, name) || contains(name, normalized) {
		return substringScore, true
	}
	return normalize.Similarity(normalized, name), false
}

func contains(haystack, needle string) bool {
	return len(needle) >= minMatchLength && strings.Contains(haystack, needle)
}

func containsToken(haystack, token string) bool {
	for _, field := range strings.Fields(haystack) {
		if field == token {
			return true
		}
	}
	return false
}
