// Package confidence combines merchant matches, rule matches and historical
// signals into a single 0-100 score with a reviewable breakdown.
package confidence

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marchwood/taxledger/internal/model"
	"github.com/marchwood/taxledger/internal/normalize"
)

// MerchantHistory summarizes prior activity for one normalized merchant key.
type MerchantHistory struct {
	Key              string
	DominantCategory string
	DominantType     model.TransactionType
	TypicalAmount    decimal.Decimal
	Occurrences      int
	ConsistentCount  int
	SampleCount      int
}

// memberTxn is one stored transaction's contribution to a merchant group.
type memberTxn struct {
	hash     string
	category string
	txnType  model.TransactionType
	amount   decimal.Decimal
}

// HistorySnapshot is a read-only view of historical merchant activity, keyed
// by normalized merchant key. It is built once per batch so categorization of
// one transaction never depends on another transaction in the same batch.
// Aggregation happens at lookup time so the transaction being scored can be
// excluded from its own history during recategorization.
type HistorySnapshot map[string][]memberTxn

// Lookup aggregates prior activity for the transaction's merchant key. A
// stored row whose hash equals the transaction's own hash is excluded, so a
// transaction never corroborates itself.
func (s HistorySnapshot) Lookup(txn *model.Transaction) (MerchantHistory, bool) {
	if s == nil {
		return MerchantHistory{}, false
	}

	key := normalize.MerchantKey(txn.Description)
	members, ok := s[key]
	if !ok {
		return MerchantHistory{}, false
	}

	h := MerchantHistory{Key: key}
	amounts := make([]decimal.Decimal, 0, len(members))
	categories := make(map[string]int)
	types := make(map[model.TransactionType]int)

	for i := range members {
		m := &members[i]
		if m.hash != "" && m.hash == txn.Hash {
			continue
		}

		h.Occurrences++
		amounts = append(amounts, m.amount)
		if m.txnType != model.TypeUnclassified && m.category != "" {
			categories[m.category]++
			types[m.txnType]++
		}
	}

	if h.Occurrences == 0 {
		return MerchantHistory{}, false
	}

	h.SampleCount = len(amounts)
	// The typical amount is the median, which tolerates the odd one-off
	// outlier better than a mean for recurring charges.
	h.TypicalAmount = median(amounts)
	h.DominantCategory, h.ConsistentCount = dominantKey(categories)
	h.DominantType, _ = dominantType(types)

	return h, true
}

// BuildHistory groups previously persisted transactions by merchant key.
func BuildHistory(transactions []model.Transaction) HistorySnapshot {
	snapshot := make(HistorySnapshot)
	for i := range transactions {
		txn := &transactions[i]
		key := normalize.MerchantKey(txn.Description)
		if key == "" {
			continue
		}

		snapshot[key] = append(snapshot[key], memberTxn{
			hash:     txn.Hash,
			category: txn.GuessedCategory,
			txnType:  txn.GuessedType,
			amount:   txn.Amount,
		})
	}
	return snapshot
}

func median(amounts []decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}

	sorted := make([]decimal.Decimal, len(amounts))
	copy(sorted, amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}

// dominantKey returns the most frequent category and its count. Ties are
// broken lexicographically so the result is deterministic.
func dominantKey(counts map[string]int) (string, int) {
	best, bestCount := "", 0
	for k, n := range counts {
		if n > bestCount || (n == bestCount && k < best) {
			best, bestCount = k, n
		}
	}
	return best, bestCount
}

func dominantType(counts map[model.TransactionType]int) (model.TransactionType, int) {
	best, bestCount := model.TypeUnclassified, 0
	for k, n := range counts {
		if n > bestCount || (n == bestCount && k < best) {
			best, bestCount = k, n
		}
	}
	return best, bestCount
}
