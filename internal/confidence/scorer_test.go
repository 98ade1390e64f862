package confidence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchwood/taxledger/internal/merchant"
	"github.com/marchwood/taxledger/internal/model"
	"github.com/marchwood/taxledger/internal/rules"
)

func groceryMerchant(boost int) *model.MerchantRecord {
	return &model.MerchantRecord{
		CanonicalName:       "TESCO",
		DefaultCategory:     "Groceries",
		DefaultType:         model.TypeExpense,
		ConfidenceBoost:     boost,
		IsPersonalByDefault: true,
	}
}

func merchantMatch(record *model.MerchantRecord, score int) *merchant.Match {
	return &merchant.Match{Merchant: record, Score: score, IsSubstring: score >= 95}
}

func containsRule(priority int, mapsTo model.RuleMapping, category string) *rules.RuleMatch {
	rule := &model.CategorizationRule{
		ID:        1,
		Priority:  priority,
		MatchMode: model.MatchContains,
		Pattern:   "TESCO",
		MapsTo:    mapsTo,
		Active:    true,
	}
	switch mapsTo {
	case model.MapsToIncome:
		rule.IncomeType = category
	case model.MapsToExpense:
		rule.ExpenseCategory = category
	}
	return &rules.RuleMatch{Rule: rule, MapsTo: mapsTo, Category: category}
}

func testTxn(amount string) *model.Transaction {
	return &model.Transaction{
		ID:          "txn-1",
		Description: "TESCO STORES 3456",
		Amount:      decimal.RequireFromString(amount),
		Direction:   model.DirectionOut,
	}
}

func TestScorer_NoSignalsIsUnclassified(t *testing.T) {
	scorer := NewScorer(0, 0)

	result := scorer.Score(testTxn("12.50"), nil, nil, nil)

	assert.Equal(t, model.SourceNone, result.Source)
	assert.Equal(t, model.TypeUnclassified, result.GuessedType)
	assert.Equal(t, 0, result.Score)
	assert.True(t, result.RequiresReview)
}

func TestScorer_MerchantOnly(t *testing.T) {
	scorer := NewScorer(0, 0)

	result := scorer.Score(testTxn("12.50"), merchantMatch(groceryMerchant(25), 95), nil, nil)

	// 95 raw -> 38, boost 25 -> 8.
	assert.Equal(t, 46, result.Breakdown.MerchantMatch)
	assert.Equal(t, 46, result.Score)
	assert.Equal(t, model.SourceMerchant, result.Source)
	assert.Equal(t, model.TypeExpense, result.GuessedType)
	assert.Equal(t, "Groceries", result.GuessedCategory)
	assert.Equal(t, "TESCO", result.MatchedMerchant)
	assert.True(t, result.IsPersonal)
	assert.False(t, result.RequiresReview)
}

func TestScorer_MerchantComponentIsCapped(t *testing.T) {
	scorer := NewScorer(0, 0)

	result := scorer.Score(testTxn("12.50"), merchantMatch(groceryMerchant(30), 100), nil, nil)

	assert.Equal(t, MerchantMatchCap, result.Breakdown.MerchantMatch)
}

func TestScorer_RuleOnly(t *testing.T) {
	scorer := NewScorer(0, 0)

	result := scorer.Score(testTxn("250.00"), nil, containsRule(100, model.MapsToIncome, "Self-employment"), nil)

	assert.Equal(t, 18, result.Breakdown.RuleMatch)
	assert.Equal(t, 18, result.Score)
	assert.Equal(t, model.SourceRule, result.Source)
	assert.Equal(t, model.TypeIncome, result.GuessedType)
	assert.Equal(t, "Self-employment", result.GuessedCategory)
	assert.False(t, result.IsPersonal)
	assert.True(t, result.RequiresReview, "a lone low-priority rule is weak evidence")
}

func TestScorer_RuleComponentBonuses(t *testing.T) {
	scorer := NewScorer(0, 0)

	// High-priority rule gets a small bonus.
	result := scorer.Score(testTxn("250.00"), nil, containsRule(3, model.MapsToIgnore, ""), nil)
	assert.Equal(t, 21, result.Breakdown.RuleMatch)

	// Equals mode plus top priority reaches the cap.
	equals := containsRule(0, model.MapsToIgnore, "")
	equals.Rule.MatchMode = model.MatchEquals
	result = scorer.Score(testTxn("250.00"), nil, equals, nil)
	assert.Equal(t, RuleMatchCap, result.Breakdown.RuleMatch)
}

func TestScorer_RuleWinsCategoryWhenBothMatch(t *testing.T) {
	scorer := NewScorer(0, 0)

	// Merchant agrees with the rule, so both contribute at full strength.
	result := scorer.Score(testTxn("12.50"),
		merchantMatch(groceryMerchant(25), 95),
		containsRule(100, model.MapsToExpense, "Groceries"),
		nil)

	assert.Equal(t, model.SourceRule, result.Source)
	assert.Equal(t, 46, result.Breakdown.MerchantMatch)
	assert.Equal(t, 18, result.Breakdown.RuleMatch)
	assert.Equal(t, 64, result.Score)
	assert.False(t, result.IsPersonal, "rule categorizations are business bookkeeping")
	assert.False(t, result.RequiresReview)
}

func TestScorer_DisagreementHalvesMerchantAndFlagsReview(t *testing.T) {
	scorer := NewScorer(0, 0)

	result := scorer.Score(testTxn("250.00"),
		merchantMatch(groceryMerchant(25), 95),
		containsRule(100, model.MapsToIncome, "Self-employment"),
		nil)

	// 46 halved to 23; the rule still wins the category.
	assert.Equal(t, 23, result.Breakdown.MerchantMatch)
	assert.Equal(t, 18, result.Breakdown.RuleMatch)
	assert.Equal(t, 41, result.Score)
	assert.Equal(t, model.TypeIncome, result.GuessedType)
	assert.Equal(t, "Self-employment", result.GuessedCategory)

	// Above the review threshold, but the two signals are of comparable
	// strength and point in different directions.
	assert.True(t, result.RequiresReview)
	assert.Contains(t, result.Explanation, "rule and merchant disagree")
}

func TestScorer_HighConfidenceSuppressesReview(t *testing.T) {
	scorer := NewScorer(0, 0)

	history := &MerchantHistory{
		Key:              "TESCO STORES 3456",
		DominantCategory: "Groceries",
		DominantType:     model.TypeExpense,
		TypicalAmount:    decimal.RequireFromString("12.50"),
		Occurrences:      12,
		ConsistentCount:  12,
		SampleCount:      12,
	}

	equals := containsRule(0, model.MapsToIncome, "Self-employment")
	equals.Rule.MatchMode = model.MatchEquals

	result := scorer.Score(testTxn("12.50"),
		merchantMatch(groceryMerchant(30), 100),
		equals,
		history)

	// 25 (halved from 50) + 30 + 28 + 15 = 98: disagreement alone is not
	// enough to flag a transaction this heavily corroborated.
	assert.Equal(t, 98, result.Score)
	assert.False(t, result.RequiresReview)
}

func TestScorer_ScoreClampedTo100(t *testing.T) {
	scorer := NewScorer(0, 0)

	history := &MerchantHistory{
		DominantCategory: "Groceries",
		DominantType:     model.TypeExpense,
		TypicalAmount:    decimal.RequireFromString("12.50"),
		Occurrences:      50,
		ConsistentCount:  50,
		SampleCount:      50,
	}

	result := scorer.Score(testTxn("12.50"),
		merchantMatch(groceryMerchant(30), 100),
		containsRule(0, model.MapsToExpense, "Groceries"),
		history)

	assert.Equal(t, 100, result.Score)
	assert.Greater(t, result.Breakdown.Total(), 100)
}

func TestPatternLearningComponent(t *testing.T) {
	tests := []struct {
		name    string
		history *MerchantHistory
		want    int
	}{
		{name: "no history", history: nil, want: 0},
		{name: "no consistent activity", history: &MerchantHistory{ConsistentCount: 0}, want: 0},
		{name: "single occurrence", history: &MerchantHistory{ConsistentCount: 1}, want: 15},
		{name: "three occurrences", history: &MerchantHistory{ConsistentCount: 3}, want: 23},
		{name: "a year of occurrences", history: &MerchantHistory{ConsistentCount: 12}, want: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := patternLearningComponent(tt.history)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got, PatternLearningCap)
		})
	}
}

func TestAmountConsistencyComponent(t *testing.T) {
	history := &MerchantHistory{
		TypicalAmount: decimal.RequireFromString("10.00"),
		SampleCount:   4,
	}

	tests := []struct {
		name   string
		amount string
		want   int
	}{
		{name: "exactly typical", amount: "10.00", want: AmountConsistencyCap},
		{name: "within ten percent", amount: "10.50", want: AmountConsistencyCap},
		{name: "thirty percent off decays linearly", amount: "13.00", want: 8},
		{name: "fifty percent off scores nothing", amount: "15.00", want: 0},
		{name: "way off", amount: "99.00", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := amountConsistencyComponent(decimal.RequireFromString(tt.amount), history)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmountConsistencyNeedsTwoSamples(t *testing.T) {
	history := &MerchantHistory{
		TypicalAmount: decimal.RequireFromString("10.00"),
		SampleCount:   1,
	}
	assert.Equal(t, 0, amountConsistencyComponent(decimal.RequireFromString("10.00"), history))
	assert.Equal(t, 0, amountConsistencyComponent(decimal.RequireFromString("10.00"), nil))
}

func TestScorer_ExplanationIsDeterministic(t *testing.T) {
	scorer := NewScorer(0, 0)
	match := merchantMatch(groceryMerchant(25), 95)

	first := scorer.Score(testTxn("12.50"), match, nil, nil)
	second := scorer.Score(testTxn("12.50"), match, nil, nil)

	require.Equal(t, first.Explanation, second.Explanation)
	assert.Contains(t, first.Explanation, "merchant TESCO name match (46/50)")
	assert.Contains(t, first.Explanation, "total 46/100")
}
