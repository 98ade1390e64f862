package engine

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marchwood/taxledger/internal/confidence"
	"github.com/marchwood/taxledger/internal/merchant"
	"github.com/marchwood/taxledger/internal/model"
)

func newTestEngine(t *testing.T, ruleSet []model.CategorizationRule, history confidence.HistorySnapshot) *Engine {
	t.Helper()
	if ruleSet == nil {
		ruleSet = []model.CategorizationRule{}
	}
	eng, err := New(merchant.Seed(), ruleSet, history, Options{})
	require.NoError(t, err)
	return eng
}

func txn(description, amount string, direction model.TransactionDirection) model.Transaction {
	return model.Transaction{
		ID:          "txn-" + description,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Direction:   direction,
	}
}

func TestNew_RejectsNilSnapshots(t *testing.T) {
	_, err := New(nil, []model.CategorizationRule{}, nil, Options{})
	assert.ErrorIs(t, err, ErrNilMerchants)

	_, err = New([]model.MerchantRecord{}, nil, nil, Options{})
	assert.ErrorIs(t, err, ErrNilRules)
}

func TestEngine_Categorize_KnownSupermarket(t *testing.T) {
	eng := newTestEngine(t, nil, nil)

	result := eng.Categorize(txn("CARD PAYMENT TO TESCO STORES 3456", "23.50", model.DirectionOut))

	assert.Equal(t, model.SourceMerchant, result.Source)
	assert.Equal(t, model.TypeExpense, result.GuessedType)
	assert.Equal(t, "Groceries", result.GuessedCategory)
	assert.Equal(t, "TESCO", result.MatchedMerchant)
	assert.True(t, result.IsPersonal)
	assert.GreaterOrEqual(t, result.Breakdown.MerchantMatch, 40, "brand-name containment is strong evidence")
	assert.False(t, result.RequiresReview)
}

func TestEngine_Categorize_RuleBeatsMerchantDefault(t *testing.T) {
	ruleSet := []model.CategorizationRule{
		{
			ID:         1,
			Priority:   10,
			MatchMode:  model.MatchContains,
			Pattern:    "CLIENT",
			MapsTo:     model.MapsToIncome,
			IncomeType: "Self-employment",
			Active:     true,
		},
	}
	eng := newTestEngine(t, ruleSet, nil)

	result := eng.Categorize(txn("FASTER PAYMENT CLIENT LTD INV 42", "1500.00", model.DirectionIn))

	assert.Equal(t, model.SourceRule, result.Source)
	assert.Equal(t, model.TypeIncome, result.GuessedType)
	assert.Equal(t, "Self-employment", result.GuessedCategory)
	assert.False(t, result.IsPersonal)
}

func TestEngine_Categorize_UnknownPayee(t *testing.T) {
	eng := newTestEngine(t, nil, nil)

	result := eng.Categorize(txn("XKQZV 9981 PAYMENT", "50.00", model.DirectionOut))

	assert.Equal(t, model.SourceNone, result.Source)
	assert.Equal(t, model.TypeUnclassified, result.GuessedType)
	assert.Equal(t, 0, result.Score)
	assert.True(t, result.RequiresReview)
}

func TestEngine_Categorize_PriorityDecidesBetweenOverlappingRules(t *testing.T) {
	ruleSet := []model.CategorizationRule{
		{
			ID:              1,
			Priority:        5,
			MatchMode:       model.MatchContains,
			Pattern:         "AMAZON",
			MapsTo:          model.MapsToExpense,
			ExpenseCategory: "Office costs",
			Active:          true,
		},
		{
			ID:        2,
			Priority:  1,
			MatchMode: model.MatchContains,
			Pattern:   "AMAZON PRIME",
			MapsTo:    model.MapsToIgnore,
			Active:    true,
		},
	}
	eng := newTestEngine(t, ruleSet, nil)

	result := eng.Categorize(txn("AMAZON PRIME MEMBERSHIP", "8.99", model.DirectionOut))
	assert.Equal(t, model.TypeIgnore, result.GuessedType)

	result = eng.Categorize(txn("AMAZON.CO.UK ORDER 123-456", "34.99", model.DirectionOut))
	assert.Equal(t, model.TypeExpense, result.GuessedType)
	assert.Equal(t, "Office costs", result.GuessedCategory)
}

func TestEngine_Categorize_EstablishedSubscriptionScoresHigh(t *testing.T) {
	// A year of identical monthly charges.
	var stored []model.Transaction
	for range 12 {
		monthly := txn("NETFLIX.COM", "9.99", model.DirectionOut)
		monthly.GuessedType = model.TypeExpense
		monthly.GuessedCategory = "Subscriptions"
		stored = append(stored, monthly)
	}
	history := confidence.BuildHistory(stored)

	eng := newTestEngine(t, nil, history)

	result := eng.Categorize(txn("NETFLIX.COM", "9.99", model.DirectionOut))

	assert.Equal(t, "Subscriptions", result.GuessedCategory)
	assert.GreaterOrEqual(t, result.Score, 90)
	assert.False(t, result.RequiresReview)
	assert.Equal(t, model.PatternRecurringPayment, result.PatternType)
	assert.Equal(t, "occurrences=12 typical_amount=9.99", result.PatternMetadata)
}

func TestEngine_Categorize_BlankDescription(t *testing.T) {
	eng := newTestEngine(t, nil, nil)

	result := eng.Categorize(txn("   ", "10.00", model.DirectionOut))

	assert.Equal(t, model.SourceNone, result.Source)
	assert.True(t, result.RequiresReview)
}

func TestEngine_Categorize_IsDeterministic(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	input := txn("TESCO STORES 3456", "23.50", model.DirectionOut)

	first := eng.Categorize(input)
	for range 5 {
		assert.Equal(t, first, eng.Categorize(input))
	}
}

func TestEngine_CategorizeBatch_OrderIndependent(t *testing.T) {
	eng := newTestEngine(t, nil, nil)
	ctx := context.Background()

	a := txn("TESCO STORES 3456", "23.50", model.DirectionOut)
	b := txn("NETFLIX.COM", "9.99", model.DirectionOut)

	forward, err := eng.CategorizeBatch(ctx, []model.Transaction{a, b})
	require.NoError(t, err)
	reverse, err := eng.CategorizeBatch(ctx, []model.Transaction{b, a})
	require.NoError(t, err)

	assert.Equal(t, forward[0], reverse[1])
	assert.Equal(t, forward[1], reverse[0])
}

func TestEngine_CategorizeBatch_HonorsContextCancellation(t *testing.T) {
	eng := newTestEngine(t, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.CategorizeBatch(ctx, []model.Transaction{
		txn("TESCO STORES", "10.00", model.DirectionOut),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_CategorizeBatch_EmptyInput(t *testing.T) {
	eng := newTestEngine(t, nil, nil)

	results, err := eng.CategorizeBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestApply_CopiesCategorizationOntoTransaction(t *testing.T) {
	target := txn("NETFLIX.COM", "9.99", model.DirectionOut)
	result := model.Categorization{
		GuessedType:     model.TypeExpense,
		GuessedCategory: "Subscriptions",
		Score:           91,
		IsPersonal:      true,
		RequiresReview:  false,
		PatternType:     model.PatternRecurringPayment,
		PatternMetadata: "occurrences=12 typical_amount=9.99",
	}

	Apply(&target, result)

	assert.Equal(t, model.TypeExpense, target.GuessedType)
	assert.Equal(t, "Subscriptions", target.GuessedCategory)
	assert.Equal(t, 91, target.ConfidenceScore)
	assert.True(t, target.IsPersonal)
	assert.False(t, target.RequiresReview)
	assert.Equal(t, model.PatternRecurringPayment, target.PatternType)

	// Imported facts are untouched.
	assert.Equal(t, "NETFLIX.COM", target.Description)
	assert.True(t, target.Amount.Equal(decimal.RequireFromString("9.99")))
}
