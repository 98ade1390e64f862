package confidence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/marchwood/taxledger/internal/model"
)

func patternTxn(description, amount string, direction model.TransactionDirection) *model.Transaction {
	return &model.Transaction{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Direction:   direction,
	}
}

func recurringHistory(occurrences int, typical string) *MerchantHistory {
	return &MerchantHistory{
		Occurrences:   occurrences,
		TypicalAmount: decimal.RequireFromString(typical),
	}
}

func TestClassifyPattern(t *testing.T) {
	tests := []struct {
		name    string
		txn     *model.Transaction
		history *MerchantHistory
		want    model.PatternType
	}{
		{
			name: "incoming benefit payment",
			txn:  patternTxn("DWP UNIVERSAL CREDIT", "820.00", model.DirectionIn),
			want: model.PatternGovernmentBenefit,
		},
		{
			name: "benefit keywords on outgoing money are not benefits",
			txn:  patternTxn("HMRC SA PAYMENT", "500.00", model.DirectionOut),
			want: model.PatternLargePurchase,
		},
		{
			name: "transfer between own accounts",
			txn:  patternTxn("TFR TO SAVINGS 42", "200.00", model.DirectionOut),
			want: model.PatternInternalTransfer,
		},
		{
			name: "benefit beats transfer when both apply",
			txn:  patternTxn("DWP TRANSFER", "100.00", model.DirectionIn),
			want: model.PatternGovernmentBenefit,
		},
		{
			name: "round up by keyword",
			txn:  patternTxn("MONZO ROUND UP", "0.43", model.DirectionOut),
			want: model.PatternRoundUp,
		},
		{
			name:    "sub pound recurring amounts look like round ups",
			txn:     patternTxn("SAVINGS SWEEP", "0.57", model.DirectionOut),
			history: recurringHistory(6, "0.60"),
			want:    model.PatternRoundUp,
		},
		{
			name:    "recurring payment",
			txn:     patternTxn("NETFLIX.COM", "9.99", model.DirectionOut),
			history: recurringHistory(4, "9.99"),
			want:    model.PatternRecurringPayment,
		},
		{
			name:    "small recurring amount needs five occurrences",
			txn:     patternTxn("APPLE.COM/BILL", "2.99", model.DirectionOut),
			history: recurringHistory(6, "2.99"),
			want:    model.PatternRecurringSmallAmount,
		},
		{
			name:    "small amount with few occurrences stays recurring",
			txn:     patternTxn("APPLE.COM/BILL", "2.99", model.DirectionOut),
			history: recurringHistory(3, "2.99"),
			want:    model.PatternRecurringPayment,
		},
		{
			name:    "inconsistent amounts are not recurring",
			txn:     patternTxn("NETFLIX.COM", "45.00", model.DirectionOut),
			history: recurringHistory(4, "9.99"),
			want:    model.PatternNone,
		},
		{
			name: "large purchase",
			txn:  patternTxn("CURRYS PC WORLD", "649.00", model.DirectionOut),
			want: model.PatternLargePurchase,
		},
		{
			name: "ordinary transaction has no pattern",
			txn:  patternTxn("GREGGS 1234", "3.40", model.DirectionOut),
			want: model.PatternNone,
		},
		{
			name:    "recurring beats large purchase",
			txn:     patternTxn("RENT STANDING ORDER ACCT", "850.00", model.DirectionOut),
			history: recurringHistory(6, "850.00"),
			want:    model.PatternRecurringPayment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ClassifyPattern(tt.txn, tt.history)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyPattern_MetadataRecordsOccurrences(t *testing.T) {
	txn := patternTxn("NETFLIX.COM", "9.99", model.DirectionOut)
	history := recurringHistory(12, "9.99")

	pattern, metadata := ClassifyPattern(txn, history)

	assert.Equal(t, model.PatternRecurringPayment, pattern)
	assert.Equal(t, "occurrences=12 typical_amount=9.99", metadata)
}

func TestClassifyPattern_KeywordPatternsCarryNoMetadata(t *testing.T) {
	txn := patternTxn("DWP UNIVERSAL CREDIT", "820.00", model.DirectionIn)

	pattern, metadata := ClassifyPattern(txn, nil)

	assert.Equal(t, model.PatternGovernmentBenefit, pattern)
	assert.Empty(t, metadata)
}
