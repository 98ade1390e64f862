package confidence

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marchwood/taxledger/internal/model"
)

// Pattern heuristic thresholds (pounds sterling).
var (
	largePurchaseThreshold = decimal.NewFromInt(500)
	smallAmountThreshold   = decimal.NewFromInt(5)
	roundUpThreshold       = decimal.NewFromInt(1)
)

const (
	recurringMinOccurrences      = 3
	recurringSmallMinOccurrences = 5
)

// Keyword lists for description-driven pattern tags. Matching is done on the
// uppercased raw description.
var (
	benefitKeywords = []string{
		"DWP", "HMRC", "UNIVERSAL CREDIT", "CHILD BENEFIT", "STATE PENSION",
		"TAX CREDIT", "PIP", "ESA", "JSA", "CARERS ALLOWANCE",
	}
	transferKeywords = []string{
		"TRANSFER", "TFR TO", "TFR FROM", "STANDING ORDER TO SAVINGS", "OWN ACCOUNT",
	}
	roundUpKeywords = []string{
		"ROUND UP", "ROUNDUP", "ROUND-UP", "SAVE THE CHANGE",
	}
)

// ClassifyPattern tags a transaction with at most one descriptive pattern
// type plus occurrence metadata. The tag is informational only; it is kept
// deliberately separate from the confidence score so the same recurrence
// signal is not counted twice.
func ClassifyPattern(txn *model.Transaction, history *MerchantHistory) (model.PatternType, string) {
	desc := strings.ToUpper(txn.Description)
	amount := txn.Amount.Abs()

	if txn.Direction == model.DirectionIn && containsAny(desc, benefitKeywords) {
		return model.PatternGovernmentBenefit, ""
	}

	if containsAny(desc, transferKeywords) {
		return model.PatternInternalTransfer, ""
	}

	if containsAny(desc, roundUpKeywords) ||
		(amount.LessThan(roundUpThreshold) && occurrences(history) >= recurringMinOccurrences) {
		return model.PatternRoundUp, occurrenceMetadata(history)
	}

	if isRecurring(amount, history) {
		if amount.LessThanOrEqual(smallAmountThreshold) && occurrences(history) >= recurringSmallMinOccurrences {
			return model.PatternRecurringSmallAmount, occurrenceMetadata(history)
		}
		return model.PatternRecurringPayment, occurrenceMetadata(history)
	}

	if amount.GreaterThanOrEqual(largePurchaseThreshold) {
		return model.PatternLargePurchase, ""
	}

	return model.PatternNone, ""
}

// isRecurring checks for repeated same-merchant activity with a consistent
// amount (within the same ±10% band the scorer uses).
func isRecurring(amount decimal.Decimal, history *MerchantHistory) bool {
	if occurrences(history) < recurringMinOccurrences || history.TypicalAmount.IsZero() {
		return false
	}
	deviation := amount.Sub(history.TypicalAmount.Abs()).Abs().Div(history.TypicalAmount.Abs())
	return deviation.LessThanOrEqual(amountFullTolerance)
}

func occurrences(history *MerchantHistory) int {
	if history == nil {
		return 0
	}
	return history.Occurrences
}

func occurrenceMetadata(history *MerchantHistory) string {
	if history == nil {
		return ""
	}
	return fmt.Sprintf("occurrences=%d typical_amount=%s",
		history.Occurrences, history.TypicalAmount.StringFixed(2))
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
