package model

// PatternType is a descriptive tag for a recognizable transaction behavior.
// It is informational metadata only and never feeds the confidence score.
type PatternType string

// Pattern type constants.
const (
	PatternNone                 PatternType = ""
	PatternRecurringPayment     PatternType = "recurring_payment"
	PatternRoundUp              PatternType = "round_up"
	PatternGovernmentBenefit    PatternType = "government_benefit"
	PatternInternalTransfer     PatternType = "internal_transfer"
	PatternLargePurchase        PatternType = "large_purchase"
	PatternRecurringSmallAmount PatternType = "recurring_small_amount"
)

// patternDescriptions maps each pattern type to its display description.
var patternDescriptions = map[PatternType]string{
	PatternNone:                 "No recognized pattern",
	PatternRecurringPayment:     "Recurring payment (same merchant, consistent amount)",
	PatternRoundUp:              "Round-up savings sweep",
	PatternGovernmentBenefit:    "Government benefit payment",
	PatternInternalTransfer:     "Transfer between own accounts",
	PatternLargePurchase:        "One-off large purchase",
	PatternRecurringSmallAmount: "Frequent small charge",
}

// Description returns a human-readable description of the pattern type.
func (p PatternType) Description() string {
	if desc, ok := patternDescriptions[p]; ok {
		return desc
	}
	return patternDescriptions[PatternNone]
}

// Valid reports whether p is a known pattern type.
func (p PatternType) Valid() bool {
	_, ok := patternDescriptions[p]
	return ok
}
