package model

// CategorySource indicates which stage produced the winning categorization.
type CategorySource string

// Category source constants.
const (
	SourceRule     CategorySource = "RULE"
	SourceMerchant CategorySource = "MERCHANT"
	SourceNone     CategorySource = "NONE"
)

// ScoreBreakdown itemizes the confidence score by component.
type ScoreBreakdown struct {
	MerchantMatch     int `json:"merchant_match"`
	RuleMatch         int `json:"rule_match"`
	PatternLearning   int `json:"pattern_learning"`
	AmountConsistency int `json:"amount_consistency"`
}

// Total sums the components. The engine clamps the persisted score to [0,100];
// the raw component sum may exceed it.
func (b ScoreBreakdown) Total() int {
	return b.MerchantMatch + b.RuleMatch + b.PatternLearning + b.AmountConsistency
}

// Categorization is the engine's output for a single transaction.
type Categorization struct {
	Source          CategorySource
	GuessedType     TransactionType
	GuessedCategory string
	MatchedMerchant string // Canonical name of the matched merchant, if any
	Explanation     string
	PatternType     PatternType
	PatternMetadata string
	Breakdown       ScoreBreakdown
	Score           int
	IsPersonal      bool
	RequiresReview  bool
}

// Unclassified is the fallback result for transactions the engine could not
// categorize: no guess, zero confidence, flagged for manual review.
func Unclassified() Categorization {
	return Categorization{
		Source:         SourceNone,
		GuessedType:    TypeUnclassified,
		Explanation:    "No matching rule or known merchant",
		PatternType:    PatternNone,
		Score:          0,
		RequiresReview: true,
	}
}
