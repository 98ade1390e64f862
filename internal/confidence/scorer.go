package confidence

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marchwood/taxledger/internal/merchant"
	"github.com/marchwood/taxledger/internal/model"
	"github.com/marchwood/taxledger/internal/rules"
)

// Component caps. The 50/30/30/15 split keeps merchant evidence dominant,
// rule evidence close behind, and lets a heavily corroborated merchant-only
// match reach high confidence; the sum is clamped to 100.
const (
	MerchantMatchCap     = 50
	RuleMatchCap         = 30
	PatternLearningCap   = 30
	AmountConsistencyCap = 15
)

// Default decision thresholds.
const (
	DefaultReviewThreshold = 40
	DefaultHighConfidence  = 70
)

const (
	merchantRawWeight   = 40 // portion of MerchantMatchCap scaled from the raw match score
	merchantBoostWeight = 10 // portion scaled from the record's confidence boost

	ruleBaseScore        = 18
	ruleEqualsBonus      = 6
	rulePriorityBonusMax = 6
)

// Amount-consistency tolerance band: within ±10% of the typical amount scores
// full points, decaying linearly to zero at ±50%.
var (
	amountFullTolerance = decimal.NewFromFloat(0.10)
	amountZeroTolerance = decimal.NewFromFloat(0.50)
)

// comparableStrengthRatio: when rule and merchant disagree and the weaker
// component is at least this fraction of the stronger, the signal is
// considered ambiguous.
const comparableStrengthRatio = 0.6

// Scorer converts match results and historical signals into a Categorization.
type Scorer struct {
	reviewThreshold int
	highConfidence  int
}

// NewScorer creates a scorer. Non-positive thresholds select the defaults.
func NewScorer(reviewThreshold, highConfidence int) *Scorer {
	if reviewThreshold <= 0 {
		reviewThreshold = DefaultReviewThreshold
	}
	if highConfidence <= 0 {
		highConfidence = DefaultHighConfidence
	}
	return &Scorer{reviewThreshold: reviewThreshold, highConfidence: highConfidence}
}

// Score reconciles the merchant and rule results for a transaction and
// computes the confidence breakdown. A matching rule always wins the
// category (explicit user intent beats inferred defaults); the merchant
// match still contributes to the score either way.
func (s *Scorer) Score(txn *model.Transaction, merchantMatch *merchant.Match, ruleMatch *rules.RuleMatch, history *MerchantHistory) model.Categorization {
	if merchantMatch == nil && ruleMatch == nil {
		return model.Unclassified()
	}

	disagree := s.disagreement(merchantMatch, ruleMatch)

	breakdown := model.ScoreBreakdown{
		MerchantMatch:     merchantComponent(merchantMatch, disagree),
		RuleMatch:         ruleComponent(ruleMatch),
		PatternLearning:   patternLearningComponent(history),
		AmountConsistency: amountConsistencyComponent(txn.Amount, history),
	}

	total := breakdown.Total()
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	result := model.Categorization{
		Breakdown: breakdown,
		Score:     total,
	}
	if merchantMatch != nil {
		result.MatchedMerchant = merchantMatch.Merchant.CanonicalName
	}

	if ruleMatch != nil {
		result.Source = model.SourceRule
		result.GuessedType = ruleMatch.Rule.TransactionType()
		result.GuessedCategory = ruleMatch.Category
		// Rules express deliberate bookkeeping intent, typically for the
		// business side of the ledger.
		result.IsPersonal = false
	} else {
		result.Source = model.SourceMerchant
		result.GuessedType = merchantMatch.Merchant.DefaultType
		result.GuessedCategory = merchantMatch.Merchant.DefaultCategory
		result.IsPersonal = merchantMatch.Merchant.IsPersonalByDefault
	}

	ambiguous := disagree && comparableStrength(breakdown.MerchantMatch, breakdown.RuleMatch)
	result.RequiresReview = total < s.reviewThreshold || ambiguous
	if total >= s.highConfidence {
		result.RequiresReview = false
	}

	result.Explanation = explain(breakdown, merchantMatch, ruleMatch, ambiguous, total)

	return result
}

// disagreement reports whether the rule and merchant point at different
// categorizations.
func (s *Scorer) disagreement(merchantMatch *merchant.Match, ruleMatch *rules.RuleMatch) bool {
	if merchantMatch == nil || ruleMatch == nil {
		return false
	}
	if ruleMatch.Rule.TransactionType() != merchantMatch.Merchant.DefaultType {
		return true
	}
	return ruleMatch.Category != merchantMatch.Merchant.DefaultCategory
}

func merchantComponent(match *merchant.Match, disagree bool) int {
	if match == nil {
		return 0
	}

	component := match.Score * merchantRawWeight / 100
	component += match.Merchant.ConfidenceBoost * merchantBoostWeight / 30
	if component > MerchantMatchCap {
		component = MerchantMatchCap
	}

	// A disagreeing merchant detracts from trust in the rule's category
	// rather than corroborating it.
	if disagree {
		component /= 2
	}

	return component
}

func ruleComponent(match *rules.RuleMatch) int {
	if match == nil {
		return 0
	}

	component := ruleBaseScore
	if match.Rule.MatchMode == model.MatchEquals {
		component += ruleEqualsBonus
	}
	if bonus := rulePriorityBonusMax - match.Rule.Priority; bonus > 0 {
		component += bonus
	}
	if component > RuleMatchCap {
		component = RuleMatchCap
	}

	return component
}

// patternLearningComponent saturates with the number of corroborating
// historical transactions so a single dominant merchant cannot run away with
// the score: n/(n+1) of the cap, rounded.
func patternLearningComponent(history *MerchantHistory) int {
	if history == nil || history.ConsistentCount == 0 {
		return 0
	}
	n := history.ConsistentCount
	return (PatternLearningCap*n + (n+1)/2) / (n + 1)
}

func amountConsistencyComponent(amount decimal.Decimal, history *MerchantHistory) int {
	if history == nil || history.SampleCount < 2 || history.TypicalAmount.IsZero() {
		return 0
	}

	deviation := amount.Sub(history.TypicalAmount).Abs().Div(history.TypicalAmount.Abs())
	if deviation.LessThanOrEqual(amountFullTolerance) {
		return AmountConsistencyCap
	}
	if deviation.GreaterThanOrEqual(amountZeroTolerance) {
		return 0
	}

	span := amountZeroTolerance.Sub(amountFullTolerance)
	fraction := amountZeroTolerance.Sub(deviation).Div(span)
	return int(fraction.Mul(decimal.NewFromInt(AmountConsistencyCap)).Round(0).IntPart())
}

func comparableStrength(a, b int) bool {
	if a == 0 || b == 0 {
		return false
	}
	smaller, larger := a, b
	if smaller > larger {
		smaller, larger = larger, smaller
	}
	return float64(smaller) >= comparableStrengthRatio*float64(larger)
}

// explain renders a deterministic, template-based explanation of the
// breakdown so the review UI can display (and tests can assert) exactly why
// a transaction scored the way it did.
func explain(b model.ScoreBreakdown, merchantMatch *merchant.Match, ruleMatch *rules.RuleMatch, ambiguous bool, total int) string {
	parts := make([]string, 0, 5)

	if ruleMatch != nil {
		parts = append(parts, fmt.Sprintf("rule %q matched (%d/%d)",
			ruleMatch.Rule.Pattern, b.RuleMatch, RuleMatchCap))
	}
	if merchantMatch != nil {
		kind := "fuzzy match"
		if merchantMatch.IsSubstring {
			kind = "name match"
		}
		parts = append(parts, fmt.Sprintf("merchant %s %s (%d/%d)",
			merchantMatch.Merchant.CanonicalName, kind, b.MerchantMatch, MerchantMatchCap))
	}
	if b.PatternLearning > 0 {
		parts = append(parts, fmt.Sprintf("consistent history (%d/%d)",
			b.PatternLearning, PatternLearningCap))
	}
	if b.AmountConsistency > 0 {
		parts = append(parts, fmt.Sprintf("amount in usual range (%d/%d)",
			b.AmountConsistency, AmountConsistencyCap))
	}
	if ambiguous {
		parts = append(parts, "rule and merchant disagree")
	}

	return fmt.Sprintf("%s; total %d/100", strings.Join(parts, "; "), total)
}
