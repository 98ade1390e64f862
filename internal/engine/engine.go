// Package engine runs the categorization pipeline: merchant matching, rule
// evaluation, confidence scoring and pattern tagging over read-only snapshots
// of the reference data.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/marchwood/taxledger/internal/confidence"
	"github.com/marchwood/taxledger/internal/merchant"
	"github.com/marchwood/taxledger/internal/model"
	"github.com/marchwood/taxledger/internal/rules"
)

// Snapshot construction errors. Nil reference data is a programmer error,
// not a per-row runtime condition.
var (
	ErrNilMerchants = errors.New("merchant snapshot cannot be nil")
	ErrNilRules     = errors.New("rule snapshot cannot be nil")
)

// Options tunes the engine's thresholds. Zero values select the defaults
// (merchant match 60, review below 40, never review at or above 70).
type Options struct {
	MatchThreshold  int
	ReviewThreshold int
	HighConfidence  int
}

// Engine categorizes transactions against immutable snapshots of the
// merchant table, rule set and merchant history. Construct a fresh engine
// per batch; the caller is responsible for snapshotting reference data
// before the batch starts so no torn rule set is ever observed.
type Engine struct {
	matcher *merchant.Matcher
	rules   *rules.Engine
	scorer  *confidence.Scorer
	history confidence.HistorySnapshot
}

// New creates an engine over the given snapshots. The history snapshot may
// be nil when no prior activity exists.
func New(merchants []model.MerchantRecord, ruleSet []model.CategorizationRule, history confidence.HistorySnapshot, opts Options) (*Engine, error) {
	if merchants == nil {
		return nil, ErrNilMerchants
	}
	if ruleSet == nil {
		return nil, ErrNilRules
	}

	return &Engine{
		matcher: merchant.NewMatcher(merchants, opts.MatchThreshold),
		rules:   rules.NewEngine(ruleSet),
		scorer:  confidence.NewScorer(opts.ReviewThreshold, opts.HighConfidence),
		history: history,
	}, nil
}

// Categorize runs the full pipeline for a single transaction. It is pure
// with respect to the snapshots: identical inputs always produce identical
// output, so re-evaluation after a rule edit is just another call.
func (e *Engine) Categorize(txn model.Transaction) model.Categorization {
	if strings.TrimSpace(txn.Description) == "" {
		// Data anomaly: nothing to match against.
		return model.Unclassified()
	}

	var history *confidence.MerchantHistory
	if h, ok := e.history.Lookup(&txn); ok {
		history = &h
	}

	merchantMatch := e.matcher.Match(txn.Description)
	ruleMatch := e.rules.Evaluate(txn.Description)

	result := e.scorer.Score(&txn, merchantMatch, ruleMatch, history)
	result.PatternType, result.PatternMetadata = confidence.ClassifyPattern(&txn, history)

	return result
}

// CategorizeBatch categorizes each transaction independently. Results do not
// depend on batch order. A panic while categorizing one row degrades that
// row to the unclassified fallback and the batch continues.
func (e *Engine) CategorizeBatch(ctx context.Context, transactions []model.Transaction) ([]model.Categorization, error) {
	results := make([]model.Categorization, len(transactions))

	for i := range transactions {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		results[i] = e.categorizeSafe(transactions[i])
	}

	return results, nil
}

// categorizeSafe is the per-transaction recovery boundary: no single row can
// abort the rest of a batch.
func (e *Engine) categorizeSafe(txn model.Transaction) (result model.Categorization) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Recovered from panic while categorizing transaction",
				"transaction_id", txn.ID, "panic", r)
			result = model.Unclassified()
		}
	}()

	return e.Categorize(txn)
}

// Apply copies a categorization result onto the transaction record that will
// be persisted.
func Apply(txn *model.Transaction, c model.Categorization) {
	txn.GuessedType = c.GuessedType
	txn.GuessedCategory = c.GuessedCategory
	txn.IsPersonal = c.IsPersonal
	txn.ConfidenceScore = c.Score
	txn.RequiresReview = c.RequiresReview
	txn.PatternType = c.PatternType
	txn.PatternMetadata = c.PatternMetadata
}
