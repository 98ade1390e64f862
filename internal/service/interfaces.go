// Package service defines the shared interfaces between the CLI commands and
// the persistence layer.
package service

import (
	"context"

	"github.com/marchwood/taxledger/internal/model"
)

// TransactionStore persists imported transactions and their categorization.
type TransactionStore interface {
	// SaveTransactions inserts new transactions, skipping duplicates by hash.
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	// GetAllTransactions returns every stored transaction ordered by date.
	GetAllTransactions(ctx context.Context) ([]model.Transaction, error)
	// GetTransactionsForReview returns transactions flagged for manual review.
	GetTransactionsForReview(ctx context.Context) ([]model.Transaction, error)
	// UpdateCategorization rewrites the categorization fields of a transaction.
	UpdateCategorization(ctx context.Context, txn *model.Transaction) error
	// TransactionExists reports whether a transaction with the hash is stored.
	TransactionExists(ctx context.Context, hash string) (bool, error)
}

// MerchantStore supplies and extends the known merchant table.
type MerchantStore interface {
	// GetAllMerchants returns the merchant table in insertion order.
	GetAllMerchants(ctx context.Context) ([]model.MerchantRecord, error)
	// SaveMerchant inserts or updates a merchant record.
	SaveMerchant(ctx context.Context, record *model.MerchantRecord) error
	// IncrementMerchantUseCount bumps the advisory usage counter.
	IncrementMerchantUseCount(ctx context.Context, canonicalName string) error
}

// RuleStore manages user-authored categorization rules.
type RuleStore interface {
	// GetAllRules returns every rule ordered by (priority, id).
	GetAllRules(ctx context.Context) ([]model.CategorizationRule, error)
	// CreateRule validates and inserts a rule, assigning its ID.
	CreateRule(ctx context.Context, rule *model.CategorizationRule) error
	// DeleteRule removes a rule by ID.
	DeleteRule(ctx context.Context, id int64) error
	// SetRuleActive toggles a rule without deleting it.
	SetRuleActive(ctx context.Context, id int64, active bool) error
}

// Storage combines all persistence concerns behind one handle.
type Storage interface {
	TransactionStore
	MerchantStore
	RuleStore
	Close() error
}
