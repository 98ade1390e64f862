// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates whether money moved into or out of the account.
type TransactionDirection string

// Transaction direction constants.
const (
	DirectionIn  TransactionDirection = "IN"
	DirectionOut TransactionDirection = "OUT"
)

// TransactionType is the categorization outcome for a transaction.
type TransactionType string

// Transaction type constants.
const (
	TypeIncome       TransactionType = "INCOME"
	TypeExpense      TransactionType = "EXPENSE"
	TypeIgnore       TransactionType = "IGNORE"
	TypeUnclassified TransactionType = ""
)

// Transaction represents a single bank statement line.
// Description, Amount, Date and Direction are immutable imported facts;
// the Guessed* fields are set by the categorization engine and may later
// be overridden by the user during review.
type Transaction struct {
	Date            time.Time
	ID              string
	Description     string // Raw statement description, never modified after import
	Hash            string
	Direction       TransactionDirection
	GuessedType     TransactionType
	GuessedCategory string
	PatternType     PatternType
	PatternMetadata string
	Amount          decimal.Decimal
	ConfidenceScore int
	IsPersonal      bool
	RequiresReview  bool
	UserConfirmed   bool
}

// GenerateHash creates a stable hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount.StringFixed(2),
		t.Description,
		t.Direction)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
