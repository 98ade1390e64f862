package model

import (
	"errors"
	"time"
)

// Model validation errors.
var (
	ErrInvalidMerchant = errors.New("invalid merchant record")
	ErrInvalidRule     = errors.New("invalid categorization rule")
)

// MatchMode determines how a rule's pattern is compared to a description.
type MatchMode string

// Match mode constants.
const (
	MatchContains MatchMode = "CONTAINS"
	MatchEquals   MatchMode = "EQUALS"
	MatchRegex    MatchMode = "REGEX"
)

// RuleMapping is the target a matching rule assigns to a transaction.
type RuleMapping string

// Rule mapping constants.
const (
	MapsToIncome  RuleMapping = "INCOME"
	MapsToExpense RuleMapping = "EXPENSE"
	MapsToIgnore  RuleMapping = "IGNORE"
)

// CategorizationRule is a user-authored pattern mapping transaction text to a
// category. Rules are evaluated in ascending priority order; among rules with
// equal priority the earliest-created (lowest ID) wins.
type CategorizationRule struct {
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Pattern         string
	MatchMode       MatchMode
	MapsTo          RuleMapping
	IncomeType      string // Populated when MapsTo is INCOME
	ExpenseCategory string // Populated when MapsTo is EXPENSE
	ID              int64
	Priority        int
	UseCount        int
	Active          bool
}

// Category returns the category this rule assigns, depending on its mapping.
func (r *CategorizationRule) Category() string {
	switch r.MapsTo {
	case MapsToIncome:
		return r.IncomeType
	case MapsToExpense:
		return r.ExpenseCategory
	}
	return ""
}

// TransactionType converts the rule mapping to a transaction type.
func (r *CategorizationRule) TransactionType() TransactionType {
	switch r.MapsTo {
	case MapsToIncome:
		return TypeIncome
	case MapsToExpense:
		return TypeExpense
	case MapsToIgnore:
		return TypeIgnore
	}
	return TypeUnclassified
}
