package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marchwood/taxledger/internal/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    *model.CategorizationRule
		wantErr bool
	}{
		{
			name: "valid contains rule",
			rule: &model.CategorizationRule{
				Pattern:         "TESCO",
				MatchMode:       model.MatchContains,
				MapsTo:          model.MapsToExpense,
				ExpenseCategory: "Groceries",
			},
		},
		{
			name: "valid regex rule",
			rule: &model.CategorizationRule{
				Pattern:    "^CLIENT \\d+",
				MatchMode:  model.MatchRegex,
				MapsTo:     model.MapsToIncome,
				IncomeType: "Self-employment",
			},
		},
		{
			name: "valid ignore rule needs no category",
			rule: &model.CategorizationRule{
				Pattern:   "TFR TO SAVINGS",
				MatchMode: model.MatchEquals,
				MapsTo:    model.MapsToIgnore,
			},
		},
		{
			name:    "nil rule",
			rule:    nil,
			wantErr: true,
		},
		{
			name: "empty pattern",
			rule: &model.CategorizationRule{
				Pattern:         "   ",
				MatchMode:       model.MatchContains,
				MapsTo:          model.MapsToExpense,
				ExpenseCategory: "Groceries",
			},
			wantErr: true,
		},
		{
			name: "invalid regex",
			rule: &model.CategorizationRule{
				Pattern:         "([unclosed",
				MatchMode:       model.MatchRegex,
				MapsTo:          model.MapsToExpense,
				ExpenseCategory: "Groceries",
			},
			wantErr: true,
		},
		{
			name: "unknown match mode",
			rule: &model.CategorizationRule{
				Pattern:         "TESCO",
				MatchMode:       "GLOB",
				MapsTo:          model.MapsToExpense,
				ExpenseCategory: "Groceries",
			},
			wantErr: true,
		},
		{
			name: "income rule without income type",
			rule: &model.CategorizationRule{
				Pattern:   "CLIENT",
				MatchMode: model.MatchContains,
				MapsTo:    model.MapsToIncome,
			},
			wantErr: true,
		},
		{
			name: "expense rule without category",
			rule: &model.CategorizationRule{
				Pattern:   "TESCO",
				MatchMode: model.MatchContains,
				MapsTo:    model.MapsToExpense,
			},
			wantErr: true,
		},
		{
			name: "unknown mapping",
			rule: &model.CategorizationRule{
				Pattern:   "TESCO",
				MatchMode: model.MatchContains,
				MapsTo:    "TRANSFER",
			},
			wantErr: true,
		},
		{
			name: "negative priority",
			rule: &model.CategorizationRule{
				Pattern:         "TESCO",
				MatchMode:       model.MatchContains,
				MapsTo:          model.MapsToExpense,
				ExpenseCategory: "Groceries",
				Priority:        -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.rule)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidRule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
