package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/marchwood/taxledger/internal/model"
)

// Validate checks a rule for configuration problems at save time. Batch
// evaluation never fails on a bad rule, so this is the only place a user
// learns their pattern is broken.
func Validate(rule *model.CategorizationRule) error {
	if rule == nil {
		return fmt.Errorf("%w: rule is nil", model.ErrInvalidRule)
	}

	if strings.TrimSpace(rule.Pattern) == "" {
		return fmt.Errorf("%w: pattern is empty", model.ErrInvalidRule)
	}

	switch rule.MatchMode {
	case model.MatchContains, model.MatchEquals:
	case model.MatchRegex:
		if _, err := regexp.Compile("(?i)" + rule.Pattern); err != nil {
			return fmt.Errorf("%w: invalid regex %q: %v", model.ErrInvalidRule, rule.Pattern, err)
		}
	default:
		return fmt.Errorf("%w: unknown match mode %q", model.ErrInvalidRule, rule.MatchMode)
	}

	switch rule.MapsTo {
	case model.MapsToIncome:
		if strings.TrimSpace(rule.IncomeType) == "" {
			return fmt.Errorf("%w: income rules require an income type", model.ErrInvalidRule)
		}
	case model.MapsToExpense:
		if strings.TrimSpace(rule.ExpenseCategory) == "" {
			return fmt.Errorf("%w: expense rules require an expense category", model.ErrInvalidRule)
		}
	case model.MapsToIgnore:
	default:
		return fmt.Errorf("%w: unknown mapping %q", model.ErrInvalidRule, rule.MapsTo)
	}

	if rule.Priority < 0 {
		return fmt.Errorf("%w: priority cannot be negative", model.ErrInvalidRule)
	}

	return nil
}
