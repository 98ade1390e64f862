package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/marchwood/taxledger/internal/common"
	"github.com/marchwood/taxledger/internal/model"
	"github.com/marchwood/taxledger/internal/rules"
)

// GetAllRules returns every rule ordered by (priority, id), the same order
// the engine evaluates them in.
func (s *SQLiteStorage) GetAllRules(ctx context.Context) ([]model.CategorizationRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, match_mode, pattern, maps_to, income_type, expense_category,
			priority, active, use_count, created_at, updated_at
		FROM categorization_rules
		ORDER BY priority, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ruleSet []model.CategorizationRule
	for rows.Next() {
		var rule model.CategorizationRule
		var matchMode, mapsTo string
		err := rows.Scan(
			&rule.ID, &matchMode, &rule.Pattern, &mapsTo,
			&rule.IncomeType, &rule.ExpenseCategory,
			&rule.Priority, &rule.Active, &rule.UseCount,
			&rule.CreatedAt, &rule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rule.MatchMode = model.MatchMode(matchMode)
		rule.MapsTo = model.RuleMapping(mapsTo)
		ruleSet = append(ruleSet, rule)
	}

	return ruleSet, rows.Err()
}

// CreateRule validates and inserts a new rule. Validation happens here, at
// save time, so broken patterns are reported to the user immediately instead
// of silently matching nothing during a batch.
func (s *SQLiteStorage) CreateRule(ctx context.Context, rule *model.CategorizationRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := rules.Validate(rule); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categorization_rules (
			match_mode, pattern, maps_to, income_type, expense_category,
			priority, active
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		string(rule.MatchMode), rule.Pattern, string(rule.MapsTo),
		rule.IncomeType, rule.ExpenseCategory, rule.Priority, rule.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get rule ID: %w", err)
	}

	rule.ID = id
	rule.CreatedAt = time.Now()
	rule.UpdatedAt = time.Now()

	return nil
}

// DeleteRule removes a rule by ID.
func (s *SQLiteStorage) DeleteRule(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM categorization_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}

// SetRuleActive toggles a rule without deleting it.
func (s *SQLiteStorage) SetRuleActive(ctx context.Context, id int64, active bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE categorization_rules SET active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return common.ErrNotFound
	}

	return nil
}
