package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/marchwood/taxledger/internal/common"
	"github.com/marchwood/taxledger/internal/model"
)

// aliasSeparator joins merchant aliases for storage in a single column.
const aliasSeparator = "|"

// GetAllMerchants returns the merchant table in insertion (rowid) order, so
// matcher tie-breaks by table order are stable across runs.
func (s *SQLiteStorage) GetAllMerchants(ctx context.Context) ([]model.MerchantRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT canonical_name, aliases, default_category, default_type,
			is_personal_by_default, confidence_boost, industry, is_custom,
			use_count, last_updated
		FROM merchants
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var merchants []model.MerchantRecord
	for rows.Next() {
		var record model.MerchantRecord
		var aliases, defaultType string
		err := rows.Scan(
			&record.CanonicalName, &aliases, &record.DefaultCategory, &defaultType,
			&record.IsPersonalByDefault, &record.ConfidenceBoost, &record.Industry,
			&record.IsCustom, &record.UseCount, &record.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		record.DefaultType = model.TransactionType(defaultType)
		record.Aliases = splitAliases(aliases)
		merchants = append(merchants, record)
	}

	return merchants, rows.Err()
}

// SaveMerchant inserts or updates a merchant record. This is the
// add-custom-merchant path; the engine itself never writes merchants.
func (s *SQLiteStorage) SaveMerchant(ctx context.Context, record *model.MerchantRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: merchant record", ErrNilParameter)
	}
	if err := record.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertMerchantTx(ctx, tx, record); err != nil {
		return err
	}

	return tx.Commit()
}

func insertMerchantTx(ctx context.Context, tx *sql.Tx, record *model.MerchantRecord) error {
	if record.LastUpdated.IsZero() {
		record.LastUpdated = time.Now()
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO merchants (
			canonical_name, aliases, default_category, default_type,
			is_personal_by_default, confidence_boost, industry, is_custom,
			use_count, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(canonical_name) DO UPDATE SET
			aliases = excluded.aliases,
			default_category = excluded.default_category,
			default_type = excluded.default_type,
			is_personal_by_default = excluded.is_personal_by_default,
			confidence_boost = excluded.confidence_boost,
			industry = excluded.industry,
			is_custom = excluded.is_custom,
			last_updated = excluded.last_updated
	`,
		record.CanonicalName, joinAliases(record.Aliases), record.DefaultCategory,
		string(record.DefaultType), record.IsPersonalByDefault, record.ConfidenceBoost,
		record.Industry, record.IsCustom, record.UseCount, record.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save merchant %s: %w", record.CanonicalName, err)
	}

	return nil
}

// IncrementMerchantUseCount bumps the advisory usage counter for statistics.
// Best-effort: a missing record is reported but not correctness-critical.
func (s *SQLiteStorage) IncrementMerchantUseCount(ctx context.Context, canonicalName string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(canonicalName, "canonicalName"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE merchants SET use_count = use_count + 1 WHERE canonical_name = ?`,
		canonicalName)
	if err != nil {
		return fmt.Errorf("failed to increment merchant use count: %w", err)
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

func joinAliases(aliases []string) string {
	return strings.Join(aliases, aliasSeparator)
}

func splitAliases(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, aliasSeparator)
}
