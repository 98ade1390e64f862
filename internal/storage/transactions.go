package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/marchwood/taxledger/internal/model"
)

const transactionColumns = `id, hash, date, description, amount, direction,
	guessed_type, guessed_category, is_personal, confidence_score,
	requires_review, user_confirmed, pattern_type, pattern_metadata`

// SaveTransactions inserts new transactions. Rows whose hash already exists
// are skipped, which makes re-importing the same statement a no-op.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range transactions {
		txn := &transactions[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (
				id, hash, date, description, amount, direction,
				guessed_type, guessed_category, is_personal, confidence_score,
				requires_review, user_confirmed, pattern_type, pattern_metadata
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(hash) DO NOTHING
		`,
			txn.ID, txn.Hash, txn.Date, txn.Description,
			txn.Amount.StringFixed(2), string(txn.Direction),
			string(txn.GuessedType), txn.GuessedCategory, txn.IsPersonal,
			txn.ConfidenceScore, txn.RequiresReview, txn.UserConfirmed,
			string(txn.PatternType), txn.PatternMetadata,
		)
		if err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// GetAllTransactions returns every stored transaction ordered by date then ID.
func (s *SQLiteStorage) GetAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryTransactions(ctx, fmt.Sprintf(`
		SELECT %s FROM transactions ORDER BY date, id
	`, transactionColumns))
}

// GetTransactionsForReview returns transactions flagged for manual review.
func (s *SQLiteStorage) GetTransactionsForReview(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryTransactions(ctx, fmt.Sprintf(`
		SELECT %s FROM transactions
		WHERE requires_review = 1 AND user_confirmed = 0
		ORDER BY date, id
	`, transactionColumns))
}

// UpdateCategorization rewrites the categorization output fields of a stored
// transaction. The imported facts (description, amount, date) are immutable
// and deliberately not part of the update.
func (s *SQLiteStorage) UpdateCategorization(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET
			guessed_type = ?, guessed_category = ?, is_personal = ?,
			confidence_score = ?, requires_review = ?, user_confirmed = ?,
			pattern_type = ?, pattern_metadata = ?
		WHERE id = ?
	`,
		string(txn.GuessedType), txn.GuessedCategory, txn.IsPersonal,
		txn.ConfidenceScore, txn.RequiresReview, txn.UserConfirmed,
		string(txn.PatternType), txn.PatternMetadata,
		txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update categorization: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("transaction %s not found", txn.ID)
	}

	return nil
}

// TransactionExists reports whether a transaction with the given hash is
// already stored.
func (s *SQLiteStorage) TransactionExists(ctx context.Context, hash string) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(hash, "hash"); err != nil {
		return false, err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE hash = ?)`, hash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}
	return exists, nil
}

func (s *SQLiteStorage) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}

	return transactions, rows.Err()
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var txn model.Transaction
	var amount, direction, guessedType, patternType string

	err := rows.Scan(
		&txn.ID, &txn.Hash, &txn.Date, &txn.Description, &amount, &direction,
		&guessedType, &txn.GuessedCategory, &txn.IsPersonal, &txn.ConfidenceScore,
		&txn.RequiresReview, &txn.UserConfirmed, &patternType, &txn.PatternMetadata,
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to parse stored amount %q: %w", amount, err)
	}
	txn.Direction = model.TransactionDirection(direction)
	txn.GuessedType = model.TransactionType(guessedType)
	txn.PatternType = model.PatternType(patternType)

	return txn, nil
}
