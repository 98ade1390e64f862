// Package importer parses bank statement CSV exports into transactions.
package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marchwood/taxledger/internal/common"
	"github.com/marchwood/taxledger/internal/model"
)

// statementRow is the generic statement layout most UK banks can export:
// Date, Description, Amount, Direction. Amount may be signed instead of a
// direction column; a missing direction is derived from the sign.
type statementRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Direction   string `csv:"Direction"`
}

// dateLayouts are tried in order when parsing statement dates.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"2006-01-02",
	"02 Jan 2006",
}

// ParseStatement reads a bank statement CSV and returns transactions in file
// order, with IDs and dedupe hashes assigned. Rows that cannot be parsed are
// reported as errors rather than silently dropped; callers decide whether a
// partially bad file should be imported.
func ParseStatement(r io.Reader) ([]model.Transaction, error) {
	var rows []*statementRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnknownCSVLayout, err)
	}

	if len(rows) == 0 {
		return nil, common.ErrNoTransactions
	}

	transactions := make([]model.Transaction, 0, len(rows))
	for i, row := range rows {
		txn, err := convertRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err) // +2: header and 1-based lines
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

func convertRow(row *statementRow) (model.Transaction, error) {
	date, err := parseDate(strings.TrimSpace(row.Date))
	if err != nil {
		return model.Transaction{}, err
	}

	description := strings.TrimSpace(row.Description)
	if description == "" {
		return model.Transaction{}, fmt.Errorf("%w: empty description", common.ErrMalformedRow)
	}

	amount, err := decimal.NewFromString(cleanAmount(row.Amount))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: invalid amount %q", common.ErrMalformedRow, row.Amount)
	}

	direction, err := parseDirection(row.Direction, amount)
	if err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Amount:      amount.Abs(),
		Direction:   direction,
	}
	txn.Hash = txn.GenerateHash()

	return txn, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable date %q", common.ErrMalformedRow, value)
}

// cleanAmount strips currency symbols and thousands separators that some
// bank exports include.
func cleanAmount(value string) string {
	return strings.NewReplacer("£", "", ",", "", " ", "").Replace(strings.TrimSpace(value))
}

func parseDirection(value string, amount decimal.Decimal) (model.TransactionDirection, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "IN", "CREDIT", "CR":
		return model.DirectionIn, nil
	case "OUT", "DEBIT", "DR":
		return model.DirectionOut, nil
	case "":
		// No direction column: derive from the amount's sign.
		if amount.IsNegative() {
			return model.DirectionOut, nil
		}
		return model.DirectionIn, nil
	}
	return "", fmt.Errorf("%w: unknown direction %q", common.ErrMalformedRow, value)
}
