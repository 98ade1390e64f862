package model

import "time"

// MerchantRecord is a known payee or payer brand with categorization defaults.
// Records are seeded from a fixed list at first run; users may append custom
// merchants but the engine never mutates or deletes them.
type MerchantRecord struct {
	LastUpdated         time.Time
	CanonicalName       string // Normalized uppercase identifier, e.g. "TESCO"
	DefaultCategory     string
	Industry            string
	Aliases             []string
	DefaultType         TransactionType
	ConfidenceBoost     int // 0-30 trust weight applied when this merchant matches
	UseCount            int
	IsPersonalByDefault bool
	IsCustom            bool
}

// Validate ensures the merchant record has usable data.
func (m *MerchantRecord) Validate() error {
	if m.CanonicalName == "" {
		return ErrInvalidMerchant
	}
	if m.ConfidenceBoost < 0 || m.ConfidenceBoost > 30 {
		return ErrInvalidMerchant
	}
	switch m.DefaultType {
	case TypeIncome, TypeExpense:
	default:
		return ErrInvalidMerchant
	}
	return nil
}
