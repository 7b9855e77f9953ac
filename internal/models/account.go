package models

import (
	"github.com/shopspring/decimal"
)

// AccountKind mirrors domain.AccountKind for DB storage.
type AccountKind string

const (
	Ordinary   AccountKind = "ORDINARY"
	Investment AccountKind = "INVESTMENT"
)

// Account is the database representation of a financial account.
type Account struct {
	AccountID    string          `db:"account_id"`
	OwnerID      string          `db:"owner_id"`
	Name         string          `db:"name"`
	Kind         AccountKind     `db:"kind"`
	CurrencyCode string          `db:"currency_code"`
	BankName     string          `db:"bank_name"` // Nullable
	Color        string          `db:"color"`
	AuditFields
	Balance decimal.Decimal `db:"balance"`
}
