package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind distinguishes ordinary spending accounts from investment accounts.
type AccountKind string

const (
	Ordinary   AccountKind = "ORDINARY"
	Investment AccountKind = "INVESTMENT"
)

// Account represents a financial account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID    string          `json:"accountID"`    // Primary Key (UUID)
	OwnerID      string          `json:"ownerID"`      // FK -> users.user_id (NON-NULL)
	Name         string          `json:"name"`         // User-defined name
	Kind         AccountKind     `json:"kind"`         // ORDINARY or INVESTMENT
	CurrencyCode string          `json:"currencyCode"` // ISO 4217 code
	BankName     string          `json:"bankName"`     // Nullable institution label
	Color        string          `json:"color"`        // Display color tag
	AuditFields                  // Embed CreatedAt, CreatedBy, etc.
	Balance      decimal.Decimal `json:"balance"` // Persisted running balance
}

// ValidAccountKind reports whether k is a recognized account kind.
func ValidAccountKind(k AccountKind) bool {
	return k == Ordinary || k == Investment
}
