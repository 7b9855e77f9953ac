package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the balance semantics of a transaction.
type TransactionKind string

const (
	Income     TransactionKind = "INCOME"
	Expense    TransactionKind = "EXPENSE"
	Transfer   TransactionKind = "TRANSFER"
	Adjustment TransactionKind = "ADJUSTMENT"
)

// ValidTransactionKind reports whether k is one of the four recognized kinds.
func ValidTransactionKind(k TransactionKind) bool {
	switch k {
	case Income, Expense, Transfer, Adjustment:
		return true
	}
	return false
}

// Transaction represents a single financial event against an account.
// Destination is present only for transfers, category only for income/expense,
// and asset only for transfers into an investment account.
type Transaction struct {
	TransactionID        string          `json:"transactionID"` // Primary Key (UUID)
	OwnerID              string          `json:"ownerID"`       // FK -> users.user_id (NON-NULL)
	Kind                 TransactionKind `json:"kind"`
	Amount               decimal.Decimal `json:"amount"`      // Always positive
	OccurredOn           time.Time       `json:"occurredOn"`  // Calendar date of the event
	Description          string          `json:"description"` // User description (NON-NULL)
	AccountID            string          `json:"accountID"`   // Source account (NON-NULL)
	DestinationAccountID *string         `json:"destinationAccountID,omitempty"`
	CategoryID           *string         `json:"categoryID,omitempty"`
	AssetID              *string         `json:"assetID,omitempty"`
	ExternalID           *string         `json:"externalID,omitempty"` // Import correlation id
	AuditFields
}

// BalanceChange is one account balance mutation produced by the engine.
// When Absolute is set the account balance is overwritten with Value,
// otherwise Delta is added to it.
type BalanceChange struct {
	AccountID string
	Delta     decimal.Decimal
	Absolute  bool
	Value     decimal.Decimal
}

// HoldingChange is a mutation of the (owner, asset) investment holding.
// A positive Amount increments (creating the holding if absent); a negative
// Amount decrements, deleting the holding when its value falls to zero or below.
type HoldingChange struct {
	AssetID string
	Amount  decimal.Decimal
}

// TransactionFilter narrows transaction reads (listing and summary).
type TransactionFilter struct {
	From       *time.Time
	To         *time.Time
	AccountID  *string
	CategoryID *string
	Kind       *TransactionKind
}
