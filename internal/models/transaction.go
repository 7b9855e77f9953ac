package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind mirrors domain.TransactionKind for DB storage.
type TransactionKind string

const (
	Income     TransactionKind = "INCOME"
	Expense    TransactionKind = "EXPENSE"
	Transfer   TransactionKind = "TRANSFER"
	Adjustment TransactionKind = "ADJUSTMENT"
)

// Transaction is the database representation of a ledger transaction.
// Nullable references are pointers so pgx scans NULL cleanly.
type Transaction struct {
	TransactionID        string          `db:"transaction_id"`
	OwnerID              string          `db:"owner_id"`
	Kind                 TransactionKind `db:"kind"`
	Amount               decimal.Decimal `db:"amount"`
	OccurredOn           time.Time       `db:"occurred_on"`
	Description          string          `db:"description"`
	AccountID            string          `db:"account_id"`
	DestinationAccountID *string         `db:"destination_account_id"`
	CategoryID           *string         `db:"category_id"`
	AssetID              *string         `db:"asset_id"`
	ExternalID           *string         `db:"external_id"`
	AuditFields
}
