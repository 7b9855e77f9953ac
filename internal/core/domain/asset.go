package domain

import (
	"github.com/shopspring/decimal"
)

// Asset is an investable instrument (fund, stock, fixed income product)
// that transfers into investment accounts can be attributed to.
type Asset struct {
	AssetID string `json:"assetID"` // Primary Key (UUID)
	OwnerID string `json:"ownerID"` // FK -> users.user_id (NON-NULL)
	Name    string `json:"name"`
	Ticker  string `json:"ticker"` // Nullable market symbol
	AuditFields
}

// AssetHolding is the accumulated invested value per (owner, asset).
// It exists only while its value is strictly positive: the engine creates it
// lazily on the first qualifying transfer and deletes it when reversals drain it.
type AssetHolding struct {
	HoldingID string          `json:"holdingID"` // Primary Key (UUID)
	OwnerID   string          `json:"ownerID"`
	AssetID   string          `json:"assetID"`
	Value     decimal.Decimal `json:"value"`
	AuditFields
}
