package models

import (
	"github.com/shopspring/decimal"
)

// Asset is the database representation of an investable instrument.
type Asset struct {
	AssetID string `db:"asset_id"`
	OwnerID string `db:"owner_id"`
	Name    string `db:"name"`
	Ticker  string `db:"ticker"` // Nullable
	AuditFields
}

// AssetHolding is the database representation of the accumulated invested
// value per (owner, asset). Rows never persist with value <= 0.
type AssetHolding struct {
	HoldingID string          `db:"holding_id"`
	OwnerID   string          `db:"owner_id"`
	AssetID   string          `db:"asset_id"`
	Value     decimal.Decimal `db:"value"`
	AuditFields
}
