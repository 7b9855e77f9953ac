package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// AssetReader defines read operations for asset reference data.
type AssetReader interface {
	// FindAssetByID retrieves a specific asset owned by ownerID.
	FindAssetByID(ctx context.Context, ownerID, assetID string) (*domain.Asset, error)

	// ListAssets retrieves all assets for an owner.
	ListAssets(ctx context.Context, ownerID string) ([]domain.Asset, error)
}

// AssetWriter defines write operations for asset reference data.
type AssetWriter interface {
	SaveAsset(ctx context.Context, asset domain.Asset) error
	DeleteAsset(ctx context.Context, ownerID, assetID string) error
}

// HoldingReader defines read operations for derived investment holdings.
type HoldingReader interface {
	// FindHoldingByAsset retrieves the holding for (owner, asset), if any.
	FindHoldingByAsset(ctx context.Context, ownerID, assetID string) (*domain.AssetHolding, error)

	// ListHoldings retrieves every live holding for an owner.
	ListHoldings(ctx context.Context, ownerID string) ([]domain.AssetHolding, error)
}

// HoldingLedgerSupport defines the holding primitives used by the ledger
// engine inside its enclosing database transaction.
type HoldingLedgerSupport interface {
	// IncrementHoldingInTx adds amount to the (owner, asset) holding,
	// creating it with value = amount when absent.
	IncrementHoldingInTx(ctx context.Context, tx pgx.Tx, ownerID, assetID string, amount decimal.Decimal, userID string, now time.Time) error

	// DecrementHoldingInTx subtracts amount from the (owner, asset) holding
	// and deletes the row when its value falls to zero or below. Absent
	// holdings are a no-op.
	DecrementHoldingInTx(ctx context.Context, tx pgx.Tx, ownerID, assetID string, amount decimal.Decimal, userID string, now time.Time) error
}

// AssetRepositoryFacade combines asset and holding repository interfaces.
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
	HoldingReader
	HoldingLedgerSupport
}
