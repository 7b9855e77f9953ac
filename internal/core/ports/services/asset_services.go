package services

import (
	"context"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	"github.com/pachecofc/verde-financas-sub001/internal/dto"
)

// AssetSvcFacade manages asset reference data and exposes derived holdings.
// Holding values themselves are only ever mutated by the ledger engine.
type AssetSvcFacade interface {
	CreateAsset(ctx context.Context, ownerID string, req dto.CreateAssetRequest) (*domain.Asset, error)
	GetAssetByID(ctx context.Context, ownerID string, assetID string) (*domain.Asset, error)
	ListAssets(ctx context.Context, ownerID string) ([]domain.Asset, error)
	DeleteAsset(ctx context.Context, ownerID string, assetID string) error

	// ListHoldings retrieves the owner's live investment holdings.
	ListHoldings(ctx context.Context, ownerID string) ([]domain.AssetHolding, error)
}
