package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
	portssvc "github.com/pachecofc/verde-financas-sub001/internal/core/ports/services"
	"github.com/pachecofc/verde-financas-sub001/internal/dto"
	"github.com/pachecofc/verde-financas-sub001/internal/middleware"
)

type assetService struct {
	assetRepo portsrepo.AssetRepositoryFacade
}

// NewAssetService creates a new asset service.
func NewAssetService(assetRepo portsrepo.AssetRepositoryFacade) portssvc.AssetSvcFacade {
	return &assetService{assetRepo: assetRepo}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

func (s *assetService) CreateAsset(ctx context.Context, ownerID string, req dto.CreateAssetRequest) (*domain.Asset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	asset := domain.Asset{
		AssetID: uuid.NewString(),
		OwnerID: ownerID,
		Name:    req.Name,
		Ticker:  req.Ticker,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		logger.Error("Failed to save asset", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}
	return &asset, nil
}

func (s *assetService) GetAssetByID(ctx context.Context, ownerID string, assetID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByID(ctx, ownerID, assetID)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, err)
	}
	return asset, nil
}

func (s *assetService) ListAssets(ctx context.Context, ownerID string) ([]domain.Asset, error) {
	assets, err := s.assetRepo.ListAssets(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

func (s *assetService) DeleteAsset(ctx context.Context, ownerID string, assetID string) error {
	if err := s.assetRepo.DeleteAsset(ctx, ownerID, assetID); err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}
	return nil
}

func (s *assetService) ListHoldings(ctx context.Context, ownerID string) ([]domain.AssetHolding, error) {
	holdings, err := s.assetRepo.ListHoldings(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return holdings, nil
}
