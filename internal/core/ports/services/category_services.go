package services

import (
	"context"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	"github.com/pachecofc/verde-financas-sub001/internal/dto"
)

// CategorySvcFacade manages income/expense category reference data.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, ownerID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, ownerID string, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, ownerID string, kind *domain.TransactionKind) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, ownerID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, ownerID string, categoryID string) error
}
