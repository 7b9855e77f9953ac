package repositories

import (
	"context"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// CategoryReader defines read operations for category reference data.
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category owned by ownerID.
	FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories for an owner, optionally by kind.
	ListCategories(ctx context.Context, ownerID string, kind *domain.TransactionKind) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category reference data.
type CategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeleteCategory(ctx context.Context, ownerID, categoryID string) error
}

// CategoryRepositoryFacade combines all category repository interfaces.
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
