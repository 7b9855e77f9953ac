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

type categoryService struct {
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, ownerID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		OwnerID:    ownerID,
		Name:       req.Name,
		Kind:       req.Kind,
		Color:      req.Color,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, ownerID string, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, ownerID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, err)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, ownerID string, kind *domain.TransactionKind) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, ownerID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, ownerID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, err)
	}

	updated := false
	if req.Name != nil {
		category.Name = *req.Name
		updated = true
	}
	if req.Color != nil {
		category.Color = *req.Color
		updated = true
	}
	if !updated {
		return category, nil
	}

	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = ownerID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, ownerID string, categoryID string) error {
	if err := s.categoryRepo.DeleteCategory(ctx, ownerID, categoryID); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	return nil
}
