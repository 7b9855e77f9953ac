package dto

import (
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
// Only income and expense transactions are categorized.
type CreateCategoryRequest struct {
	Name  string                 `json:"name" binding:"required"`
	Kind  domain.TransactionKind `json:"kind" binding:"required,oneof=INCOME EXPENSE"`
	Color string                 `json:"color"`
}

// UpdateCategoryRequest defines the fields allowed for updating a category.
// Kind is immutable after creation; historical transactions depend on it.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string                 `json:"categoryID"`
	Name       string                 `json:"name"`
	Kind       domain.TransactionKind `json:"kind"`
	Color      string                 `json:"color,omitempty"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Kind:       c.Kind,
		Color:      c.Color,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = ToCategoryResponse(&c)
	}
	return res
}
