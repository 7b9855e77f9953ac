package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pachecofc/verde-financas-sub001/internal/apperrors"
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
	"github.com/pachecofc/verde-financas-sub001/internal/models"
	"github.com/pachecofc/verde-financas-sub001/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, owner_id, name, kind, color, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.OwnerID,
		&m.Name,
		&m.Kind,
		&m.Color,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.OwnerID,
		m.Name,
		m.Kind,
		m.Color,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, translatePgError(err))
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID, scoped to the owner.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, ownerID, categoryID string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1 AND owner_id = $2;
	`
	m, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	cat := mapping.ToDomainCategory(m)
	return &cat, nil
}

// ListCategories retrieves the owner's categories, optionally filtered by kind.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, ownerID string, kind *domain.TransactionKind) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner_id = $1 AND ($2::text IS NULL OR kind = $2)
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rows.Err())
	}

	return categories, nil
}

// UpdateCategory updates a category's display fields. Kind is immutable.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)

	query := `
		UPDATE categories
		SET name = $3, color = $4, last_updated_at = $5, last_updated_by = $6
		WHERE category_id = $1 AND owner_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.OwnerID,
		m.Name,
		m.Color,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update category %s: %w", m.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category. Categories still referenced by
// transactions cannot be deleted.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, ownerID, categoryID string) error {
	var hasTransactions bool
	checkQuery := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE owner_id = $1 AND category_id = $2
		);
	`
	if err := r.Pool.QueryRow(ctx, checkQuery, ownerID, categoryID).Scan(&hasTransactions); err != nil {
		return fmt.Errorf("failed to check transactions for category %s: %w", categoryID, err)
	}
	if hasTransactions {
		return fmt.Errorf("%w: category %s still has transactions", apperrors.ErrConflict, categoryID)
	}

	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1 AND owner_id = $2;`, categoryID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
