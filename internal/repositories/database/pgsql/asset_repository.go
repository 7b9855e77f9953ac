package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pachecofc/verde-financas-sub001/internal/apperrors"
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
	"github.com/pachecofc/verde-financas-sub001/internal/models"
	"github.com/pachecofc/verde-financas-sub001/internal/utils/mapping"
)

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for asset and holding data.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, owner_id, name, ticker, created_at, created_by, last_updated_at, last_updated_by`
const holdingColumns = `holding_id, owner_id, asset_id, value, created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row pgx.Row) (models.Asset, error) {
	var m models.Asset
	var ticker sql.NullString
	err := row.Scan(
		&m.AssetID,
		&m.OwnerID,
		&m.Name,
		&ticker,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Asset{}, err
	}
	if ticker.Valid {
		m.Ticker = ticker.String
	}
	return m, nil
}

func scanHolding(row pgx.Row) (models.AssetHolding, error) {
	var m models.AssetHolding
	err := row.Scan(
		&m.HoldingID,
		&m.OwnerID,
		&m.AssetID,
		&m.Value,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAsset inserts a new asset.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	m := mapping.ToModelAsset(asset)

	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	var ticker sql.NullString
	if m.Ticker != "" {
		ticker = sql.NullString{String: m.Ticker, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.AssetID,
		m.OwnerID,
		m.Name,
		ticker,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save asset %s: %w", m.AssetID, translatePgError(err))
	}
	return nil
}

// FindAssetByID retrieves an asset by its ID, scoped to the owner.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, ownerID, assetID string) (*domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE asset_id = $1 AND owner_id = $2;
	`
	m, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by ID %s: %w", assetID, err)
	}

	asset := mapping.ToDomainAsset(m)
	return &asset, nil
}

// ListAssets retrieves all assets for an owner.
func (r *PgxAssetRepository) ListAssets(ctx context.Context, ownerID string) ([]domain.Asset, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE owner_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		m, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		assets = append(assets, mapping.ToDomainAsset(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating asset rows: %w", rows.Err())
	}

	return assets, nil
}

// DeleteAsset removes an asset. Assets still referenced by transactions or a
// live holding cannot be deleted.
func (r *PgxAssetRepository) DeleteAsset(ctx context.Context, ownerID, assetID string) error {
	var inUse bool
	checkQuery := `
		SELECT EXISTS (
			SELECT 1 FROM transactions WHERE owner_id = $1 AND asset_id = $2
		) OR EXISTS (
			SELECT 1 FROM asset_holdings WHERE owner_id = $1 AND asset_id = $2
		);
	`
	if err := r.Pool.QueryRow(ctx, checkQuery, ownerID, assetID).Scan(&inUse); err != nil {
		return fmt.Errorf("failed to check usage for asset %s: %w", assetID, err)
	}
	if inUse {
		return fmt.Errorf("%w: asset %s is still in use", apperrors.ErrConflict, assetID)
	}

	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM assets WHERE asset_id = $1 AND owner_id = $2;`, assetID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindHoldingByAsset retrieves the holding for (owner, asset), if any.
func (r *PgxAssetRepository) FindHoldingByAsset(ctx context.Context, ownerID, assetID string) (*domain.AssetHolding, error) {
	query := `
		SELECT ` + holdingColumns + `
		FROM asset_holdings
		WHERE owner_id = $1 AND asset_id = $2;
	`
	m, err := scanHolding(r.Pool.QueryRow(ctx, query, ownerID, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find holding for asset %s: %w", assetID, err)
	}

	holding := mapping.ToDomainHolding(m)
	return &holding, nil
}

// ListHoldings retrieves every live holding for an owner.
func (r *PgxAssetRepository) ListHoldings(ctx context.Context, ownerID string) ([]domain.AssetHolding, error) {
	query := `
		SELECT ` + holdingColumns + `
		FROM asset_holdings
		WHERE owner_id = $1
		ORDER BY asset_id;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	holdings := []domain.AssetHolding{}
	for rows.Next() {
		m, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}
		holdings = append(holdings, mapping.ToDomainHolding(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating holding rows: %w", rows.Err())
	}

	return holdings, nil
}

// IncrementHoldingInTx adds amount to the (owner, asset) holding within the
// engine's transaction, creating the row when absent.
func (r *PgxAssetRepository) IncrementHoldingInTx(ctx context.Context, tx pgx.Tx, ownerID, assetID string, amount decimal.Decimal, userID string, now time.Time) error {
	query := `
		INSERT INTO asset_holdings (` + holdingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $5, $6)
		ON CONFLICT (owner_id, asset_id)
		DO UPDATE SET value = asset_holdings.value + EXCLUDED.value,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := tx.Exec(ctx, query, uuid.NewString(), ownerID, assetID, amount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to increment holding for asset %s: %w", assetID, translatePgError(err))
	}
	return nil
}

// DecrementHoldingInTx subtracts amount from the (owner, asset) holding and
// removes the row when its value falls to zero or below. A missing holding is
// a no-op so that reversals stay idempotent against already-removed rows.
func (r *PgxAssetRepository) DecrementHoldingInTx(ctx context.Context, tx pgx.Tx, ownerID, assetID string, amount decimal.Decimal, userID string, now time.Time) error {
	updateQuery := `
		UPDATE asset_holdings
		SET value = value - $3, last_updated_at = $4, last_updated_by = $5
		WHERE owner_id = $1 AND asset_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, ownerID, assetID, amount, now, userID); err != nil {
		return fmt.Errorf("failed to decrement holding for asset %s: %w", assetID, translatePgError(err))
	}

	deleteQuery := `
		DELETE FROM asset_holdings
		WHERE owner_id = $1 AND asset_id = $2 AND value <= 0;
	`
	if _, err := tx.Exec(ctx, deleteQuery, ownerID, assetID); err != nil {
		return fmt.Errorf("failed to prune empty holding for asset %s: %w", assetID, translatePgError(err))
	}
	return nil
}
