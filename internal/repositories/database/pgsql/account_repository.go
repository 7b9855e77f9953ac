package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pachecofc/verde-financas-sub001/internal/apperrors"
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
	"github.com/pachecofc/verde-financas-sub001/internal/models"
	"github.com/pachecofc/verde-financas-sub001/internal/utils/mapping"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, owner_id, name, kind, currency_code, bank_name, color, created_at, created_by, last_updated_at, last_updated_by, balance`

// scanAccount scans a single account row into a model.
func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	var bankName sql.NullString
	err := row.Scan(
		&m.AccountID,
		&m.OwnerID,
		&m.Name,
		&m.Kind,
		&m.CurrencyCode,
		&bankName,
		&m.Color,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.Balance,
	)
	if err != nil {
		return models.Account{}, err
	}
	if bankName.Valid {
		m.BankName = bankName.String
	}
	return m, nil
}

// SaveAccount inserts a new account with its initial balance.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	var bankName sql.NullString
	if m.BankName != "" {
		bankName = sql.NullString{String: m.BankName, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OwnerID,
		m.Name,
		m.Kind,
		m.CurrencyCode,
		bankName,
		m.Color,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Balance,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, translatePgError(err))
	}
	return nil
}

// FindAccountByID retrieves an account by its ID, scoped to the owner.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, ownerID, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1 AND owner_id = $2;
	`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs, scoped to the owner.
// The map simply omits IDs that were not found; the caller checks completeness.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, ownerID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1) AND owner_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row during batch fetch: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows during batch fetch: %w", err)
	}

	return accountsMap, nil
}

// ListAccounts retrieves a paginated list of the owner's accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for owner %s: %w", ownerID, err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows for owner %s: %w", ownerID, rows.Err())
	}

	return accounts, nil
}

// UpdateAccount updates an account's display fields. Balance is never
// touched here; only the ledger engine mutates it.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $3, bank_name = $4, color = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1 AND owner_id = $2;
	`
	var bankName sql.NullString
	if m.BankName != "" {
		bankName = sql.NullString{String: m.BankName, Valid: true}
	}

	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OwnerID,
		m.Name,
		bankName,
		m.Color,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update account %s: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account. Accounts still referenced by transactions
// cannot be deleted; reversing or deleting the transactions first is required.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, ownerID, accountID string) error {
	var hasTransactions bool
	checkQuery := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE owner_id = $1 AND (account_id = $2 OR destination_account_id = $2)
		);
	`
	if err := r.Pool.QueryRow(ctx, checkQuery, ownerID, accountID).Scan(&hasTransactions); err != nil {
		return fmt.Errorf("failed to check transactions for account %s: %w", accountID, err)
	}
	if hasTransactions {
		return fmt.Errorf("%w: account %s still has transactions", apperrors.ErrConflict, accountID)
	}

	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1 AND owner_id = $2;`, accountID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate retrieves the owner's accounts by IDs and locks
// the rows for update. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, ownerID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1) AND owner_id = $2
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", translatePgError(err))
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", translatePgError(err))
	}

	// Check if all requested accounts were found and locked
	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// ApplyBalanceChangesInTx applies balance deltas and absolute sets, in order,
// within an enclosing transaction. Deltas use a single atomic SQL update;
// absolute sets overwrite the balance outright (adjustment semantics).
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, ownerID string, changes []domain.BalanceChange, userID string, now time.Time) error {
	if len(changes) == 0 {
		return nil
	}

	deltaQuery := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND owner_id = $2;
	`
	setQuery := `
		UPDATE accounts
		SET balance = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND owner_id = $2;
	`

	// Ordering matters: an update that reverses an old effect and reapplies a
	// new one sends the reversal first, so an absolute set must land after
	// any deltas queued before it. Execute sequentially rather than batching.
	for _, change := range changes {
		var (
			cmdTag pgconn.CommandTag
			err    error
		)
		if change.Absolute {
			cmdTag, err = tx.Exec(ctx, setQuery, change.AccountID, ownerID, change.Value, now, userID)
		} else {
			if change.Delta.IsZero() {
				continue
			}
			cmdTag, err = tx.Exec(ctx, deltaQuery, change.AccountID, ownerID, change.Delta, now, userID)
		}
		if err != nil {
			return fmt.Errorf("failed to apply balance change for account %s: %w", change.AccountID, translatePgError(err))
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, change.AccountID)
		}
	}

	return nil
}
