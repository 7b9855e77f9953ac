package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pachecofc/verde-financas-sub001/internal/apperrors"
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
	"github.com/pachecofc/verde-financas-sub001/internal/models"
	"github.com/pachecofc/verde-financas-sub001/internal/utils/mapping"
	"github.com/pachecofc/verde-financas-sub001/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountLedgerSupport
	assetRepo   portsrepo.HoldingLedgerSupport
}

// newPgxTransactionRepository creates the repository that persists engine
// mutations. It collaborates with the account and asset repositories to apply
// balance and holding changes inside its own database transaction.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountLedgerSupport, assetRepo portsrepo.HoldingLedgerSupport) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
		assetRepo:      assetRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, owner_id, kind, amount, occurred_on, description, account_id, destination_account_id, category_id, asset_id, external_id, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.Kind,
		&m.Amount,
		&m.OccurredOn,
		&m.Description,
		&m.AccountID,
		&m.DestinationAccountID,
		&m.CategoryID,
		&m.AssetID,
		&m.ExternalID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func equalNullableID(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// lockRowAgainstBasis selects the stored row FOR UPDATE and verifies that the
// fields its balance and holding effect derives from still match basis. The
// engine computed the reversal in its plan from basis outside this database
// transaction; if another writer changed the stored effect in between, that
// reversal no longer undoes what is actually applied, so the caller must
// retry from fresh state.
func lockRowAgainstBasis(ctx context.Context, tx pgx.Tx, ownerID, transactionID string, basis domain.Transaction) error {
	query := `
		SELECT kind, amount, account_id, destination_account_id, asset_id
		FROM transactions
		WHERE transaction_id = $1 AND owner_id = $2
		FOR UPDATE;
	`
	var m models.Transaction
	err := tx.QueryRow(ctx, query, transactionID, ownerID).Scan(
		&m.Kind,
		&m.Amount,
		&m.AccountID,
		&m.DestinationAccountID,
		&m.AssetID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock transaction %s: %w", transactionID, translatePgError(err))
	}

	if string(m.Kind) != string(basis.Kind) ||
		!m.Amount.Equal(basis.Amount) ||
		m.AccountID != basis.AccountID ||
		!equalNullableID(m.DestinationAccountID, basis.DestinationAccountID) ||
		!equalNullableID(m.AssetID, basis.AssetID) {
		return fmt.Errorf("%w: transaction %s was modified concurrently", apperrors.ErrConflict, transactionID)
	}
	return nil
}

// changedAccountIDs collects the distinct account IDs touched by the plan.
func changedAccountIDs(changes []domain.BalanceChange) []string {
	seen := make(map[string]bool, len(changes))
	ids := make([]string, 0, len(changes))
	for _, c := range changes {
		if !seen[c.AccountID] {
			seen[c.AccountID] = true
			ids = append(ids, c.AccountID)
		}
	}
	return ids
}

// applyPlanInTx locks the touched accounts and applies all balance and
// holding changes. Must run inside the enclosing transaction.
func (r *PgxTransactionRepository) applyPlanInTx(ctx context.Context, tx pgx.Tx, ownerID string, changes []domain.BalanceChange, holdings []domain.HoldingChange, userID string, now time.Time) error {
	accountIDs := changedAccountIDs(changes)
	if len(accountIDs) > 0 {
		if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, ownerID, accountIDs); err != nil {
			return fmt.Errorf("failed to lock accounts: %w", err)
		}
		if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, ownerID, changes, userID, now); err != nil {
			return fmt.Errorf("failed to apply balance changes: %w", err)
		}
	}

	for _, h := range holdings {
		if h.Amount.IsPositive() {
			if err := r.assetRepo.IncrementHoldingInTx(ctx, tx, ownerID, h.AssetID, h.Amount, userID, now); err != nil {
				return err
			}
		} else if h.Amount.IsNegative() {
			if err := r.assetRepo.DecrementHoldingInTx(ctx, tx, ownerID, h.AssetID, h.Amount.Neg(), userID, now); err != nil {
				return err
			}
		}
	}
	return nil
}

// SaveTransaction inserts the transaction row and applies its balance and
// holding effect within a single database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, changes []domain.BalanceChange, holdings []domain.HoldingChange) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.OwnerID,
		m.Kind,
		m.Amount,
		m.OccurredOn,
		m.Description,
		m.AccountID,
		m.DestinationAccountID,
		m.CategoryID,
		m.AssetID,
		m.ExternalID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, translatePgError(err))
	}

	if err := r.applyPlanInTx(ctx, tx, txn.OwnerID, changes, holdings, txn.CreatedBy, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction rewrites the transaction row and applies the combined
// reversal + reapplication effect within a single database transaction. The
// stored row is locked and checked against basis first so a stale reversal
// can never commit.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, basis domain.Transaction, changes []domain.BalanceChange, holdings []domain.HoldingChange) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := lockRowAgainstBasis(ctx, tx, txn.OwnerID, txn.TransactionID, basis); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET kind = $3, amount = $4, occurred_on = $5, description = $6,
		    account_id = $7, destination_account_id = $8, category_id = $9,
		    asset_id = $10, external_id = $11, last_updated_at = $12, last_updated_by = $13
		WHERE transaction_id = $1 AND owner_id = $2;
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.OwnerID,
		m.Kind,
		m.Amount,
		m.OccurredOn,
		m.Description,
		m.AccountID,
		m.DestinationAccountID,
		m.CategoryID,
		m.AssetID,
		m.ExternalID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, translatePgError(err))
	}

	if err := r.applyPlanInTx(ctx, tx, txn.OwnerID, changes, holdings, txn.LastUpdatedBy, m.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the row and applies the reversal effect within a
// single database transaction, after locking and checking the row against
// basis like UpdateTransaction does.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string, basis domain.Transaction, changes []domain.BalanceChange, holdings []domain.HoldingChange) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := lockRowAgainstBasis(ctx, tx, ownerID, transactionID, basis); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND owner_id = $2;`, transactionID, ownerID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, translatePgError(err))
	}

	if err := r.applyPlanInTx(ctx, tx, ownerID, changes, holdings, ownerID, time.Now().UTC()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID, scoped to the owner.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE transaction_id = $1 AND owner_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactionByExternalID retrieves a transaction by its import
// correlation id, scoped to the owner.
func (r *PgxTransactionRepository) FindTransactionByExternalID(ctx context.Context, ownerID, externalID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1 AND external_id = $2;
	`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, ownerID, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by external ID: %w", err)
	}

	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactions retrieves a filtered, token-paginated list of the owner's
// transactions ordered by occurrence date descending, then creation order.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id = $1
	`
	args := []interface{}{ownerID}

	addFilter := func(clause string, value interface{}) {
		args = append(args, value)
		baseQuery += " AND " + fmt.Sprintf(clause, len(args))
	}
	if filter.From != nil {
		addFilter("occurred_on >= $%d", *filter.From)
	}
	if filter.To != nil {
		addFilter("occurred_on <= $%d", *filter.To)
	}
	if filter.AccountID != nil {
		addFilter("(account_id = $%[1]d OR destination_account_id = $%[1]d)", *filter.AccountID)
	}
	if filter.CategoryID != nil {
		addFilter("category_id = $%d", *filter.CategoryID)
	}
	if filter.Kind != nil {
		addFilter("kind = $%d", string(*filter.Kind))
	}

	// Ordering must be stable: occurred_on DESC with created_at DESC as the
	// tie-breaker, matched by the cursor's tuple comparison.
	if nextToken != nil && *nextToken != "" {
		lastOccurredOn, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastOccurredOn, lastCreatedAt)
		baseQuery += fmt.Sprintf(" AND (occurred_on, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query := baseQuery + " ORDER BY occurred_on DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	// Determine the next token from the last item included in this page.
	var nextTokenVal *string
	if len(transactions) > limit {
		last := transactions[limit-1]
		token := pagination.EncodeToken(last.OccurredOn, last.CreatedAt)
		nextTokenVal = &token
		transactions = transactions[:limit]
	}

	return mapping.ToDomainTransactionSlice(transactions), nextTokenVal, nil
}
