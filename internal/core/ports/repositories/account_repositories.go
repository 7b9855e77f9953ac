package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// AccountReader defines read operations for account data.
// Every lookup is scoped to an owner: rows belonging to other owners are
// indistinguishable from rows that do not exist.
type AccountReader interface {
	// FindAccountByID retrieves a specific account owned by ownerID.
	FindAccountByID(ctx context.Context, ownerID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts owned by ownerID.
	FindAccountsByIDs(ctx context.Context, ownerID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts for an owner.
	ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's display fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account that has no remaining transactions.
	DeleteAccount(ctx context.Context, ownerID, accountID string) error
}

// AccountLedgerSupport defines the balance primitives used by the ledger
// engine. Both methods must run inside an enclosing database transaction.
type AccountLedgerSupport interface {
	// FindAccountsByIDsForUpdate selects the owner's accounts and locks the rows for update.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, ownerID string, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx applies atomic balance deltas and absolute sets in order.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, ownerID string, changes []domain.BalanceChange, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLedgerSupport
}
