package repositories

import (
	"context"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction owned by ownerID.
	FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)

	// FindTransactionByExternalID retrieves a transaction by its import correlation id.
	FindTransactionByExternalID(ctx context.Context, ownerID, externalID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, token-paginated list ordered by
	// occurrence date descending then creation order descending.
	ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter persists engine mutations. Each method applies the row
// write, all balance changes and all holding changes within a single database
// transaction: either everything commits or nothing does.
type TransactionWriter interface {
	// SaveTransaction inserts the transaction row and applies its balance effect.
	SaveTransaction(ctx context.Context, txn domain.Transaction, changes []domain.BalanceChange, holdings []domain.HoldingChange) error

	// UpdateTransaction locks the stored row, verifies it still carries the
	// effect-bearing fields of basis (the state the reversal in changes was
	// computed from), then rewrites the row and applies the combined
	// reversal + reapplication effect, in order. A concurrent mutation that
	// changed the stored effect returns ErrConflict.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, basis domain.Transaction, changes []domain.BalanceChange, holdings []domain.HoldingChange) error

	// DeleteTransaction locks the stored row, verifies it against basis the
	// same way, removes it and applies the reversal effect.
	DeleteTransaction(ctx context.Context, ownerID, transactionID string, basis domain.Transaction, changes []domain.BalanceChange, holdings []domain.HoldingChange) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
