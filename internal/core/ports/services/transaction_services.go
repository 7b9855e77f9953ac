package services

import (
	"context"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	"github.com/pachecofc/verde-financas-sub001/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions.
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction for the owner.
	GetTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a filtered, token-paginated transaction list.
	ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc is the ledger balance engine surface: every mutation
// keeps account balances and asset holdings consistent with the full history
// of live transactions.
type TransactionWriterSvc interface {
	// CreateTransaction validates the payload, applies its balance effect and
	// persists the transaction atomically.
	CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction reverses the stored transaction's effect, merges the
	// partial payload and reapplies the new effect atomically.
	UpdateTransaction(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction reverses the stored transaction's effect and removes it.
	DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error
}

// TransactionSvcFacade combines all transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
