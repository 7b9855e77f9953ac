package services

import (
	"context"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	"github.com/pachecofc/verde-financas-sub001/internal/dto"
)

// AccountReaderSvc defines read operations for account data.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account for the owner.
	GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of the owner's accounts.
	ListAccounts(ctx context.Context, ownerID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data.
type AccountWriterSvc interface {
	// CreateAccount persists a new account with its initial balance.
	CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's display fields. The balance
	// is never mutated here; only the ledger engine touches it.
	UpdateAccount(ctx context.Context, ownerID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an account with no remaining transactions.
	DeleteAccount(ctx context.Context, ownerID string, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
