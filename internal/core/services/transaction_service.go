package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pachecofc/verde-financas-sub001/internal/apperrors"
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
	portssvc "github.com/pachecofc/verde-financas-sub001/internal/core/ports/services"
	"github.com/pachecofc/verde-financas-sub001/internal/dto"
	"github.com/pachecofc/verde-financas-sub001/internal/middleware"
)

var (
	ErrSameAccountTransfer  = errors.New("transfer source and destination accounts must differ")
	ErrDestinationRequired  = errors.New("transfer requires a destination account")
	ErrCategoryRequired     = errors.New("income and expense transactions require a category")
	ErrCategoryKindMismatch = errors.New("category kind does not match transaction kind")
)

// transactionService is the ledger balance engine. Every mutation validates
// referenced entities against the owner, computes the balance effect (and the
// reversal of the prior effect on update/delete) and hands the whole plan to
// the repository, which applies it atomically.
type transactionService struct {
	txnRepo      portsrepo.TransactionRepositoryFacade
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryReader
	assetRepo    portsrepo.AssetReader
	dedupRepo    portsrepo.DedupRepository
}

// NewTransactionService creates the ledger engine. dedupRepo may be nil, in
// which case external-ID reservations are skipped and only the database's
// unique index guards against duplicate imports.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	assetRepo portsrepo.AssetReader,
	dedupRepo portsrepo.DedupRepository,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		assetRepo:    assetRepo,
		dedupRepo:    dedupRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// forwardChanges computes the balance effect of applying txn.
func forwardChanges(txn *domain.Transaction) []domain.BalanceChange {
	switch txn.Kind {
	case domain.Income:
		return []domain.BalanceChange{{AccountID: txn.AccountID, Delta: txn.Amount}}
	case domain.Expense:
		return []domain.BalanceChange{{AccountID: txn.AccountID, Delta: txn.Amount.Neg()}}
	case domain.Transfer:
		return []domain.BalanceChange{
			{AccountID: txn.AccountID, Delta: txn.Amount.Neg()},
			{AccountID: *txn.DestinationAccountID, Delta: txn.Amount},
		}
	case domain.Adjustment:
		// Absolute overwrite, not a delta.
		return []domain.BalanceChange{{AccountID: txn.AccountID, Absolute: true, Value: txn.Amount}}
	}
	return nil
}

// reversalChanges computes the inverse of txn's balance effect. Adjustments
// are not invertible (the pre-adjustment balance was never stored) and yield
// no reversal, matching the reference behavior.
func reversalChanges(txn *domain.Transaction) []domain.BalanceChange {
	switch txn.Kind {
	case domain.Income:
		return []domain.BalanceChange{{AccountID: txn.AccountID, Delta: txn.Amount.Neg()}}
	case domain.Expense:
		return []domain.BalanceChange{{AccountID: txn.AccountID, Delta: txn.Amount}}
	case domain.Transfer:
		return []domain.BalanceChange{
			{AccountID: txn.AccountID, Delta: txn.Amount},
			{AccountID: *txn.DestinationAccountID, Delta: txn.Amount.Neg()},
		}
	}
	return nil
}

// forwardHoldings returns the holding increment for a qualifying transfer.
// AssetID is only ever persisted on transfers into investment accounts, so
// its presence is sufficient here.
func forwardHoldings(txn *domain.Transaction) []domain.HoldingChange {
	if txn.Kind == domain.Transfer && txn.AssetID != nil {
		return []domain.HoldingChange{{AssetID: *txn.AssetID, Amount: txn.Amount}}
	}
	return nil
}

// reversalHoldings returns the holding decrement that releases a qualifying
// transfer's invested value.
func reversalHoldings(txn *domain.Transaction) []domain.HoldingChange {
	if txn.Kind == domain.Transfer && txn.AssetID != nil {
		return []domain.HoldingChange{{AssetID: *txn.AssetID, Amount: txn.Amount.Neg()}}
	}
	return nil
}

// validateAndResolve enforces the creation rules against txn, resolving every
// reference through owner-scoped lookups, and nulls references that the kind
// does not retain. It mutates txn in place.
func (s *transactionService) validateAndResolve(ctx context.Context, ownerID string, txn *domain.Transaction) error {
	// An empty asset reference means "no asset"; it must never survive a
	// nil check on the holding path.
	txn.AssetID = normalizeOptionalID(txn.AssetID)

	if strings.TrimSpace(txn.Description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	if txn.OccurredOn.IsZero() {
		return fmt.Errorf("%w: occurrence date is required", apperrors.ErrValidation)
	}
	if txn.AccountID == "" {
		return fmt.Errorf("%w: source account is required", apperrors.ErrValidation)
	}
	if !domain.ValidTransactionKind(txn.Kind) {
		return fmt.Errorf("%w: unrecognized transaction kind %q", apperrors.ErrValidation, txn.Kind)
	}
	if txn.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	if txn.Kind == domain.Transfer {
		if txn.DestinationAccountID == nil || *txn.DestinationAccountID == "" {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDestinationRequired)
		}
		if *txn.DestinationAccountID == txn.AccountID {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrSameAccountTransfer)
		}
	}

	if txn.Kind == domain.Income || txn.Kind == domain.Expense {
		if txn.CategoryID == nil || *txn.CategoryID == "" {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCategoryRequired)
		}
		category, err := s.categoryRepo.FindCategoryByID(ctx, ownerID, *txn.CategoryID)
		if err != nil {
			return fmt.Errorf("category %s: %w", *txn.CategoryID, err)
		}
		if category.Kind != txn.Kind {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCategoryKindMismatch)
		}
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, ownerID, txn.AccountID); err != nil {
		return fmt.Errorf("source account %s: %w", txn.AccountID, err)
	}

	destInvestment := false
	if txn.Kind == domain.Transfer {
		destination, err := s.accountRepo.FindAccountByID(ctx, ownerID, *txn.DestinationAccountID)
		if err != nil {
			return fmt.Errorf("destination account %s: %w", *txn.DestinationAccountID, err)
		}
		destInvestment = destination.Kind == domain.Investment
		if destInvestment && txn.AssetID != nil {
			if _, err := s.assetRepo.FindAssetByID(ctx, ownerID, *txn.AssetID); err != nil {
				return fmt.Errorf("asset %s: %w", *txn.AssetID, err)
			}
		}
	}

	// Null out the references this kind does not retain.
	switch txn.Kind {
	case domain.Transfer:
		txn.CategoryID = nil
		if !destInvestment {
			txn.AssetID = nil
		}
	case domain.Adjustment:
		txn.CategoryID = nil
		txn.DestinationAccountID = nil
		txn.AssetID = nil
	default:
		txn.DestinationAccountID = nil
		txn.AssetID = nil
	}
	return nil
}

// CreateTransaction validates the payload, computes its balance effect and
// persists both together, all-or-nothing.
func (s *transactionService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:        uuid.NewString(),
		OwnerID:              ownerID,
		Kind:                 req.Kind,
		Amount:               req.Amount,
		OccurredOn:           req.OccurredOn,
		Description:          strings.TrimSpace(req.Description),
		AccountID:            req.AccountID,
		DestinationAccountID: req.DestinationAccountID,
		CategoryID:           req.CategoryID,
		AssetID:              req.AssetID,
		ExternalID:           normalizeOptionalID(req.ExternalID),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.validateAndResolve(ctx, ownerID, &txn); err != nil {
		return nil, err
	}

	reserved := false
	if txn.ExternalID != nil {
		if existing, err := s.txnRepo.FindTransactionByExternalID(ctx, ownerID, *txn.ExternalID); err == nil && existing != nil {
			return nil, fmt.Errorf("%w: transaction with external id %s already imported", apperrors.ErrDuplicate, *txn.ExternalID)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check external id: %w", err)
		}
		if s.dedupRepo != nil {
			ok, err := s.dedupRepo.ReserveExternalID(ctx, ownerID, *txn.ExternalID)
			if err != nil {
				logger.Warn("External id reservation unavailable, relying on unique index", slog.String("error", err.Error()))
			} else if !ok {
				return nil, fmt.Errorf("%w: import of external id %s already in flight", apperrors.ErrDuplicate, *txn.ExternalID)
			} else {
				reserved = true
			}
		}
	}

	err := s.txnRepo.SaveTransaction(ctx, txn, forwardChanges(&txn), forwardHoldings(&txn))
	if err != nil {
		if reserved {
			if relErr := s.dedupRepo.ReleaseExternalID(ctx, ownerID, *txn.ExternalID); relErr != nil {
				logger.Warn("Failed to release external id reservation", slog.String("error", relErr.Error()))
			}
		}
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("kind", string(txn.Kind)))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	ledgerMutationsTotal.WithLabelValues(string(txn.Kind), "create").Inc()
	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("kind", string(txn.Kind)))
	return &txn, nil
}

// UpdateTransaction implements the reversal-then-reapply pattern: the stored
// effect is undone, the partial payload is merged over the stored fields, and
// the merged transaction's effect is applied as if it had always held those
// values. Adjustments are the exception: their old effect is not reversed.
func (s *transactionService) UpdateTransaction(ctx context.Context, ownerID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, err)
	}

	merged := *existing
	if req.Description != nil {
		merged.Description = strings.TrimSpace(*req.Description)
	}
	if req.Amount != nil {
		merged.Amount = *req.Amount
	}
	if req.Kind != nil {
		merged.Kind = *req.Kind
	}
	if req.OccurredOn != nil {
		merged.OccurredOn = *req.OccurredOn
	}
	if req.AccountID != nil {
		merged.AccountID = *req.AccountID
	}
	if req.DestinationAccountID != nil {
		merged.DestinationAccountID = req.DestinationAccountID
	}
	if req.CategoryID != nil {
		merged.CategoryID = req.CategoryID
	}
	if req.AssetID != nil {
		merged.AssetID = req.AssetID
	}

	if err := s.validateAndResolve(ctx, ownerID, &merged); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	merged.LastUpdatedAt = now
	merged.LastUpdatedBy = ownerID

	// Reversal of the old effect first, then the new effect: ordering matters
	// when both touch the same account, and when the new kind is an absolute
	// adjustment the set must land last.
	changes := append(reversalChanges(existing), forwardChanges(&merged)...)
	holdings := append(reversalHoldings(existing), forwardHoldings(&merged)...)

	// existing is the reversal basis; the repository re-checks it under lock
	// so a concurrent writer cannot invalidate the plan between our read and
	// the commit.
	if err := s.txnRepo.UpdateTransaction(ctx, merged, *existing, changes, holdings); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	ledgerMutationsTotal.WithLabelValues(string(merged.Kind), "update").Inc()
	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	return &merged, nil
}

// DeleteTransaction reverses the stored transaction's effect, releases any
// invested value it contributed and physically removes the row.
func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.txnRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", transactionID, err)
	}

	err = s.txnRepo.DeleteTransaction(ctx, ownerID, transactionID, *existing, reversalChanges(existing), reversalHoldings(existing))
	if err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	ledgerMutationsTotal.WithLabelValues(string(existing.Kind), "delete").Inc()
	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID), slog.String("kind", string(existing.Kind)))
	return nil
}

// GetTransactionByID retrieves a single transaction for the owner.
func (s *transactionService) GetTransactionByID(ctx context.Context, ownerID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves a filtered page of the owner's transactions.
func (s *transactionService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, ownerID, params.Filter(), limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// normalizeOptionalID maps empty or whitespace-only optional identifiers to
// nil so absent and blank values behave identically downstream.
func normalizeOptionalID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
