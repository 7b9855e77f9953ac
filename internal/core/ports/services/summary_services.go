package services

import (
	"context"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// SummarySvcFacade exposes the read-side transaction fold.
type SummarySvcFacade interface {
	// GetSummary returns income/expense totals, their difference and the
	// matching transaction count for the owner's transactions.
	GetSummary(ctx context.Context, ownerID string, filter domain.TransactionFilter) (*domain.Summary, error)
}
