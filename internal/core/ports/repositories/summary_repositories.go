package repositories

import (
	"context"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// SummaryRepository aggregates live transactions on the read path only.
type SummaryRepository interface {
	// GetSummary folds income/expense totals and the transaction count over
	// the owner's transactions matching the filter.
	GetSummary(ctx context.Context, ownerID string, filter domain.TransactionFilter) (*domain.Summary, error)
}
