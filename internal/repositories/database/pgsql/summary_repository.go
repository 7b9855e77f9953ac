package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	portsrepo "github.com/pachecofc/verde-financas-sub001/internal/core/ports/repositories"
)

type PgxSummaryRepository struct {
	BaseRepository
}

// newPgxSummaryRepository creates the read-side aggregation repository.
func newPgxSummaryRepository(pool *pgxpool.Pool) portsrepo.SummaryRepository {
	return &PgxSummaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SummaryRepository = (*PgxSummaryRepository)(nil)

// GetSummary folds income/expense totals and the transaction count over the
// owner's transactions matching the filter. Transfers and adjustments count
// toward the total but contribute nothing to either sum.
func (r *PgxSummaryRepository) GetSummary(ctx context.Context, ownerID string, filter domain.TransactionFilter) (*domain.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'INCOME' THEN amount ELSE 0 END), 0) AS total_income,
			COALESCE(SUM(CASE WHEN kind = 'EXPENSE' THEN amount ELSE 0 END), 0) AS total_expense,
			COUNT(*) AS transaction_count
		FROM transactions
		WHERE owner_id = $1
	`
	args := []interface{}{ownerID}

	addFilter := func(clause string, value interface{}) {
		args = append(args, value)
		query += " AND " + fmt.Sprintf(clause, len(args))
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
	query += ";"

	var summary domain.Summary
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&summary.TotalIncome,
		&summary.TotalExpense,
		&summary.TransactionCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary for owner %s: %w", ownerID, err)
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	return &summary, nil
}
