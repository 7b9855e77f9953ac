package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// SummaryParams defines query parameters for the summary endpoint.
type SummaryParams struct {
	From       *time.Time              `form:"from" time_format:"2006-01-02"`
	To         *time.Time              `form:"to" time_format:"2006-01-02"`
	AccountID  *string                 `form:"accountID"`
	CategoryID *string                 `form:"categoryID"`
	Kind       *domain.TransactionKind `form:"kind"`
}

// Filter converts the query parameters into a domain filter.
func (p SummaryParams) Filter() domain.TransactionFilter {
	return domain.TransactionFilter{
		From:       p.From,
		To:         p.To,
		AccountID:  p.AccountID,
		CategoryID: p.CategoryID,
		Kind:       p.Kind,
	}
}

// SummaryResponse defines the read-side totals returned to the caller.
// Balance is totalIncome - totalExpense, independent of account balances.
type SummaryResponse struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int64           `json:"transactionCount"`
}

// ToSummaryResponse converts a domain.Summary to SummaryResponse DTO
func ToSummaryResponse(s *domain.Summary) SummaryResponse {
	return SummaryResponse{
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		Balance:          s.Balance,
		TransactionCount: s.TransactionCount,
	}
}
