package domain

import (
	"github.com/shopspring/decimal"
)

// Summary is the read-side fold over live transactions matching a filter.
// Balance is totalIncome - totalExpense, a derived convenience figure that is
// independent of persisted account balances.
type Summary struct {
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int64           `json:"transactionCount"`
}
