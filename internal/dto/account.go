package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	Kind           domain.AccountKind `json:"kind" binding:"required,oneof=ORDINARY INVESTMENT"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	BankName       string             `json:"bankName"` // Optional
	Color          string             `json:"color"`    // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Balance is deliberately absent: only the ledger engine mutates it.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	BankName *string `json:"bankName"`
	Color    *string `json:"color"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	Kind          domain.AccountKind `json:"kind"`
	CurrencyCode  string             `json:"currencyCode"`
	Balance       decimal.Decimal    `json:"balance"`
	BankName      string             `json:"bankName,omitempty"`
	Color         string             `json:"color,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Kind:          acc.Kind,
		CurrencyCode:  acc.CurrencyCode,
		Balance:       acc.Balance,
		BankName:      acc.BankName,
		Color:         acc.Color,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
