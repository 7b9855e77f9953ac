package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// CreateTransactionRequest defines the payload for recording a new
// transaction. Destination, category, asset and external id are optional and
// only meaningful for certain kinds; the engine validates and nulls them per
// kind before persisting.
type CreateTransactionRequest struct {
	Description          string                 `json:"description" binding:"required"`
	Amount               decimal.Decimal        `json:"amount" binding:"required"`
	Kind                 domain.TransactionKind `json:"kind" binding:"required,txnkind"`
	OccurredOn           time.Time              `json:"occurredOn" binding:"required"`
	AccountID            string                 `json:"accountID" binding:"required"`
	DestinationAccountID *string                `json:"destinationAccountID"`
	CategoryID           *string                `json:"categoryID"`
	AssetID              *string                `json:"assetID"`
	ExternalID           *string                `json:"externalID"`
}

// UpdateTransactionRequest carries a partial update: every field is a pointer
// so "not provided" is distinguishable from a zero value, making the
// merge-with-existing step total and unambiguous. There is no way to clear a
// reference explicitly; references are nulled only by the kind-driven rules
// applied after the merge (e.g. changing the kind away from TRANSFER drops
// the destination and asset).
type UpdateTransactionRequest struct {
	Description          *string                 `json:"description"`
	Amount               *decimal.Decimal        `json:"amount"`
	Kind                 *domain.TransactionKind `json:"kind" binding:"omitempty,txnkind"`
	OccurredOn           *time.Time              `json:"occurredOn"`
	AccountID            *string                 `json:"accountID"`
	DestinationAccountID *string                 `json:"destinationAccountID"`
	CategoryID           *string                 `json:"categoryID"`
	AssetID              *string                 `json:"assetID"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID        string                 `json:"transactionID"`
	Kind                 domain.TransactionKind `json:"kind"`
	Amount               decimal.Decimal        `json:"amount"`
	OccurredOn           time.Time              `json:"occurredOn"`
	Description          string                 `json:"description"`
	AccountID            string                 `json:"accountID"`
	DestinationAccountID *string                `json:"destinationAccountID,omitempty"`
	CategoryID           *string                `json:"categoryID,omitempty"`
	AssetID              *string                `json:"assetID,omitempty"`
	ExternalID           *string                `json:"externalID,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	LastUpdatedAt        time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		Kind:                 txn.Kind,
		Amount:               txn.Amount,
		OccurredOn:           txn.OccurredOn,
		Description:          txn.Description,
		AccountID:            txn.AccountID,
		DestinationAccountID: txn.DestinationAccountID,
		CategoryID:           txn.CategoryID,
		AssetID:              txn.AssetID,
		ExternalID:           txn.ExternalID,
		CreatedAt:            txn.CreatedAt,
		LastUpdatedAt:        txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	From       *time.Time              `form:"from" time_format:"2006-01-02"`
	To         *time.Time              `form:"to" time_format:"2006-01-02"`
	AccountID  *string                 `form:"accountID"`
	CategoryID *string                 `form:"categoryID"`
	Kind       *domain.TransactionKind `form:"kind"`
	Limit      int                     `form:"limit,default=20"`
	NextToken  *string                 `form:"nextToken"`
}

// Filter converts the query parameters into a domain filter.
func (p ListTransactionsParams) Filter() domain.TransactionFilter {
	return domain.TransactionFilter{
		From:       p.From,
		To:         p.To,
		AccountID:  p.AccountID,
		CategoryID: p.CategoryID,
		Kind:       p.Kind,
	}
}

// ListTransactionsResponse wraps a page of transactions with the next token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
