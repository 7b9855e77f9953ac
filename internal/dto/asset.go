package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
)

// CreateAssetRequest defines the data needed to create an asset.
type CreateAssetRequest struct {
	Name   string `json:"name" binding:"required"`
	Ticker string `json:"ticker"`
}

// AssetResponse defines the data returned for an asset.
type AssetResponse struct {
	AssetID string `json:"assetID"`
	Name    string `json:"name"`
	Ticker  string `json:"ticker,omitempty"`
}

// ToAssetResponse converts a domain.Asset to AssetResponse DTO
func ToAssetResponse(a *domain.Asset) AssetResponse {
	return AssetResponse{
		AssetID: a.AssetID,
		Name:    a.Name,
		Ticker:  a.Ticker,
	}
}

// ToListAssetResponse converts a slice of domain.Asset to DTOs
func ToListAssetResponse(assets []domain.Asset) []AssetResponse {
	res := make([]AssetResponse, len(assets))
	for i, a := range assets {
		res[i] = ToAssetResponse(&a)
	}
	return res
}

// HoldingResponse defines the data returned for an investment holding.
type HoldingResponse struct {
	AssetID string          `json:"assetID"`
	Value   decimal.Decimal `json:"value"`
}

// ToListHoldingResponse converts a slice of domain.AssetHolding to DTOs
func ToListHoldingResponse(holdings []domain.AssetHolding) []HoldingResponse {
	res := make([]HoldingResponse, len(holdings))
	for i, h := range holdings {
		res[i] = HoldingResponse{AssetID: h.AssetID, Value: h.Value}
	}
	return res
}
