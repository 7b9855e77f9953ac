package mapping

import (
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	"github.com/pachecofc/verde-financas-sub001/internal/models"
)

// ToModelAsset converts a domain Asset to a model Asset
func ToModelAsset(d domain.Asset) models.Asset {
	return models.Asset{
		AssetID:     d.AssetID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Ticker:      d.Ticker,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAsset converts a model Asset to a domain Asset
func ToDomainAsset(m models.Asset) domain.Asset {
	return domain.Asset{
		AssetID:     m.AssetID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Ticker:      m.Ticker,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainHolding converts a model AssetHolding to a domain AssetHolding
func ToDomainHolding(m models.AssetHolding) domain.AssetHolding {
	return domain.AssetHolding{
		HoldingID:   m.HoldingID,
		OwnerID:     m.OwnerID,
		AssetID:     m.AssetID,
		Value:       m.Value,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
