package mapping

import (
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	"github.com/pachecofc/verde-financas-sub001/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:        d.TransactionID,
		OwnerID:              d.OwnerID,
		Kind:                 models.TransactionKind(d.Kind),
		Amount:               d.Amount,
		OccurredOn:           d.OccurredOn,
		Description:          d.Description,
		AccountID:            d.AccountID,
		DestinationAccountID: d.DestinationAccountID,
		CategoryID:           d.CategoryID,
		AssetID:              d.AssetID,
		ExternalID:           d.ExternalID,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:        m.TransactionID,
		OwnerID:              m.OwnerID,
		Kind:                 domain.TransactionKind(m.Kind),
		Amount:               m.Amount,
		OccurredOn:           m.OccurredOn,
		Description:          m.Description,
		AccountID:            m.AccountID,
		DestinationAccountID: m.DestinationAccountID,
		CategoryID:           m.CategoryID,
		AssetID:              m.AssetID,
		ExternalID:           m.ExternalID,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
