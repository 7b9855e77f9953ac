package mapping

import (
	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	"github.com/pachecofc/verde-financas-sub001/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:    d.AccountID,
		OwnerID:      d.OwnerID,
		Name:         d.Name,
		Kind:         models.AccountKind(d.Kind),
		CurrencyCode: d.CurrencyCode,
		BankName:     d.BankName,
		Color:        d.Color,
		AuditFields:  ToModelAuditFields(d.AuditFields),
		Balance:      d.Balance,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:    m.AccountID,
		OwnerID:      m.OwnerID,
		Name:         m.Name,
		Kind:         domain.AccountKind(m.Kind),
		CurrencyCode: m.CurrencyCode,
		BankName:     m.BankName,
		Color:        m.Color,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
		Balance:      m.Balance,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
