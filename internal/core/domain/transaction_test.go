package domain_test

import (
	"testing"

	"github.com/pachecofc/verde-financas-sub001/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidTransactionKind(t *testing.T) {
	tests := []struct {
		name string
		kind domain.TransactionKind
		want bool
	}{
		{name: "income", kind: domain.Income, want: true},
		{name: "expense", kind: domain.Expense, want: true},
		{name: "transfer", kind: domain.Transfer, want: true},
		{name: "adjustment", kind: domain.Adjustment, want: true},
		{name: "empty", kind: domain.TransactionKind(""), want: false},
		{name: "unknown", kind: domain.TransactionKind("LOAN"), want: false},
		{name: "lowercase is not recognized", kind: domain.TransactionKind("income"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidTransactionKind(tt.kind))
		})
	}
}

func TestValidAccountKind(t *testing.T) {
	assert.True(t, domain.ValidAccountKind(domain.Ordinary))
	assert.True(t, domain.ValidAccountKind(domain.Investment))
	assert.False(t, domain.ValidAccountKind(domain.AccountKind("SAVINGS")))
	assert.False(t, domain.ValidAccountKind(domain.AccountKind("")))
}
