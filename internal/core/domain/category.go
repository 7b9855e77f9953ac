package domain

// Category classifies income and expense transactions. A category's kind must
// match the kind of every transaction that references it.
type Category struct {
	CategoryID string          `json:"categoryID"` // Primary Key (UUID)
	OwnerID    string          `json:"ownerID"`    // FK -> users.user_id (NON-NULL)
	Name       string          `json:"name"`
	Kind       TransactionKind `json:"kind"` // INCOME or EXPENSE only
	Color      string          `json:"color"`
	AuditFields
}
