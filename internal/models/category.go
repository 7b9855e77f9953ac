package models

// Category is the database representation of an income/expense category.
type Category struct {
	CategoryID string          `db:"category_id"`
	OwnerID    string          `db:"owner_id"`
	Name       string          `db:"name"`
	Kind       TransactionKind `db:"kind"`
	Color      string          `db:"color"`
	AuditFields
}
