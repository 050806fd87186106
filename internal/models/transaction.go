package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single dated income or expense entry. Amounts are
// integer won; Date carries calendar-date semantics only (midnight, local).
type Transaction struct {
	Base
	CategoryID *uint           `json:"category_id,omitempty"`
	Type       TransactionType `gorm:"not null" json:"type"`
	Amount     int64           `gorm:"type:bigint;not null" json:"amount"`
	Memo       string          `json:"memo"`
	Date       time.Time       `gorm:"not null;index" json:"date"`

	// Non-nil when this transaction was materialized from a fixed transaction.
	SourceFixedID *uint `gorm:"index" json:"source_fixed_id,omitempty"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
