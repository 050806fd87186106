package models

// BudgetGoal is a per-cycle spending target. A nil CategoryID denotes a
// whole-budget goal; only per-category goals enter the survival computation.
type BudgetGoal struct {
	Base
	CategoryID *uint `json:"category_id,omitempty"`
	Amount     int64 `gorm:"type:bigint;not null" json:"amount"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
