package models

import "time"

// EndType controls how long a fixed transaction keeps generating.
type EndType string

const (
	EndTypeNever EndType = "never"
	EndTypeDate  EndType = "date"
)

// FixedTransaction is a recurring rule that projects into concrete
// transactions on a monthly cadence, anchored at Day (clamped to month end
// when the month is shorter). Installment purchases are a specialization:
// Amount always holds the *current round's* payment, never the principal.
type FixedTransaction struct {
	Base
	Day        int             `gorm:"not null" json:"day"`
	Type       TransactionType `gorm:"not null" json:"type"`
	Amount     int64           `gorm:"type:bigint;not null" json:"amount"`
	CategoryID *uint           `json:"category_id,omitempty"`
	Memo       string          `json:"memo"`
	StartDate  time.Time       `gorm:"not null" json:"start_date"`
	EndType    EndType         `gorm:"not null;default:never" json:"end_type"`
	EndDate    *time.Time      `json:"end_date,omitempty"`
	IsActive   bool            `gorm:"default:true" json:"is_active"`

	// Most recent occurrence date materialized; dedup marker for the
	// scheduled generation path.
	LastGenerated *time.Time `json:"last_generated,omitempty"`

	// Installment fields
	IsInstallment           bool    `gorm:"default:false" json:"is_installment"`
	InstallmentPrincipal    int64   `json:"installment_principal,omitempty"`
	InstallmentMonths       int     `json:"installment_months,omitempty"`
	InstallmentRate         float64 `json:"installment_rate,omitempty"`
	InstallmentFreeMonths   int     `json:"installment_free_months,omitempty"`
	InstallmentCurrentMonth int     `json:"installment_current_month,omitempty"`

	// Relationships
	Category    *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Occurrences []Transaction `gorm:"foreignKey:SourceFixedID" json:"occurrences,omitempty"`
}
