package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"gagyebu/internal/cycle"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/models"
)

// summaryService builds calendar/statistics summaries.
type summaryService struct {
	db *gorm.DB
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(db *gorm.DB) SummaryServicer {
	return &summaryService{db: db}
}

// GetMonthlySummary aggregates one calendar month: income/expense/net totals,
// a per-category expense breakdown, and per-day totals for the calendar view.
// Generated occurrences count here — the calendar shows what actually left
// the account, unlike the survival view.
func (s *summaryService) GetMonthlySummary(year int, month time.Month) (*MonthlySummary, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid year or month")
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var transactions []models.Transaction
	if err := s.db.Preload("Category").
		Where("date >= ? AND date < ?", monthStart, monthEnd).
		Order("date ASC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &MonthlySummary{Year: year, Month: month}
	byCategory := make(map[uint]*CategoryTotal)
	byDay := make(map[int]*DayTotal)

	for _, t := range transactions {
		day := t.Date.Day()
		dt, ok := byDay[day]
		if !ok {
			dt = &DayTotal{Date: cycle.Truncate(t.Date)}
			byDay[day] = dt
		}

		switch t.Type {
		case models.TransactionTypeIncome:
			summary.Income += t.Amount
			dt.Income += t.Amount
		case models.TransactionTypeExpense:
			summary.Expense += t.Amount
			dt.Expense += t.Amount

			if t.CategoryID != nil {
				ct, ok := byCategory[*t.CategoryID]
				if !ok {
					name := ""
					if t.Category != nil {
						name = t.Category.Name
					}
					ct = &CategoryTotal{CategoryID: *t.CategoryID, Name: name}
					byCategory[*t.CategoryID] = ct
				}
				ct.Amount += t.Amount
			}
		}
	}

	summary.Net = summary.Income - summary.Expense

	summary.ByCategory = make([]CategoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		summary.ByCategory = append(summary.ByCategory, *ct)
	}
	// Largest spend first; ties by ID for a stable order.
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		return a.CategoryID < b.CategoryID
	})

	summary.ByDay = make([]DayTotal, 0, len(byDay))
	for _, dt := range byDay {
		summary.ByDay = append(summary.ByDay, *dt)
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Date.Before(summary.ByDay[j].Date)
	})

	return summary, nil
}
