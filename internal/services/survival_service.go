package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"gagyebu/internal/cycle"
	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/models"
)

// survivalService computes the budget survival view.
type survivalService struct {
	db              *gorm.DB
	settingsService SettingsServicer
}

// NewSurvivalService creates a new SurvivalServicer.
func NewSurvivalService(db *gorm.DB, settingsService SettingsServicer) SurvivalServicer {
	return &survivalService{
		db:              db,
		settingsService: settingsService,
	}
}

// GetSurvival loads this cycle's goals and spending and grades the position.
func (s *survivalService) GetSurvival(now time.Time) (*SurvivalResult, error) {
	rng, err := s.settingsService.CurrentCycle(now)
	if err != nil {
		return nil, err
	}

	var goals []models.BudgetGoal
	if err := s.db.Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Transaction
	if err := s.db.
		Where("type = ? AND date >= ? AND date < ?", models.TransactionTypeExpense, rng.Start, rng.End.AddDate(0, 0, 1)).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return ComputeSurvival(goals, expenses, rng, now), nil
}

// ComputeSurvival grades per-category budgets and derives the safe daily
// spend for the rest of the cycle. Pure; callers supply the cycle range and
// reference time.
//
// Occurrences generated from fixed transactions are excluded from spending:
// fixed costs are commitments, not discretionary spend, and counting them
// would double-penalize the budget they were planned around.
func ComputeSurvival(goals []models.BudgetGoal, transactions []models.Transaction, rng cycle.Range, now time.Time) *SurvivalResult {
	var categoryGoals []models.BudgetGoal
	for _, g := range goals {
		if g.CategoryID != nil {
			categoryGoals = append(categoryGoals, g)
		}
	}
	if len(categoryGoals) == 0 {
		return &SurvivalResult{Configured: false}
	}

	inCycle := cycle.FilterByRange(transactions, func(t models.Transaction) time.Time { return t.Date }, rng.Start, rng.End)

	spentByCategory := make(map[uint]int64)
	for _, t := range inCycle {
		if t.Type != models.TransactionTypeExpense || t.CategoryID == nil || t.SourceFixedID != nil {
			continue
		}
		spentByCategory[*t.CategoryID] += t.Amount
	}

	result := &SurvivalResult{Configured: true}
	for _, g := range categoryGoals {
		spent := spentByCategory[*g.CategoryID]

		var pct float64
		if g.Amount > 0 {
			pct = float64(spent) / float64(g.Amount) * 100
		} else if spent > 0 {
			pct = 100
		}

		status := SurvivalStatusSafe
		switch {
		case spent > g.Amount || pct >= 80:
			status = SurvivalStatusDanger
		case pct >= 50:
			status = SurvivalStatusWarning
		}

		if pct > 100 {
			pct = 100
		}

		result.Categories = append(result.Categories, CategorySurvival{
			CategoryID: *g.CategoryID,
			Budget:     g.Amount,
			Spent:      spent,
			Remaining:  g.Amount - spent,
			Percentage: math.Round(pct*10) / 10,
			Status:     status,
		})
		result.TotalBudget += g.Amount
		result.CurrentSpent += spent
	}

	result.DisposableBalance = result.TotalBudget - result.CurrentSpent
	result.DaysLeft = cycle.DaysLeft(now, rng.End)
	result.DailyAvailable = int64(math.Floor(float64(result.DisposableBalance) / float64(result.DaysLeft)))

	switch {
	case result.DailyAvailable <= 0:
		result.Status = SurvivalStatusDanger
	case float64(result.DailyAvailable) < float64(result.TotalBudget)/30*0.5:
		result.Status = SurvivalStatusWarning
	default:
		result.Status = SurvivalStatusSafe
	}
	return result
}
