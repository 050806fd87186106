package services

import (
	"testing"
	"time"

	"gagyebu/internal/cycle"
	"gagyebu/internal/models"
	"gagyebu/internal/testutil"
)

func expense(categoryID uint, amount int64, d time.Time) models.Transaction {
	return models.Transaction{
		CategoryID: &categoryID,
		Type:       models.TransactionTypeExpense,
		Amount:     amount,
		Date:       d,
	}
}

func TestComputeSurvival(t *testing.T) {
	rng := cycle.Range{Start: date(2026, time.January, 1), End: date(2026, time.January, 31)}

	t.Run("unconfigured_without_category_goals", func(t *testing.T) {
		result := ComputeSurvival(nil, nil, rng, date(2026, time.January, 10))
		if result.Configured {
			t.Error("expected unconfigured result with no goals")
		}

		// A whole-budget goal alone does not configure the view either.
		goals := []models.BudgetGoal{{Amount: 1000000}}
		result = ComputeSurvival(goals, nil, rng, date(2026, time.January, 10))
		if result.Configured {
			t.Error("expected unconfigured result with only a whole-budget goal")
		}
	})

	t.Run("category_status_boundaries", func(t *testing.T) {
		goals := []models.BudgetGoal{
			{CategoryID: uintPtr(1), Amount: 100000},
			{CategoryID: uintPtr(2), Amount: 100000},
			{CategoryID: uintPtr(3), Amount: 100000},
			{CategoryID: uintPtr(4), Amount: 100000},
		}
		transactions := []models.Transaction{
			expense(1, 49999, date(2026, time.January, 5)),  // safe
			expense(2, 50000, date(2026, time.January, 5)),  // warning at 50%
			expense(3, 80000, date(2026, time.January, 5)),  // danger at 80%
			expense(4, 120000, date(2026, time.January, 5)), // danger, overspent
		}

		result := ComputeSurvival(goals, transactions, rng, date(2026, time.January, 10))
		if !result.Configured {
			t.Fatal("expected configured result")
		}

		want := []SurvivalStatus{SurvivalStatusSafe, SurvivalStatusWarning, SurvivalStatusDanger, SurvivalStatusDanger}
		for i, cs := range result.Categories {
			if cs.Status != want[i] {
				t.Errorf("category %d: expected %s, got %s (spent %d)", cs.CategoryID, want[i], cs.Status, cs.Spent)
			}
		}

		// Percentage is capped even when overspent; remaining goes negative.
		over := result.Categories[3]
		if over.Percentage != 100 {
			t.Errorf("expected capped percentage 100, got %.1f", over.Percentage)
		}
		if over.Remaining != -20000 {
			t.Errorf("expected remaining -20000, got %d", over.Remaining)
		}
	})

	t.Run("excludes_generated_and_out_of_cycle_spending", func(t *testing.T) {
		goals := []models.BudgetGoal{{CategoryID: uintPtr(7), Amount: 100000}}
		fixedID := uint(42)
		generated := expense(7, 30000, date(2026, time.January, 5))
		generated.SourceFixedID = &fixedID

		transactions := []models.Transaction{
			expense(7, 10000, date(2026, time.January, 5)),
			expense(7, 99999, date(2025, time.December, 31)), // previous cycle
			generated, // fixed-cost occurrence
			{Type: models.TransactionTypeIncome, Amount: 500000, Date: date(2026, time.January, 5)},
		}

		result := ComputeSurvival(goals, transactions, rng, date(2026, time.January, 10))
		if result.Categories[0].Spent != 10000 {
			t.Errorf("expected spent 10000, got %d", result.Categories[0].Spent)
		}
	})

	t.Run("daily_available_floors_division", func(t *testing.T) {
		goals := []models.BudgetGoal{{CategoryID: uintPtr(1), Amount: 300000}}

		// 300,000 over 22 days (Jan 10..31) floors to 13,636.
		result := ComputeSurvival(goals, nil, rng, date(2026, time.January, 10))
		if result.DaysLeft != 22 {
			t.Errorf("expected 22 days left, got %d", result.DaysLeft)
		}
		if result.DailyAvailable != 13636 {
			t.Errorf("expected daily available 13636, got %d", result.DailyAvailable)
		}
		if result.Status != SurvivalStatusSafe {
			t.Errorf("expected safe, got %s", result.Status)
		}
	})

	t.Run("overspent_budget_is_danger", func(t *testing.T) {
		goals := []models.BudgetGoal{{CategoryID: uintPtr(1), Amount: 100000}}
		transactions := []models.Transaction{expense(1, 150000, date(2026, time.January, 5))}

		result := ComputeSurvival(goals, transactions, rng, date(2026, time.January, 10))
		if result.DisposableBalance != -50000 {
			t.Errorf("expected disposable -50000, got %d", result.DisposableBalance)
		}
		if result.Status != SurvivalStatusDanger {
			t.Errorf("expected danger, got %s", result.Status)
		}
	})

	t.Run("thin_daily_margin_is_warning", func(t *testing.T) {
		goals := []models.BudgetGoal{{CategoryID: uintPtr(1), Amount: 300000}}
		transactions := []models.Transaction{expense(1, 240000, date(2026, time.January, 5))}

		// 60,000 left over 22 days = 2,727/day, under the 5,000 warning line
		// (total budget / 30 days, halved).
		result := ComputeSurvival(goals, transactions, rng, date(2026, time.January, 10))
		if result.Status != SurvivalStatusWarning {
			t.Errorf("expected warning, got %s (daily %d)", result.Status, result.DailyAvailable)
		}
	})

	t.Run("last_day_counts_itself", func(t *testing.T) {
		goals := []models.BudgetGoal{{CategoryID: uintPtr(1), Amount: 31000}}

		result := ComputeSurvival(goals, nil, rng, date(2026, time.January, 31))
		if result.DaysLeft != 1 {
			t.Errorf("expected 1 day left on the last day, got %d", result.DaysLeft)
		}
		if result.DailyAvailable != 31000 {
			t.Errorf("expected the whole remainder available, got %d", result.DailyAvailable)
		}
	})
}

func TestGetSurvival(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	settingsService := NewSettingsService(db)
	service := NewSurvivalService(db, settingsService)

	if _, err := settingsService.UpdateCycleStartDay(25); err != nil {
		t.Fatalf("failed to set cycle start day: %v", err)
	}

	category := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	testutil.CreateTestGoal(t, db, &category.ID, 200000)

	// Inside the 2025-12-25 .. 2026-01-24 cycle.
	testutil.CreateTestTransaction(t, db, &category.ID, models.TransactionTypeExpense, 60000, date(2025, time.December, 30))
	// Before the cycle; must not count.
	testutil.CreateTestTransaction(t, db, &category.ID, models.TransactionTypeExpense, 99999, date(2025, time.December, 20))

	result, err := service.GetSurvival(date(2026, time.January, 10))
	testutil.AssertNoError(t, err)

	if !result.Configured {
		t.Fatal("expected configured result")
	}
	if result.CurrentSpent != 60000 {
		t.Errorf("expected spent 60000, got %d", result.CurrentSpent)
	}
	if result.DaysLeft != 15 {
		t.Errorf("expected 15 days left, got %d", result.DaysLeft)
	}
}
