package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gagyebu/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Test Category %d", nextID()),
		Type: categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction creates a transaction of the given type, amount (in
// won) and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, categoryID *uint, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		CategoryID: categoryID,
		Type:       txType,
		Amount:     amount,
		Date:       date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestFixed creates an active recurring rule that never ends.
func CreateTestFixed(t *testing.T, db *gorm.DB, categoryID *uint, day int, amount int64, startDate time.Time) *models.FixedTransaction {
	t.Helper()

	fixed := &models.FixedTransaction{
		Day:        day,
		Type:       models.TransactionTypeExpense,
		Amount:     amount,
		CategoryID: categoryID,
		Memo:       fmt.Sprintf("Test Fixed %d", nextID()),
		StartDate:  startDate,
		EndType:    models.EndTypeNever,
		IsActive:   true,
	}
	if err := db.Create(fixed).Error; err != nil {
		t.Fatalf("failed to create test fixed transaction: %v", err)
	}
	return fixed
}

// CreateTestGoal creates a budget goal for the given category (nil for the
// whole-budget goal).
func CreateTestGoal(t *testing.T, db *gorm.DB, categoryID *uint, amount int64) *models.BudgetGoal {
	t.Helper()

	goal := &models.BudgetGoal{
		CategoryID: categoryID,
		Amount:     amount,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestSettings creates the settings row with the given cycle start day.
func CreateTestSettings(t *testing.T, db *gorm.DB, cycleStartDay int) *models.Settings {
	t.Helper()

	settings := &models.Settings{CycleStartDay: cycleStartDay}
	if err := db.Create(settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return settings
}
