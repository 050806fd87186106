package services

import (
	"testing"
	"time"

	"gagyebu/internal/models"
	"gagyebu/internal/testutil"
)

func TestGetMonthlySummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewSummaryService(db)

	food := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	transport := testutil.CreateTestCategory(t, db, models.CategoryTypeExpense)
	salary := testutil.CreateTestCategory(t, db, models.CategoryTypeIncome)

	testutil.CreateTestTransaction(t, db, &salary.ID, models.TransactionTypeIncome, 3000000, date(2026, time.April, 25))
	testutil.CreateTestTransaction(t, db, &food.ID, models.TransactionTypeExpense, 12000, date(2026, time.April, 3))
	testutil.CreateTestTransaction(t, db, &food.ID, models.TransactionTypeExpense, 8000, date(2026, time.April, 3))
	testutil.CreateTestTransaction(t, db, &transport.ID, models.TransactionTypeExpense, 55000, date(2026, time.April, 10))
	// Adjacent months must not bleed in.
	testutil.CreateTestTransaction(t, db, &food.ID, models.TransactionTypeExpense, 77777, date(2026, time.March, 31))
	testutil.CreateTestTransaction(t, db, &food.ID, models.TransactionTypeExpense, 88888, date(2026, time.May, 1))

	summary, err := service.GetMonthlySummary(2026, time.April)
	testutil.AssertNoError(t, err)

	t.Run("totals", func(t *testing.T) {
		if summary.Income != 3000000 {
			t.Errorf("expected income 3000000, got %d", summary.Income)
		}
		if summary.Expense != 75000 {
			t.Errorf("expected expense 75000, got %d", summary.Expense)
		}
		if summary.Net != 2925000 {
			t.Errorf("expected net 2925000, got %d", summary.Net)
		}
	})

	t.Run("category_breakdown_sorted_by_spend", func(t *testing.T) {
		if len(summary.ByCategory) != 2 {
			t.Fatalf("expected 2 expense categories, got %d", len(summary.ByCategory))
		}
		if summary.ByCategory[0].CategoryID != transport.ID || summary.ByCategory[0].Amount != 55000 {
			t.Errorf("expected transport first with 55000, got %+v", summary.ByCategory[0])
		}
		if summary.ByCategory[1].CategoryID != food.ID || summary.ByCategory[1].Amount != 20000 {
			t.Errorf("expected food second with 20000, got %+v", summary.ByCategory[1])
		}
	})

	t.Run("per_day_totals", func(t *testing.T) {
		if len(summary.ByDay) != 3 {
			t.Fatalf("expected 3 active days, got %d", len(summary.ByDay))
		}
		first := summary.ByDay[0]
		if !first.Date.Equal(date(2026, time.April, 3)) || first.Expense != 20000 {
			t.Errorf("expected April 3 with expense 20000, got %+v", first)
		}
		last := summary.ByDay[2]
		if !last.Date.Equal(date(2026, time.April, 25)) || last.Income != 3000000 {
			t.Errorf("expected April 25 with income 3000000, got %+v", last)
		}
	})

	t.Run("rejects_invalid_month", func(t *testing.T) {
		_, err := service.GetMonthlySummary(2026, time.Month(13))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
