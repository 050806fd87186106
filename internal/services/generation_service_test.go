package services

import (
	"testing"
	"time"

	"gagyebu/internal/models"
	"gagyebu/internal/testutil"

	"gorm.io/gorm"
)

// resetFixed deactivates every rule so runs only see the rules a test
// creates; the shared in-memory database outlives individual tests.
func resetFixed(t *testing.T, db *gorm.DB) {
	t.Helper()
	if err := db.Model(&models.FixedTransaction{}).Where("1 = 1").Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to reset fixed transactions: %v", err)
	}
}

func occurrenceCount(t *testing.T, db *gorm.DB, fixedID uint) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Transaction{}).Where("source_fixed_id = ?", fixedID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

func TestGenerateDue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	settingsService := NewSettingsService(db)
	service := NewGenerationService(db, settingsService)

	if _, err := settingsService.UpdateCycleStartDay(1); err != nil {
		t.Fatalf("failed to set cycle start day: %v", err)
	}

	t.Run("generates_once_per_cycle", func(t *testing.T) {
		resetFixed(t, db)
		rule := testutil.CreateTestFixed(t, db, nil, 15, 50000, date(2026, time.January, 1))

		now := date(2026, time.March, 20)
		result, err := service.GenerateDue(now)
		testutil.AssertNoError(t, err)

		if result.Generated != 1 {
			t.Fatalf("expected 1 generated, got %+v", result)
		}

		var occ models.Transaction
		if err := db.Where("source_fixed_id = ?", rule.ID).First(&occ).Error; err != nil {
			t.Fatalf("expected an occurrence: %v", err)
		}
		if !occ.Date.Equal(date(2026, time.March, 15)) {
			t.Errorf("expected occurrence on 2026-03-15, got %s", occ.Date.Format("2006-01-02"))
		}
		if occ.Amount != 50000 || occ.Type != models.TransactionTypeExpense {
			t.Errorf("unexpected occurrence: %+v", occ)
		}

		// A second run in the same cycle is a no-op.
		result, err = service.GenerateDue(now)
		testutil.AssertNoError(t, err)
		if result.Generated != 0 || result.Skipped != 1 {
			t.Errorf("expected the repeat run to skip, got %+v", result)
		}
		if n := occurrenceCount(t, db, rule.ID); n != 1 {
			t.Errorf("expected exactly 1 occurrence, got %d", n)
		}
	})

	t.Run("generates_again_in_next_cycle", func(t *testing.T) {
		resetFixed(t, db)
		rule := testutil.CreateTestFixed(t, db, nil, 10, 9900, date(2026, time.January, 1))

		_, err := service.GenerateDue(date(2026, time.March, 12))
		testutil.AssertNoError(t, err)
		result, err := service.GenerateDue(date(2026, time.April, 12))
		testutil.AssertNoError(t, err)

		if result.Generated != 1 {
			t.Errorf("expected a fresh occurrence in the next cycle, got %+v", result)
		}
		if n := occurrenceCount(t, db, rule.ID); n != 2 {
			t.Errorf("expected 2 occurrences across cycles, got %d", n)
		}
	})

	t.Run("skips_rules_not_yet_due", func(t *testing.T) {
		resetFixed(t, db)
		rule := testutil.CreateTestFixed(t, db, nil, 25, 30000, date(2026, time.January, 1))

		result, err := service.GenerateDue(date(2026, time.March, 20))
		testutil.AssertNoError(t, err)

		if result.Generated != 0 || result.Skipped != 1 {
			t.Errorf("expected the rule to wait for its day, got %+v", result)
		}
		if n := occurrenceCount(t, db, rule.ID); n != 0 {
			t.Errorf("expected no occurrences, got %d", n)
		}
	})

	t.Run("skips_occurrence_before_rule_start", func(t *testing.T) {
		resetFixed(t, db)
		// Registered mid-cycle, after its own day already passed.
		rule := testutil.CreateTestFixed(t, db, nil, 15, 12000, date(2026, time.March, 18))

		result, err := service.GenerateDue(date(2026, time.March, 20))
		testutil.AssertNoError(t, err)

		if result.Generated != 0 {
			t.Errorf("expected nothing before the start date, got %+v", result)
		}
		if n := occurrenceCount(t, db, rule.ID); n != 0 {
			t.Errorf("expected no occurrences, got %d", n)
		}
	})

	t.Run("deactivates_rules_past_their_end_date", func(t *testing.T) {
		resetFixed(t, db)
		rule := testutil.CreateTestFixed(t, db, nil, 15, 30000, date(2026, time.January, 1))
		end := date(2026, time.January, 31)
		if err := db.Model(rule).Updates(map[string]interface{}{"end_type": models.EndTypeDate, "end_date": end}).Error; err != nil {
			t.Fatalf("failed to set end date: %v", err)
		}

		result, err := service.GenerateDue(date(2026, time.March, 20))
		testutil.AssertNoError(t, err)

		if result.Deactivated != 1 || result.Generated != 0 {
			t.Errorf("expected the expired rule to be retired, got %+v", result)
		}

		var reloaded models.FixedTransaction
		if err := db.First(&reloaded, rule.ID).Error; err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if reloaded.IsActive {
			t.Error("expected the rule to be inactive")
		}
	})

	t.Run("stale_last_generated_does_not_block", func(t *testing.T) {
		resetFixed(t, db)
		rule := testutil.CreateTestFixed(t, db, nil, 5, 8000, date(2026, time.January, 1))
		prev := date(2026, time.February, 5)
		if err := db.Model(rule).Update("last_generated", prev).Error; err != nil {
			t.Fatalf("failed to set last_generated: %v", err)
		}

		result, err := service.GenerateDue(date(2026, time.March, 20))
		testutil.AssertNoError(t, err)

		if result.Generated != 1 {
			t.Errorf("expected a new occurrence despite the previous cycle's marker, got %+v", result)
		}
	})

	t.Run("installment_advances_one_round", func(t *testing.T) {
		resetFixed(t, db)
		rule := &models.FixedTransaction{
			Day:       10,
			Type:      models.TransactionTypeExpense,
			Amount:    100000,
			Memo:      "tv installment",
			StartDate: date(2026, time.January, 10),
			EndType:   models.EndTypeNever,
			IsActive:  true,

			IsInstallment:           true,
			InstallmentPrincipal:    1200000,
			InstallmentMonths:       12,
			InstallmentCurrentMonth: 2,
		}
		if err := db.Create(rule).Error; err != nil {
			t.Fatalf("failed to create installment rule: %v", err)
		}

		result, err := service.GenerateDue(date(2026, time.March, 20))
		testutil.AssertNoError(t, err)

		if result.Generated != 1 {
			t.Fatalf("expected round 3 to generate, got %+v", result)
		}

		var reloaded models.FixedTransaction
		if err := db.First(&reloaded, rule.ID).Error; err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if reloaded.InstallmentCurrentMonth != 3 {
			t.Errorf("expected current month 3, got %d", reloaded.InstallmentCurrentMonth)
		}
		if !reloaded.IsActive {
			t.Error("expected an in-progress installment to stay active")
		}
	})

	t.Run("final_installment_round_deactivates", func(t *testing.T) {
		resetFixed(t, db)
		rule := &models.FixedTransaction{
			Day:       10,
			Type:      models.TransactionTypeExpense,
			Amount:    100000,
			StartDate: date(2025, time.October, 10),
			EndType:   models.EndTypeNever,
			IsActive:  true,

			IsInstallment:           true,
			InstallmentPrincipal:    300000,
			InstallmentMonths:       3,
			InstallmentCurrentMonth: 2,
		}
		if err := db.Create(rule).Error; err != nil {
			t.Fatalf("failed to create installment rule: %v", err)
		}

		result, err := service.GenerateDue(date(2026, time.March, 20))
		testutil.AssertNoError(t, err)

		if result.Generated != 1 || result.Deactivated != 1 {
			t.Errorf("expected the final round to generate and retire the rule, got %+v", result)
		}

		var reloaded models.FixedTransaction
		if err := db.First(&reloaded, rule.ID).Error; err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if reloaded.IsActive {
			t.Error("expected the completed installment to be inactive")
		}
	})

	t.Run("completed_installment_generates_nothing", func(t *testing.T) {
		resetFixed(t, db)
		rule := &models.FixedTransaction{
			Day:       10,
			Type:      models.TransactionTypeExpense,
			Amount:    100000,
			StartDate: date(2025, time.October, 10),
			EndType:   models.EndTypeNever,
			IsActive:  true,

			IsInstallment:           true,
			InstallmentPrincipal:    300000,
			InstallmentMonths:       3,
			InstallmentCurrentMonth: 3,
		}
		if err := db.Create(rule).Error; err != nil {
			t.Fatalf("failed to create installment rule: %v", err)
		}

		result, err := service.GenerateDue(date(2026, time.March, 20))
		testutil.AssertNoError(t, err)

		if result.Generated != 0 || result.Deactivated != 1 {
			t.Errorf("expected the finished schedule to retire without generating, got %+v", result)
		}
		if n := occurrenceCount(t, db, rule.ID); n != 0 {
			t.Errorf("expected no occurrences, got %d", n)
		}
	})
}

func TestGenerateDueWithAnchoredCycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	settingsService := NewSettingsService(db)
	service := NewGenerationService(db, settingsService)

	if _, err := settingsService.UpdateCycleStartDay(25); err != nil {
		t.Fatalf("failed to set cycle start day: %v", err)
	}
	defer func() {
		if _, err := settingsService.UpdateCycleStartDay(1); err != nil {
			t.Fatalf("failed to restore cycle start day: %v", err)
		}
	}()

	resetFixed(t, db)
	// Cycle for 2026-01-10 runs 2025-12-25 .. 2026-01-24; a day-28 rule
	// belongs to the December side of the cycle.
	rule := testutil.CreateTestFixed(t, db, nil, 28, 60000, date(2025, time.December, 1))

	result, err := service.GenerateDue(date(2026, time.January, 10))
	testutil.AssertNoError(t, err)

	if result.Generated != 1 {
		t.Fatalf("expected 1 generated, got %+v", result)
	}

	var occ models.Transaction
	if err := db.Where("source_fixed_id = ?", rule.ID).First(&occ).Error; err != nil {
		t.Fatalf("expected an occurrence: %v", err)
	}
	if !occ.Date.Equal(date(2025, time.December, 28)) {
		t.Errorf("expected occurrence on 2025-12-28, got %s", occ.Date.Format("2006-01-02"))
	}
}
