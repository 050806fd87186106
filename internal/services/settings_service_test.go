package services

import (
	"testing"
	"time"

	"gagyebu/internal/testutil"
)

func TestSettingsService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	service := NewSettingsService(db)

	t.Run("first_access_creates_defaults", func(t *testing.T) {
		settings, err := service.GetSettings()
		testutil.AssertNoError(t, err)

		if settings.CycleStartDay != 1 {
			t.Errorf("expected default cycle start day 1, got %d", settings.CycleStartDay)
		}

		// Repeated access returns the same row, not a new one.
		again, err := service.GetSettings()
		testutil.AssertNoError(t, err)
		if again.ID != settings.ID {
			t.Errorf("expected singleton settings row, got IDs %d and %d", settings.ID, again.ID)
		}
	})

	t.Run("updates_cycle_start_day", func(t *testing.T) {
		settings, err := service.UpdateCycleStartDay(25)
		testutil.AssertNoError(t, err)
		if settings.CycleStartDay != 25 {
			t.Errorf("expected cycle start day 25, got %d", settings.CycleStartDay)
		}
	})

	t.Run("rejects_out_of_range_day", func(t *testing.T) {
		_, err := service.UpdateCycleStartDay(0)
		testutil.AssertAppError(t, err, "INVALID_CYCLE_DAY")

		_, err = service.UpdateCycleStartDay(32)
		testutil.AssertAppError(t, err, "INVALID_CYCLE_DAY")
	})

	t.Run("current_cycle_uses_stored_anchor", func(t *testing.T) {
		if _, err := service.UpdateCycleStartDay(25); err != nil {
			t.Fatalf("failed to set cycle start day: %v", err)
		}

		rng, err := service.CurrentCycle(date(2026, time.January, 10))
		testutil.AssertNoError(t, err)

		if !rng.Start.Equal(date(2025, time.December, 25)) || !rng.End.Equal(date(2026, time.January, 24)) {
			t.Errorf("expected 2025-12-25 .. 2026-01-24, got %s .. %s",
				rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
		}
	})
}
