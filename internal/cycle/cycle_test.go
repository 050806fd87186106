package cycle

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeRange(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		startDay  int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "calendar_month_when_start_day_is_1",
			ref:       date(2026, time.February, 14),
			startDay:  1,
			wantStart: date(2026, time.February, 1),
			wantEnd:   date(2026, time.February, 28),
		},
		{
			name:      "ref_before_anchor_starts_previous_month",
			ref:       date(2026, time.January, 10),
			startDay:  25,
			wantStart: date(2025, time.December, 25),
			wantEnd:   date(2026, time.January, 24),
		},
		{
			name:      "ref_on_anchor_starts_same_month",
			ref:       date(2026, time.January, 25),
			startDay:  25,
			wantStart: date(2026, time.January, 25),
			wantEnd:   date(2026, time.February, 24),
		},
		{
			name:      "ref_after_anchor_starts_same_month",
			ref:       date(2026, time.March, 28),
			startDay:  25,
			wantStart: date(2026, time.March, 25),
			wantEnd:   date(2026, time.April, 24),
		},
		{
			// Day 31 in a 30-day month clamps to the 30th; we deliberately
			// clamp instead of rolling into the next month so consecutive
			// cycles tile the calendar without gaps.
			name:      "anchor_clamps_in_short_month",
			ref:       date(2026, time.April, 30),
			startDay:  31,
			wantStart: date(2026, time.April, 30),
			wantEnd:   date(2026, time.May, 30),
		},
		{
			name:      "clamped_anchor_in_february",
			ref:       date(2026, time.February, 28),
			startDay:  31,
			wantStart: date(2026, time.February, 28),
			wantEnd:   date(2026, time.March, 30),
		},
		{
			name:      "year_boundary",
			ref:       date(2026, time.December, 31),
			startDay:  15,
			wantStart: date(2026, time.December, 15),
			wantEnd:   date(2027, time.January, 14),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRange(tt.ref, tt.startDay)
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("start: expected %s, got %s", tt.wantStart.Format("2006-01-02"), got.Start.Format("2006-01-02"))
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("end: expected %s, got %s", tt.wantEnd.Format("2006-01-02"), got.End.Format("2006-01-02"))
			}
		})
	}
}

// The reference date must always fall inside its own computed cycle, for
// every start day 1..28 and every day of a sample year.
func TestComputeRangeContainsReference(t *testing.T) {
	for startDay := 1; startDay <= 28; startDay++ {
		ref := date(2026, time.January, 1)
		for ref.Year() == 2026 {
			r := ComputeRange(ref, startDay)
			if !r.Contains(ref) {
				t.Fatalf("startDay=%d ref=%s: ref outside cycle [%s, %s]",
					startDay, ref.Format("2006-01-02"),
					r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
			}
			ref = ref.AddDate(0, 0, 1)
		}
	}
}

// Consecutive cycles must share no days and leave no gaps: each cycle's end
// is exactly one day before the next cycle's start.
func TestComputeRangeTilesCalendar(t *testing.T) {
	for _, startDay := range []int{1, 15, 25, 29, 30, 31} {
		r := ComputeRange(date(2025, time.November, 20), startDay)
		for i := 0; i < 24; i++ {
			next := ComputeRange(r.End.AddDate(0, 0, 1), startDay)
			if !next.Start.Equal(r.End.AddDate(0, 0, 1)) {
				t.Fatalf("startDay=%d: cycle ending %s followed by cycle starting %s",
					startDay, r.End.Format("2006-01-02"), next.Start.Format("2006-01-02"))
			}
			r = next
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %s): expected %d, got %d", tt.year, tt.month, tt.want, got)
		}
	}
}

func TestDaysLeft(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		end  time.Time
		want int
	}{
		{"same_day", date(2026, time.January, 24), date(2026, time.January, 24), 1},
		{"mid_cycle", date(2026, time.January, 10), date(2026, time.January, 24), 15},
		{"end_already_passed", date(2026, time.January, 26), date(2026, time.January, 24), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysLeft(tt.now, tt.end); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestFilterByRange(t *testing.T) {
	dates := []time.Time{
		date(2025, time.December, 24),
		date(2025, time.December, 25),
		date(2026, time.January, 10),
		date(2026, time.January, 24),
		date(2026, time.January, 25),
	}

	got := FilterByRange(dates, func(t time.Time) time.Time { return t },
		date(2025, time.December, 25), date(2026, time.January, 24))

	if len(got) != 3 {
		t.Fatalf("expected 3 dates inside range, got %d", len(got))
	}
	if !got[0].Equal(date(2025, time.December, 25)) || !got[2].Equal(date(2026, time.January, 24)) {
		t.Errorf("range boundaries must be inclusive, got %v", got)
	}
}

func TestRangeContainsIgnoresTimeOfDay(t *testing.T) {
	r := Range{Start: date(2026, time.January, 1), End: date(2026, time.January, 31)}
	late := time.Date(2026, time.January, 31, 23, 45, 0, 0, time.UTC)
	if !r.Contains(late) {
		t.Error("expected 23:45 on the end date to be inside the range")
	}
}
