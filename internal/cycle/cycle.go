// Package cycle implements the pay-cycle date math: mapping a configured
// cycle start day onto concrete calendar ranges, projecting recurring rules
// into occurrence dates, and filtering records by date range.
//
// Every function is pure and takes its reference time as a parameter; nothing
// here reads the wall clock. Days that exceed a month's length are always
// clamped to the month's last day, never rolled into the next month.
package cycle

import "time"

// Range is an inclusive date range spanning one pay cycle.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay clamps day to the length of the given month, so day=31 in
// February yields 28 or 29.
func ClampDay(year int, month time.Month, day int) int {
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// dateOf builds a midnight date in ref's location.
func dateOf(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// ComputeRange returns the pay cycle containing ref for the given start day.
//
// startDay 1 means plain calendar months. Otherwise the cycle is anchored at
// the clamped start day of ref's month: on or after the anchor the cycle
// starts this month, before it the cycle starts the previous month. The end
// is always the day before the next month's anchor, so consecutive cycles
// tile the calendar with no gaps or overlaps even when the anchor clamps
// (e.g. startDay=31 across a 30-day month).
//
// startDay outside 1..31 is the caller's bug; behavior is undefined.
func ComputeRange(ref time.Time, startDay int) Range {
	year, month, day := ref.Date()
	loc := ref.Location()

	if startDay == 1 {
		return Range{
			Start: dateOf(year, month, 1, loc),
			End:   dateOf(year, month, DaysInMonth(year, month), loc),
		}
	}

	var start time.Time
	if day >= ClampDay(year, month, startDay) {
		start = dateOf(year, month, ClampDay(year, month, startDay), loc)
	} else {
		prev := dateOf(year, month, 1, loc).AddDate(0, 0, -1)
		py, pm, _ := prev.Date()
		start = dateOf(py, pm, ClampDay(py, pm, startDay), loc)
	}

	sy, sm, _ := start.Date()
	// time.Date normalizes month 13 into January of the next year.
	next := dateOf(sy, sm+1, 1, loc)
	ny, nm, _ := next.Date()
	end := dateOf(ny, nm, ClampDay(ny, nm, startDay), loc).AddDate(0, 0, -1)

	return Range{Start: start, End: end}
}

// Contains reports whether date falls inside the range, inclusive on both
// ends. Only the calendar date matters; time-of-day is truncated.
func (r Range) Contains(date time.Time) bool {
	d := Truncate(date)
	return !d.Before(Truncate(r.Start)) && !d.After(Truncate(r.End))
}

// Truncate drops the time-of-day component, keeping the location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysLeft returns the number of days from today through end, counting today
// itself. A past end date still counts at least one day so that division by
// the result is safe.
func DaysLeft(now, end time.Time) int {
	diff := Truncate(end).Sub(Truncate(now))
	days := int(diff.Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days + 1
}

// FilterByRange returns the subset of dated items whose date falls inside
// [start, end], inclusive.
func FilterByRange[T any](items []T, date func(T) time.Time, start, end time.Time) []T {
	r := Range{Start: start, End: end}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if r.Contains(date(item)) {
			out = append(out, item)
		}
	}
	return out
}
