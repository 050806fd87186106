package cycle

import "time"

// Project expands a monthly recurring rule into concrete occurrence dates,
// one per month from from's month through the given target month, inclusive.
// The rule's day-of-month is clamped to each month's actual length, so day=31
// lands on February 28th (or 29th), never an invalid date.
//
// endDate, when non-nil, is an inclusive boundary: the first occurrence past
// it stops the projection entirely — dates are monotonically increasing, so
// no later month can qualify either.
func Project(day int, from time.Time, throughYear int, throughMonth time.Month, endDate *time.Time) []time.Time {
	loc := from.Location()
	year, month, _ := from.Date()

	var out []time.Time
	for year < throughYear || (year == throughYear && month <= throughMonth) {
		target := dateOf(year, month, ClampDay(year, month, day), loc)
		if endDate != nil && target.After(Truncate(*endDate)) {
			break
		}
		out = append(out, target)

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return out
}

// OccurrenceInRange returns the single occurrence date a rule has inside the
// given cycle range, or false when the range holds none (end date passed, or
// the clamped day misses the range entirely).
func OccurrenceInRange(day int, r Range, endDate *time.Time) (time.Time, bool) {
	ey, em, _ := r.End.Date()
	for _, occ := range Project(day, r.Start, ey, em, endDate) {
		if r.Contains(occ) {
			return occ, true
		}
	}
	return time.Time{}, false
}
