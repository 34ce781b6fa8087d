package pricing

import "time"

const daysPerYear = 365.0

// YearsBetween converts a valuation date and an expiration date into the
// year fraction T used by Price: whole calendar days divided by 365.
//
// Only the year, month and day of each argument are used, so time of day,
// location and DST transitions do not shift the count. The result is zero
// or negative when expiration is on or before valuation; rejecting that is
// up to the caller.
func YearsBetween(valuation, expiration time.Time) float64 {
	return float64(DaysBetween(valuation, expiration)) / daysPerYear
}

// DaysBetween counts calendar days from valuation to expiration.
func DaysBetween(valuation, expiration time.Time) int {
	return int(calendarDate(expiration).Sub(calendarDate(valuation)) / (24 * time.Hour))
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
