package calendar

import "time"

// Back returns the date that is days business days before d, skipping
// Saturdays, Sundays, and any date in the exclusion set. The start date is
// never counted as one of the subtracted days, so Back(d, 0, set) == d even
// when d itself falls on an excluded day. For days >= 1 the result is always
// a business day: the walk decrements the remaining count only when it lands
// on a non-excluded weekday, so consecutive exclusions (a weekend butted up
// against a holiday) are skipped without consuming the count.
func Back(d time.Time, days int, set Set) time.Time {
	cur := Midnight(d)
	remaining := days
	for remaining > 0 {
		cur = cur.AddDate(0, 0, -1)
		if isBusinessDay(cur, set) {
			remaining--
		}
	}
	return cur
}

func isBusinessDay(d time.Time, set Set) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !set.Contains(d)
}
