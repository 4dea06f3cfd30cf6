package dashboard

import "time"

// DayBounds returns the first and last instants of now's calendar day in
// now's location. The upper bound is inclusive, matching the due_at <= end
// filter. Both bounds are built from the wall-clock date, so DST-transition
// days still span midnight to 23:59:59.999999999.
func DayBounds(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end = time.Date(y, m, d, 23, 59, 59, 999999999, now.Location())
	return start, end
}
