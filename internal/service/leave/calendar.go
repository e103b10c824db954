package leave

import "time"

// MonthWindow returns the inclusive first and last day of a calendar month.
// The last day is computed as the first day of the following month minus one
// day, which handles month lengths and leap years.
func MonthWindow(year int, month time.Month) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return start, end
}
