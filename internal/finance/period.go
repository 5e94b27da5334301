package finance

import "time"

// MonthWindow returns the half-open interval [first day of the month,
// first day of the next month) in UTC. Transactions dated inside the window
// belong to that month's spending.
func MonthWindow(month int, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// ValidMonth reports whether month is a calendar month number.
func ValidMonth(month int) bool {
	return month >= 1 && month <= 12
}
