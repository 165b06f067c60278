package report

import (
	"fmt"
	"time"
)

// Period is a reporting time scope: a whole year, or one month of a year.
// Month == 0 means the whole year.
type Period struct {
	Month int
	Year  int
}

// YearPeriod returns a whole-year scope.
func YearPeriod(year int) Period {
	return Period{Year: year}
}

// MonthPeriod returns a single-month scope.
func MonthPeriod(month, year int) Period {
	return Period{Month: month, Year: year}
}

// Valid reports whether the period is usable for a report.
func (p Period) Valid() bool {
	if p.Year < 2000 || p.Year > 9999 {
		return false
	}
	return p.Month >= 0 && p.Month <= 12
}

// Bounds returns the inclusive first and last day of the period.
func (p Period) Bounds() (from, to time.Time) {
	if p.Month == 0 {
		from = time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to = time.Date(p.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
		return from, to
	}
	from = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	// Last day of the month: first day of the next month minus one day.
	to = from.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return from, to
}

// Label renders the period the way reports title it, e.g. "tháng 8/2025"
// or "năm 2024".
func (p Period) Label() string {
	if p.Month == 0 {
		return fmt.Sprintf("năm %d", p.Year)
	}
	return fmt.Sprintf("tháng %d/%d", p.Month, p.Year)
}
