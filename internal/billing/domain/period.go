package billing

import "time"

// Period is one calendar billing period.
type Period struct {
	Month time.Month
	Year  int
}

// NewPeriod validates a month/year pair.
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, ErrInvalidMonth
	}
	if year <= 0 {
		return Period{}, ErrInvalidYear
	}
	return Period{Month: time.Month(month), Year: year}, nil
}

// CurrentPeriod returns the period containing now.
func CurrentPeriod(now time.Time) Period {
	return Period{Month: now.Month(), Year: now.Year()}
}

// LastPeriod returns the period before the one containing now.
// January rolls back to December of the prior year.
func LastPeriod(now time.Time) Period {
	month := now.Month() - 1
	year := now.Year()
	if month < time.January {
		month = time.December
		year--
	}
	return Period{Month: month, Year: year}
}

// Label renders the period as the report tab name, e.g. "January 2026".
func (p Period) Label() string {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Contains reports whether a date falls inside the period.
func (p Period) Contains(date time.Time) bool {
	return date.Month() == p.Month && date.Year() == p.Year
}
