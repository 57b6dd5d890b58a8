package generic

import "time"

// =============================================================================
// PERIOD - Month and year boundaries for summaries
// =============================================================================

// Period is an inclusive [Start, End] range of days.
//
// Examples:
//   - March 2025: Mar 1 - Mar 31
//   - Year 2025:  Jan 1 - Dec 31
type Period struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// MonthPeriod returns the calendar month containing year/month.
func MonthPeriod(year int, month time.Month) Period {
	start := NewDate(year, month, 1)
	return Period{Start: start, End: start.AddMonths(1).AddDays(-1)}
}

// YearPeriod returns Jan 1 - Dec 31 of year.
func YearPeriod(year int) Period {
	return Period{Start: NewDate(year, time.January, 1), End: NewDate(year, time.December, 31)}
}

// Validate returns ErrInvalidPeriod when End is before Start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Days returns all days in the period.
func (p Period) Days() []Date {
	var days []Date
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Months splits the period into the calendar months it touches, each clipped
// to the period.
func (p Period) Months() []Period {
	var months []Period
	for cursor := NewDate(p.Start.Year(), p.Start.Month(), 1); cursor.BeforeOrEqual(p.End); cursor = cursor.AddMonths(1) {
		m := MonthPeriod(cursor.Year(), cursor.Month())
		if m.Start.Before(p.Start) {
			m.Start = p.Start
		}
		if m.End.After(p.End) {
			m.End = p.End
		}
		months = append(months, m)
	}
	return months
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
