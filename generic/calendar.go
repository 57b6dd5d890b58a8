package generic

import (
	"sort"
	"time"
)

// =============================================================================
// HOLIDAY CALENDAR - National fixed and moving holidays
// =============================================================================

// Holiday is a dated public holiday.
type Holiday struct {
	Date   Date   `json:"date"`
	Name   string `json:"name"`
	Moving bool   `json:"moving"` // derived from Easter
}

// MonthDay is a recurring (month, day) pair.
type MonthDay struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
	Name  string     `json:"name"`
}

// HolidayCalendar provides holiday lookup.
type HolidayCalendar interface {
	// IsHoliday reports whether the day is a public holiday.
	IsHoliday(date Date) bool

	// Holidays lists the holidays of a year in date order.
	Holidays(year int) []Holiday
}

// FixedHolidays are the ten national holidays that fall on the same day
// every year.
var FixedHolidays = []MonthDay{
	{time.January, 1, "Capodanno"},
	{time.January, 6, "Epifania"},
	{time.April, 25, "Festa della Liberazione"},
	{time.May, 1, "Festa del Lavoro"},
	{time.June, 2, "Festa della Repubblica"},
	{time.August, 15, "Ferragosto"},
	{time.November, 1, "Ognissanti"},
	{time.December, 8, "Immacolata Concezione"},
	{time.December, 25, "Natale"},
	{time.December, 26, "Santo Stefano"},
}

// NationalCalendar is the national holiday calendar. Extra adds local
// recurring holidays (e.g. a patron saint) on top of the national ones.
type NationalCalendar struct {
	Extra []MonthDay
}

// Compile-time check
var _ HolidayCalendar = NationalCalendar{}

// IsHoliday reports whether date is a fixed holiday, Easter Sunday or Easter Monday.
func (c NationalCalendar) IsHoliday(date Date) bool {
	if date.IsZero() {
		return false
	}
	for _, md := range FixedHolidays {
		if date.Month() == md.Month && date.Day() == md.Day {
			return true
		}
	}
	for _, md := range c.Extra {
		if date.Month() == md.Month && date.Day() == md.Day {
			return true
		}
	}
	easter := Easter(date.Year())
	return date.Equal(easter) || date.Equal(easter.AddDays(1))
}

// Holidays lists every holiday of the year, sorted by date.
func (c NationalCalendar) Holidays(year int) []Holiday {
	out := make([]Holiday, 0, len(FixedHolidays)+len(c.Extra)+2)
	for _, md := range append(append([]MonthDay{}, FixedHolidays...), c.Extra...) {
		out = append(out, Holiday{Date: NewDate(year, md.Month, md.Day), Name: md.Name})
	}
	easter := Easter(year)
	out = append(out,
		Holiday{Date: easter, Name: "Pasqua", Moving: true},
		Holiday{Date: easter.AddDays(1), Name: "Lunedì dell'Angelo", Moving: true},
	)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Easter returns Easter Sunday of the Gregorian year (Meeus/Jones/Butcher).
func Easter(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return NewDate(year, time.Month(month), day)
}

// IsHoliday checks the national calendar.
func IsHoliday(date Date) bool {
	return NationalCalendar{}.IsHoliday(date)
}

// =============================================================================
// DAY CATEGORY
// =============================================================================

// DayCategory is how a calendar day is treated by premiums and indemnities.
type DayCategory string

const (
	Weekday  DayCategory = "weekday"
	Saturday DayCategory = "saturday"
	RestDay  DayCategory = "rest_day"
)

// DayCategoryOf classifies date: Sunday or holiday is a rest day, Saturday is
// a rest day only when saturdayAsRest is set. A nil calendar means national.
func DayCategoryOf(cal HolidayCalendar, date Date, saturdayAsRest bool) DayCategory {
	if cal == nil {
		cal = NationalCalendar{}
	}
	switch {
	case date.IsSunday() || cal.IsHoliday(date):
		return RestDay
	case date.IsSaturday() && saturdayAsRest:
		return RestDay
	case date.IsSaturday():
		return Saturday
	default:
		return Weekday
	}
}
