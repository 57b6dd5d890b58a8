/*
Package generic provides the domain-agnostic primitives of the earnings engine.

PURPOSE:
  This package contains the building blocks every calculator shares: exact
  decimal money and hours, wall-clock "HH:MM" arithmetic, calendar dates,
  month/year periods, and the national holiday calendar. Nothing here knows
  about contracts, allowances or standby; that lives in package earnings.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: a currency quantity, always decimal, rounded to cents once
  - Hours: a duration expressed in decimal hours (minutes / 60)
  - Minutes: an integer count of wall-clock minutes

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal everywhere, never float64 in arithmetic
  2. Exact sums: decimal addition is exact, so summing is associative and
     commutative no matter how many days are folded or in what order
  3. Total functions: helpers never panic on zero or missing input

USAGE:
  pay := generic.RoundMoney(rate.Mul(generic.HoursFromMinutes(90)))

SEE ALSO:
  - clock.go: minute-of-day parsing and classification
  - calendar.go: holiday rules
  - period.go: month and year boundaries
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// QUANTITIES
// =============================================================================

// Minutes is a count of wall-clock minutes. Never negative once produced by
// Duration.
type Minutes int

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour

	// StandardDayMinutes is the ordinary working day (8h) used whenever a
	// contract does not say otherwise.
	StandardDayMinutes Minutes = 8 * MinutesPerHour
)

var sixty = decimal.NewFromInt(MinutesPerHour)

// Hours converts the minute count to decimal hours.
func (m Minutes) Hours() decimal.Decimal { return HoursFromMinutes(m) }

// HoursFromMinutes converts minutes to decimal hours.
func HoursFromMinutes(m Minutes) decimal.Decimal {
	if m == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(m)).Div(sixty)
}

// PayForMinutes returns rate × multiplier × minutes/60, rounded to cents.
// Multiplication happens before the division so whole-minute amounts stay exact.
func PayForMinutes(hourlyRate, multiplier decimal.Decimal, m Minutes) decimal.Decimal {
	if m <= 0 {
		return decimal.Zero
	}
	return RoundMoney(hourlyRate.Mul(multiplier).Mul(decimal.NewFromInt(int64(m))).Div(sixty))
}

// RoundMoney rounds a currency value to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// OrDefault returns d unless it is zero, in which case def is returned.
// Settings use zero as "not configured".
func OrDefault(d, def decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return def
	}
	return d
}

// OrDefaultNull returns d when it is set, even to zero, and def otherwise.
func OrDefaultNull(d decimal.NullDecimal, def decimal.Decimal) decimal.NullDecimal {
	if d.Valid {
		return d
	}
	return decimal.NewNullDecimal(def)
}

// MinDecimal returns the smaller of a and b.
func MinDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MaxDecimal returns the larger of a and b.
func MaxDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
