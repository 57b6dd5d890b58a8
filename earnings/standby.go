/*
standby.go - On-call (reperibilità) days and their interventions

PURPOSE:
  Prices the call-outs of an on-call day and its daily indemnity.

MEMBERSHIP:
  A day is on call when the entry's manual flag says so, or, with no manual
  flag, when the standby calendar selects it. A manual false beats the
  calendar. Disabled standby settings make no day active.

8-HOUR RULE:
  Work minutes of all interventions are summed. Below the standard day they
  are paid hourly x category premium. Once the sum reaches the standard day,
  the minutes past it (in call-out order) are paid hourly x overtime tier
  instead. Premium categories and the 8h rule are independent.

TRAVEL:
  Intervention travel is always hourly x travel compensation rate.

INDEMNITY:
  Weekday (Saturday included unless saturdayAsRest) -> weekday rate of the
  allowance type; Sunday/holiday (and Saturday with saturdayAsRest) -> the
  rest-day rate. Paid on every active day, with or without interventions.
*/
package earnings

import (
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

// StandbyBreakdown is the priced on-call part of a day.
type StandbyBreakdown struct {
	WorkHours      ByCategory      `json:"workHours"`
	TravelHours    ByCategory      `json:"travelHours"`
	WorkEarnings   ByCategory      `json:"workEarnings"`
	TravelEarnings ByCategory      `json:"travelEarnings"`
	OvertimeHours  decimal.Decimal `json:"overtimeHours"`
	DailyIndemnity decimal.Decimal `json:"dailyIndemnity"`
	TotalEarnings  decimal.Decimal `json:"totalEarnings"`
}

// InterventionEarnings is what the call-outs earned, indemnity excluded.
func (s StandbyBreakdown) InterventionEarnings() decimal.Decimal {
	return s.WorkEarnings.Total().Add(s.TravelEarnings.Total())
}

// Add sums two standby breakdowns field by field.
func (s StandbyBreakdown) Add(x StandbyBreakdown) StandbyBreakdown {
	return StandbyBreakdown{
		WorkHours:      s.WorkHours.Add(x.WorkHours),
		TravelHours:    s.TravelHours.Add(x.TravelHours),
		WorkEarnings:   s.WorkEarnings.Add(x.WorkEarnings),
		TravelEarnings: s.TravelEarnings.Add(x.TravelEarnings),
		OvertimeHours:  s.OvertimeHours.Add(x.OvertimeHours),
		DailyIndemnity: s.DailyIndemnity.Add(x.DailyIndemnity),
		TotalEarnings:  s.TotalEarnings.Add(x.TotalEarnings),
	}
}

// Equal compares numerically.
func (s StandbyBreakdown) Equal(x StandbyBreakdown) bool {
	return s.WorkHours.Equal(x.WorkHours) && s.TravelHours.Equal(x.TravelHours) &&
		s.WorkEarnings.Equal(x.WorkEarnings) && s.TravelEarnings.Equal(x.TravelEarnings) &&
		s.OvertimeHours.Equal(x.OvertimeHours) && s.DailyIndemnity.Equal(x.DailyIndemnity) &&
		s.TotalEarnings.Equal(x.TotalEarnings)
}

// =============================================================================
// MEMBERSHIP
// =============================================================================

// IsStandbyDay resolves on-call membership: manual flag first, calendar second.
// Disabled settings switch off the calendar only; a manual flag still wins.
func IsStandbyDay(entry WorkEntry, s StandbySettings) bool {
	if entry.StandbyOverride != nil {
		return *entry.StandbyOverride
	}
	return s.Enabled && s.Selected(entry.Date)
}

// DailyIndemnity returns the indemnity an active on-call day earns.
func DailyIndemnity(date generic.Date, s StandbySettings, cal generic.HolidayCalendar) decimal.Decimal {
	pair := s.Indemnities.For(s.AllowanceType)
	if generic.DayCategoryOf(cal, date, s.SaturdayAsRest) == generic.RestDay {
		return generic.RoundMoney(pair.RestDay.Decimal)
	}
	return generic.RoundMoney(pair.Weekday.Decimal)
}

// =============================================================================
// CALCULATION
// =============================================================================

// CalculateStandby prices the interventions of the entry and, when the day is
// on call, adds the daily indemnity. Interventions logged on a day that is not
// on call are still paid; only the indemnity depends on membership.
func CalculateStandby(entry WorkEntry, cfg Config) (StandbyBreakdown, []generic.Diagnostic) {
	cfg = cfg.WithDefaults()
	ctx := newDayContext(entry.Date, cfg)
	var r segmentReader
	tl := interventionTimeline(entry, ctx, &r)
	return priceStandby(tl, entry, cfg), r.diags
}

func priceStandby(tl timeline, entry WorkEntry, cfg Config) StandbyBreakdown {
	out := priceInterventions(tl, cfg.Contract)
	if IsStandbyDay(entry, cfg.Standby) {
		out.DailyIndemnity = DailyIndemnity(entry.Date, cfg.Standby, cfg.Calendar)
	}
	out.TotalEarnings = out.InterventionEarnings().Add(out.DailyIndemnity)
	return out
}

func priceInterventions(tl timeline, c ContractSettings) StandbyBreakdown {
	var out StandbyBreakdown
	work := tl.only(tickWork)
	travel := tl.only(tickTravel)

	out.WorkHours = work.byCategory().hours()
	out.TravelHours = travel.byCategory().hours()

	// Nothing is promoted until the day's call-out work passes the threshold.
	plain, promoted := work.split(c.StandardDay)

	plainMins := plain.byCategory()
	for _, cat := range Categories {
		pay := generic.PayForMinutes(c.HourlyRate, c.Premiums.For(cat), plainMins[cat])
		out.WorkEarnings = out.WorkEarnings.Plus(cat, pay)
	}

	if len(promoted) > 0 {
		out.OvertimeHours = generic.Minutes(len(promoted)).Hours()
		for tier, mins := range promoted.byTier() {
			mult := c.Overtime.For(OvertimeTier(tier))
			for _, cat := range Categories {
				out.WorkEarnings = out.WorkEarnings.Plus(cat, generic.PayForMinutes(c.HourlyRate, mult, mins[cat]))
			}
		}
	}

	travelMins := travel.byCategory()
	for _, cat := range Categories {
		pay := generic.PayForMinutes(c.HourlyRate, c.TravelCompensationRate.Decimal, travelMins[cat])
		out.TravelEarnings = out.TravelEarnings.Plus(cat, pay)
	}
	return out
}
