/*
breakdown.go - One day, fully priced

PURPOSE:
  Composes the ordinary, standby and allowance parts of a day into a
  DailyBreakdown. CalculateDay is the single entry point every caller uses,
  so two call sites computing "the same" day cannot diverge.

TOTAL:
  totalEarnings = ordinary.total + standby.totalEarnings + allowances.travel

  allowances.standby mirrors the standby daily indemnity, which is already
  part of standby.totalEarnings; it is reported, not added twice.
  allowances.meal is tracked but never part of totalEarnings.

FIXED PAYOUT DAYS:
  Vacation, sick, leave, rest and holiday days pay the daily rate as
  ordinary earnings. Shifts and commute are ignored and no travel allowance
  is due. On-call indemnity and interventions are still priced.

SEE ALSO:
  - summary.go: folding days into months and years
*/
package earnings

import (
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

// Allowances are the non-hourly amounts of a day.
type Allowances struct {
	Travel  decimal.Decimal `json:"travel"`
	Standby decimal.Decimal `json:"standby"`
	Meal    decimal.Decimal `json:"meal"`
}

// Add sums two allowance sets.
func (a Allowances) Add(x Allowances) Allowances {
	return Allowances{
		Travel:  a.Travel.Add(x.Travel),
		Standby: a.Standby.Add(x.Standby),
		Meal:    a.Meal.Add(x.Meal),
	}
}

// Equal compares numerically.
func (a Allowances) Equal(x Allowances) bool {
	return a.Travel.Equal(x.Travel) && a.Standby.Equal(x.Standby) && a.Meal.Equal(x.Meal)
}

// Totals is the numeric shape shared by a day and a summary.
type Totals struct {
	Ordinary      OrdinaryBreakdown `json:"ordinary"`
	Standby       StandbyBreakdown  `json:"standby"`
	Allowances    Allowances        `json:"allowances"`
	TotalEarnings decimal.Decimal   `json:"totalEarnings"`
}

// Add sums every leaf of two totals.
func (t Totals) Add(x Totals) Totals {
	return Totals{
		Ordinary:      t.Ordinary.Add(x.Ordinary),
		Standby:       t.Standby.Add(x.Standby),
		Allowances:    t.Allowances.Add(x.Allowances),
		TotalEarnings: t.TotalEarnings.Add(x.TotalEarnings),
	}
}

// Equal compares every leaf numerically.
func (t Totals) Equal(x Totals) bool {
	return t.Ordinary.Equal(x.Ordinary) && t.Standby.Equal(x.Standby) &&
		t.Allowances.Equal(x.Allowances) && t.TotalEarnings.Equal(x.TotalEarnings)
}

// DailyBreakdown is the priced result of one WorkEntry. It is a value: built
// once by CalculateDay and never mutated.
type DailyBreakdown struct {
	Date    generic.Date `json:"date"`
	DayType DayType      `json:"dayType"`
	Totals

	StandbyActive   bool                 `json:"standbyActive"`
	TravelAllowance TravelAllowance      `json:"travelAllowance"`
	Meal            MealAllowance        `json:"meal"`
	Diagnostics     []generic.Diagnostic `json:"diagnostics,omitempty"`
}

// Combine composes the three priced parts of a day.
//
// TotalEarnings is ordinary.Total + standby.TotalEarnings + allowances.Travel.
// allowances.Standby is reported but not added: it mirrors the indemnity that
// standby.TotalEarnings already contains, so a value passed there that differs
// from standby.DailyIndemnity never reaches the total. Meal is excluded too.
func Combine(ordinary OrdinaryBreakdown, standby StandbyBreakdown, allowances Allowances) DailyBreakdown {
	return DailyBreakdown{Totals: Totals{
		Ordinary:      ordinary,
		Standby:       standby,
		Allowances:    allowances,
		TotalEarnings: ordinary.Total.Add(standby.TotalEarnings).Add(allowances.Travel),
	}}
}

// CalculateDay prices one entry under cfg. Missing settings are replaced by
// defaults and malformed time fields by absent segments; both are reported in
// Diagnostics.
func CalculateDay(entry WorkEntry, cfg Config) DailyBreakdown {
	var diags []generic.Diagnostic
	if cfg.Contract.HourlyRate.IsZero() {
		diags = append(diags, generic.Diagnostic{
			Code:    generic.DiagDefaultApplied,
			Field:   "contract.hourlyRate",
			Message: "hourly rate not configured, using " + DefaultHourlyRate.String(),
		})
	}
	cfg = cfg.WithDefaults()

	ctx := newDayContext(entry.Date, cfg)
	r := segmentReader{diags: diags}
	dayType := entry.EffectiveDayType()

	interventions := interventionTimeline(entry, ctx, &r)
	standby := priceStandby(interventions, entry, cfg)
	active := IsStandbyDay(entry, cfg.Standby)

	var ordinary OrdinaryBreakdown
	var travel TravelAllowance
	if dayType.IsFixedPayout() {
		ordinary = FixedDayPay(cfg.Contract)
	} else {
		tl := ordinaryTimeline(entry, ctx, &r)
		ordinary = priceOrdinary(tl, cfg.Contract)
		travel = CalculateTravelAllowance(TravelAllowanceInput{
			Date:                 entry.Date,
			WorkMinutes:          tl.count(tickWork),
			TravelMinutes:        tl.count(tickTravel),
			StandbyActive:        active,
			StandbyWorkMinutes:   interventions.count(tickWork),
			StandbyTravelMinutes: interventions.count(tickTravel),
		}, cfg)
	}
	meal := CalculateMealAllowance(entry.Meals, cfg)

	out := Combine(ordinary, standby, Allowances{
		Travel:  travel.Amount,
		Standby: standby.DailyIndemnity,
		Meal:    meal.Total,
	})
	out.Date = entry.Date
	out.DayType = dayType
	out.StandbyActive = active
	out.TravelAllowance = travel
	out.Meal = meal
	out.Diagnostics = r.diags
	return out
}

// CalculateDays prices entries in order.
func CalculateDays(entries []WorkEntry, cfg Config) []DailyBreakdown {
	out := make([]DailyBreakdown, 0, len(entries))
	for _, e := range entries {
		out = append(out, CalculateDay(e, cfg))
	}
	return out
}
