/*
calculator.go - Ordinary pay under a travel-time policy

PURPOSE:
  Prices the ordinary working day: shifts plus commute. The standard day
  (8h by default) is the threshold every policy measures against; what
  happens to the minutes past it is what the TravelTimePolicy decides.

POLICIES:
  RateExcess (default):
    work+travel <= 8h  -> flat daily rate, travel absorbed
    work+travel  > 8h  -> flat daily rate + every excess minute at the travel
                          rate, whether the minute was work or travel

  RateAll:
    travel always at the travel rate; work up to 8h covered by the daily
    rate; work past 8h is overtime

  OvertimeExcess:
    flat daily rate for the first 8h combined; every excess minute is
    overtime, travel included

  AsWork:
    work+travel  < 8h  -> hours x hourly rate
    work+travel >= 8h  -> daily rate + overtime on the remainder

OVERTIME MULTIPLIER:
  Each overtime minute picks its own tier: night > holiday/Sunday >
  Saturday > night-until-22 > day.

ORDINARY BONUS:
  Minutes inside the regular portion that fall in a premium category
  (night, holiday, Saturday, ...) earn (premium - 1) x hourly rate on top,
  even when no threshold was crossed.

SEE ALSO:
  - timeline.go: minute classification
  - breakdown.go: where the result lands in DailyBreakdown
*/
package earnings

import (
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

// OrdinaryBreakdown is the priced ordinary day.
type OrdinaryBreakdown struct {
	// Hours worked (work and travel minutes) per category.
	Hours ByCategory `json:"hours"`
	// Earnings per category: regular pay lands in Ordinary, bonuses,
	// overtime and travel pay in the category of their minutes.
	Earnings ByCategory `json:"earnings"`

	RegularHours  decimal.Decimal `json:"regularHours"`
	RegularPay    decimal.Decimal `json:"regularPay"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	OvertimePay   decimal.Decimal `json:"overtimePay"`
	TravelHours   decimal.Decimal `json:"travelHours"`
	TravelPay     decimal.Decimal `json:"travelPay"`
	Bonus         decimal.Decimal `json:"bonus"`
	Total         decimal.Decimal `json:"total"`
}

// Add sums two ordinary breakdowns field by field.
func (o OrdinaryBreakdown) Add(x OrdinaryBreakdown) OrdinaryBreakdown {
	return OrdinaryBreakdown{
		Hours:         o.Hours.Add(x.Hours),
		Earnings:      o.Earnings.Add(x.Earnings),
		RegularHours:  o.RegularHours.Add(x.RegularHours),
		RegularPay:    o.RegularPay.Add(x.RegularPay),
		OvertimeHours: o.OvertimeHours.Add(x.OvertimeHours),
		OvertimePay:   o.OvertimePay.Add(x.OvertimePay),
		TravelHours:   o.TravelHours.Add(x.TravelHours),
		TravelPay:     o.TravelPay.Add(x.TravelPay),
		Bonus:         o.Bonus.Add(x.Bonus),
		Total:         o.Total.Add(x.Total),
	}
}

// Equal compares numerically.
func (o OrdinaryBreakdown) Equal(x OrdinaryBreakdown) bool {
	return o.Hours.Equal(x.Hours) && o.Earnings.Equal(x.Earnings) &&
		o.RegularHours.Equal(x.RegularHours) && o.RegularPay.Equal(x.RegularPay) &&
		o.OvertimeHours.Equal(x.OvertimeHours) && o.OvertimePay.Equal(x.OvertimePay) &&
		o.TravelHours.Equal(x.TravelHours) && o.TravelPay.Equal(x.TravelPay) &&
		o.Bonus.Equal(x.Bonus) && o.Total.Equal(x.Total)
}

// =============================================================================
// ORDINARY CALCULATION
// =============================================================================

// CalculateOrdinary prices an ordinary working day. The entry's day type is
// not consulted; fixed-payout days go through FixedDayPay.
func CalculateOrdinary(entry WorkEntry, cfg Config) (OrdinaryBreakdown, []generic.Diagnostic) {
	cfg = cfg.WithDefaults()
	ctx := newDayContext(entry.Date, cfg)
	var r segmentReader
	tl := ordinaryTimeline(entry, ctx, &r)
	return priceOrdinary(tl, cfg.Contract), r.diags
}

// FixedDayPay is the payout of a vacation, sick, leave, rest or holiday day.
func FixedDayPay(c ContractSettings) OrdinaryBreakdown {
	pay := generic.RoundMoney(c.DailyRate)
	return OrdinaryBreakdown{
		Earnings:   ByCategory{}.Plus(CatOrdinary, pay),
		RegularPay: pay,
		Total:      pay,
	}
}

// ordinaryPricer accumulates the parts of an OrdinaryBreakdown.
type ordinaryPricer struct {
	c   ContractSettings
	out OrdinaryBreakdown
}

func priceOrdinary(tl timeline, c ContractSettings) OrdinaryBreakdown {
	p := &ordinaryPricer{c: c}
	std := c.StandardDay
	total := generic.Minutes(len(tl))

	p.out.Hours = tl.byCategory().hours()

	switch c.TravelPolicy {
	case AsWork:
		regular, excess := tl.split(std)
		if total < std {
			p.regularHourly(generic.Minutes(len(regular)))
		} else {
			p.regularDaily(generic.Minutes(len(regular)))
		}
		p.bonus(regular.byCategory())
		p.overtime(excess)

	case RateAll:
		travel := tl.only(tickTravel)
		work := tl.only(tickWork)
		regular, excess := work.split(std)
		if len(work) > 0 {
			p.regularDaily(generic.Minutes(len(regular)))
		}
		p.bonus(regular.byCategory())
		p.overtime(excess)
		p.travel(travel)

	case OvertimeExcess:
		regular, excess := tl.split(std)
		if total > 0 {
			p.regularDaily(generic.Minutes(len(regular)))
		}
		p.bonus(regular.byCategory(tickWork))
		p.overtime(excess)

	default: // RateExcess
		regular, excess := tl.split(std)
		if total > 0 {
			p.regularDaily(generic.Minutes(len(regular)))
		}
		p.bonus(regular.byCategory(tickWork))
		p.travel(excess)
	}

	o := &p.out
	o.Total = o.RegularPay.Add(o.OvertimePay).Add(o.TravelPay).Add(o.Bonus)
	return p.out
}

func (p *ordinaryPricer) regularDaily(m generic.Minutes) {
	pay := generic.RoundMoney(p.c.DailyRate)
	p.out.RegularHours = m.Hours()
	p.out.RegularPay = pay
	p.out.Earnings = p.out.Earnings.Plus(CatOrdinary, pay)
}

func (p *ordinaryPricer) regularHourly(m generic.Minutes) {
	pay := generic.PayForMinutes(p.c.HourlyRate, decimal.NewFromInt(1), m)
	p.out.RegularHours = m.Hours()
	p.out.RegularPay = pay
	p.out.Earnings = p.out.Earnings.Plus(CatOrdinary, pay)
}

// bonus adds (premium - 1) x hourly for every premium-category minute.
func (p *ordinaryPricer) bonus(m categoryMinutes) {
	one := decimal.NewFromInt(1)
	for _, cat := range Categories {
		extra := p.c.Premiums.For(cat).Sub(one)
		if m[cat] == 0 || !extra.IsPositive() {
			continue
		}
		pay := generic.PayForMinutes(p.c.HourlyRate, extra, m[cat])
		p.out.Bonus = p.out.Bonus.Add(pay)
		p.out.Earnings = p.out.Earnings.Plus(cat, pay)
	}
}

// overtime prices every minute at the multiplier of its tier.
func (p *ordinaryPricer) overtime(tl timeline) {
	if len(tl) == 0 {
		return
	}
	p.out.OvertimeHours = generic.Minutes(len(tl)).Hours()
	for tier, mins := range tl.byTier() {
		mult := p.c.Overtime.For(OvertimeTier(tier))
		for _, cat := range Categories {
			pay := generic.PayForMinutes(p.c.HourlyRate, mult, mins[cat])
			p.out.OvertimePay = p.out.OvertimePay.Add(pay)
			p.out.Earnings = p.out.Earnings.Plus(cat, pay)
		}
	}
}

// travel prices minutes at hourly x travel compensation rate.
func (p *ordinaryPricer) travel(tl timeline) {
	if len(tl) == 0 {
		return
	}
	p.out.TravelHours = generic.Minutes(len(tl)).Hours()
	mins := tl.byCategory()
	for _, cat := range Categories {
		pay := generic.PayForMinutes(p.c.HourlyRate, p.c.TravelCompensationRate.Decimal, mins[cat])
		p.out.TravelPay = p.out.TravelPay.Add(pay)
		p.out.Earnings = p.out.Earnings.Plus(cat, pay)
	}
}
