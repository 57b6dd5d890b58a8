package earnings

import (
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// TRAVEL ALLOWANCE
// =============================================================================

// TravelAllowanceInput is what the travel allowance looks at for one day.
type TravelAllowanceInput struct {
	Date          generic.Date
	WorkMinutes   generic.Minutes
	TravelMinutes generic.Minutes

	StandbyActive        bool
	StandbyWorkMinutes   generic.Minutes
	StandbyTravelMinutes generic.Minutes
}

// TravelAllowance is the outcome of the travel allowance rules.
type TravelAllowance struct {
	Amount      decimal.Decimal `json:"amount"`
	ActivatedBy TravelRule      `json:"activatedBy,omitempty"`
	Manual      bool            `json:"manual,omitempty"`
	Suppressed  bool            `json:"suppressed,omitempty"` // Sunday/holiday
}

// CalculateTravelAllowance evaluates activation (first satisfied rule in
// priority order wins, so the reported rule is deterministic) and then the
// amount (ProportionalCcnl > HalfAllowanceHalfDay > FullAllowanceHalfDay).
func CalculateTravelAllowance(in TravelAllowanceInput, cfg Config) TravelAllowance {
	cfg = cfg.WithDefaults()
	s := cfg.Travel
	std := cfg.Contract.StandardDay
	var out TravelAllowance
	if !s.Enabled {
		return out
	}

	rules := s.RuleSet()
	effective := in.WorkMinutes + in.TravelMinutes

	manual, hasManual := s.Override(in.Date)
	switch {
	case hasManual && !manual:
		out.Manual = true
		return out
	case hasManual:
		out.Manual = true
	default:
		rule, eff, ok := activate(rules, in, std)
		if !ok {
			return out
		}
		out.ActivatedBy = rule
		effective = eff
		if generic.DayCategoryOf(cfg.Calendar, in.Date, false) == generic.RestDay && !s.ApplyOnSpecialDays {
			out.Suppressed = true
			return out
		}
	}

	out.Amount = travelAllowanceAmount(rules, s.DailyAmount.Decimal, effective, std, out.Manual)
	return out
}

// activate returns the rule that switches the allowance on and the hours the
// amount is measured on.
func activate(rules TravelRuleSet, in TravelAllowanceInput, std generic.Minutes) (TravelRule, generic.Minutes, bool) {
	worked := in.WorkMinutes + in.TravelMinutes
	for _, r := range ActivationRules {
		if !rules.Has(r) {
			continue
		}
		switch r {
		case RuleAlways:
			return r, worked, true
		case RuleFullDayOnly:
			if worked >= std {
				return r, worked, true
			}
		case RuleWithTravel:
			if in.TravelMinutes > 0 {
				return r, worked, true
			}
		case RuleAlsoOnStandby:
			if in.StandbyActive && in.WorkMinutes == 0 && in.StandbyWorkMinutes > 0 {
				return r, in.StandbyWorkMinutes + in.StandbyTravelMinutes, true
			}
		}
	}
	// Proportional-only configurations activate on any worked time.
	if !rules.HasActivation() && rules.Has(RuleProportionalCcnl) && worked > 0 {
		return RuleProportionalCcnl, worked, true
	}
	return 0, 0, false
}

// travelAllowanceAmount applies exactly one amount rule. The proportional
// amount is final: it is never halved again.
func travelAllowanceAmount(rules TravelRuleSet, daily decimal.Decimal, effective, std generic.Minutes, manual bool) decimal.Decimal {
	if manual && effective == 0 {
		return generic.RoundMoney(daily)
	}
	switch {
	case rules.Has(RuleProportionalCcnl):
		ratio := generic.MinDecimal(decimal.NewFromInt(1), decimal.NewFromInt(int64(effective)).Div(decimal.NewFromInt(int64(std))))
		return generic.RoundMoney(daily.Mul(ratio))
	case rules.Has(RuleHalfAllowanceHalfDay) && effective > 0 && effective < std:
		return generic.RoundMoney(daily.Div(decimal.NewFromInt(2)))
	default: // FullAllowanceHalfDay, or no amount rule
		return generic.RoundMoney(daily)
	}
}

// =============================================================================
// MEAL ALLOWANCE
// =============================================================================

// MealAllowance is the value received per meal slot.
type MealAllowance struct {
	Lunch   decimal.Decimal `json:"lunch"`
	Dinner  decimal.Decimal `json:"dinner"`
	Voucher decimal.Decimal `json:"voucher"`
	Cash    decimal.Decimal `json:"cash"`
	Total   decimal.Decimal `json:"total"`
}

// CalculateMealAllowance takes cash when a slot has a cash amount, otherwise
// the voucher value when the voucher flag is set. Cash and voucher of the same
// slot are never summed.
func CalculateMealAllowance(flags MealFlags, cfg Config) MealAllowance {
	cfg = cfg.WithDefaults()
	var out MealAllowance
	if !cfg.Meal.Enabled {
		return out
	}
	slot := func(voucher bool, cash, voucherValue decimal.Decimal) decimal.Decimal {
		switch {
		case cash.IsPositive():
			out.Cash = out.Cash.Add(generic.RoundMoney(cash))
			return generic.RoundMoney(cash)
		case voucher:
			out.Voucher = out.Voucher.Add(generic.RoundMoney(voucherValue))
			return generic.RoundMoney(voucherValue)
		default:
			return decimal.Zero
		}
	}
	out.Lunch = slot(flags.LunchVoucher, flags.LunchCash, cfg.Meal.LunchVoucher)
	out.Dinner = slot(flags.DinnerVoucher, flags.DinnerCash, cfg.Meal.DinnerVoucher)
	out.Total = out.Lunch.Add(out.Dinner)
	return out
}
