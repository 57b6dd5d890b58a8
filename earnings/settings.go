/*
settings.go - The active configuration bundle

PURPOSE:
  Holds the labor-contract parameters the calculators read: rates, overtime
  and premium multipliers, the travel-time policy, travel and meal allowance
  rules, and on-call (standby) indemnities. A Config is the contract between
  the persistence layer and the engine.

DEFAULTS:
  A zero field means "not configured". WithDefaults fills every such field
  from the documented defaults below, once, before any arithmetic runs.
  Travel compensation, the travel allowance amount and the standby
  indemnities may legitimately be zero, so they are NullDecimal and only an
  invalid (absent) value takes the default:

    Standard day            8h
    Night window            22:00-06:00
    Hourly rate             16.41
    Daily rate              hourly rate x standard day
    Travel compensation     1.00 (travel hour = hourly rate)
    Overtime multipliers    day 1.20, night until 22 1.25, night after 22 1.35,
                            Saturday 1.25, holiday 1.50
    Ordinary premiums       night 1.25, holiday 1.30, Saturday 1.00,
                            Saturday night 1.25, night holiday 1.50
    Travel allowance        46.48/day, rules [with_travel]
    Standby indemnity       16h: weekday 4.63 rest 17.47
                            24h: weekday 7.03 rest 19.37
    Meal vouchers           lunch 8.00, dinner 8.00

SEE ALSO:
  - rules.go: TravelTimePolicy and TravelRule vocabularies
  - factory/config.go: JSON form of this bundle
*/
package earnings

import (
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// DEFAULTS
// =============================================================================

var (
	DefaultHourlyRate             = decimal.RequireFromString("16.41")
	DefaultTravelCompensationRate = decimal.NewFromInt(1)
	DefaultTravelAllowance        = decimal.RequireFromString("46.48")
	DefaultMealVoucher            = decimal.RequireFromString("8.00")

	DefaultOvertime = OvertimeRates{
		Day:          decimal.RequireFromString("1.20"),
		NightUntil22: decimal.RequireFromString("1.25"),
		NightAfter22: decimal.RequireFromString("1.35"),
		Saturday:     decimal.RequireFromString("1.25"),
		Holiday:      decimal.RequireFromString("1.50"),
	}

	DefaultPremiums = PremiumRates{
		Night:         decimal.RequireFromString("1.25"),
		Holiday:       decimal.RequireFromString("1.30"),
		Saturday:      decimal.RequireFromString("1.00"),
		SaturdayNight: decimal.RequireFromString("1.25"),
		NightHoliday:  decimal.RequireFromString("1.50"),
	}

	DefaultIndemnities = IndemnityRates{
		H16: IndemnityPair{Weekday: configured("4.63"), RestDay: configured("17.47")},
		H24: IndemnityPair{Weekday: configured("7.03"), RestDay: configured("19.37")},
	}
)

// =============================================================================
// CONTRACT
// =============================================================================

// OvertimeRates are multipliers of the hourly rate for overtime minutes.
type OvertimeRates struct {
	Day          decimal.Decimal `json:"day"`
	NightUntil22 decimal.Decimal `json:"nightUntil22"`
	NightAfter22 decimal.Decimal `json:"nightAfter22"`
	Saturday     decimal.Decimal `json:"saturday"`
	Holiday      decimal.Decimal `json:"holiday"`
}

// PremiumRates are multipliers for ordinary (non-overtime) minutes that fall
// in a premium category. The ordinary bonus is (rate - 1) x hourly x hours.
type PremiumRates struct {
	Night         decimal.Decimal `json:"night"`
	Holiday       decimal.Decimal `json:"holiday"`
	Saturday      decimal.Decimal `json:"saturday"`
	SaturdayNight decimal.Decimal `json:"saturdayNight"`
	NightHoliday  decimal.Decimal `json:"nightHoliday"`
}

// ContractSettings are the pay parameters of the labor contract.
type ContractSettings struct {
	HourlyRate             decimal.Decimal     `json:"hourlyRate"`
	DailyRate              decimal.Decimal     `json:"dailyRate"`
	TravelCompensationRate decimal.NullDecimal `json:"travelCompensationRate"`
	StandardDay            generic.Minutes     `json:"standardDayMinutes"`
	NightStart             string              `json:"nightStart"`
	NightEnd               string              `json:"nightEnd"`
	TravelPolicy           TravelTimePolicy    `json:"travelTimePolicy"`
	Overtime               OvertimeRates       `json:"overtime"`
	Premiums               PremiumRates        `json:"premiums"`
}

// NightWindow parses the configured bounds, falling back to 22:00-06:00.
func (c ContractSettings) NightWindow() generic.NightWindow {
	start, okStart := generic.ParseClock(c.NightStart)
	end, okEnd := generic.ParseClock(c.NightEnd)
	if !okStart || !okEnd {
		return generic.DefaultNightWindow
	}
	return generic.NightWindow{Start: start, End: end}
}

// =============================================================================
// ALLOWANCES
// =============================================================================

// TravelAllowanceSettings configure the daily travel allowance (trasferta).
type TravelAllowanceSettings struct {
	Enabled            bool                `json:"enabled"`
	DailyAmount        decimal.NullDecimal `json:"dailyAmount"`
	Rules              []TravelRule        `json:"rules"`
	ApplyOnSpecialDays bool                `json:"applyOnSpecialDays"`

	// Overrides force the allowance on (true) or off (false) for a date,
	// keyed "YYYY-MM-DD".
	Overrides map[string]bool `json:"overrides,omitempty"`
}

// RuleSet returns the closed rule set of these settings.
func (s TravelAllowanceSettings) RuleSet() TravelRuleSet {
	return NewTravelRuleSet(s.Rules...)
}

// Override returns the manual override for date, if any.
func (s TravelAllowanceSettings) Override(date generic.Date) (bool, bool) {
	v, ok := s.Overrides[date.String()]
	return v, ok
}

// MealAllowanceSettings hold the voucher value of each meal slot.
type MealAllowanceSettings struct {
	Enabled       bool            `json:"enabled"`
	LunchVoucher  decimal.Decimal `json:"lunchVoucher"`
	DinnerVoucher decimal.Decimal `json:"dinnerVoucher"`
}

// =============================================================================
// STANDBY
// =============================================================================

func configured(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// AllowanceType selects the indemnity table for weekday on-call days.
type AllowanceType string

const (
	Allowance16h AllowanceType = "16h"
	Allowance24h AllowanceType = "24h"
)

// IndemnityPair holds the weekday and rest-day indemnity of one allowance type.
type IndemnityPair struct {
	Weekday decimal.NullDecimal `json:"weekday"`
	RestDay decimal.NullDecimal `json:"restDay"`
}

// IndemnityRates holds one pair per allowance type.
type IndemnityRates struct {
	H16 IndemnityPair `json:"16h"`
	H24 IndemnityPair `json:"24h"`
}

// For returns the pair of the allowance type, 24h for unknown values.
func (r IndemnityRates) For(t AllowanceType) IndemnityPair {
	if t == Allowance16h {
		return r.H16
	}
	return r.H24
}

// StandbySettings configure on-call (reperibilità) days.
type StandbySettings struct {
	Enabled        bool           `json:"enabled"`
	AllowanceType  AllowanceType  `json:"allowanceType"`
	Indemnities    IndemnityRates `json:"indemnities"`
	SaturdayAsRest bool           `json:"saturdayAsRest"`

	// Days is the on-call calendar, keyed "YYYY-MM-DD".
	Days map[string]bool `json:"days,omitempty"`
}

// Selected reports calendar membership for date.
func (s StandbySettings) Selected(date generic.Date) bool {
	return s.Days[date.String()]
}

// =============================================================================
// CONFIG - The active configuration bundle
// =============================================================================

// Config is everything the engine needs besides the work entry.
type Config struct {
	Contract ContractSettings        `json:"contract"`
	Travel   TravelAllowanceSettings `json:"travelAllowance"`
	Standby  StandbySettings         `json:"standby"`
	Meal     MealAllowanceSettings   `json:"mealAllowance"`

	// ExtraHolidays are local recurring holidays (patron saint) added to
	// the national calendar.
	ExtraHolidays []generic.MonthDay `json:"extraHolidays,omitempty"`

	// Calendar decides holidays; nil means the national calendar plus
	// ExtraHolidays.
	Calendar generic.HolidayCalendar `json:"-"`
}

// DefaultConfig returns a fully populated configuration.
func DefaultConfig() Config {
	return Config{
		Travel:  TravelAllowanceSettings{Enabled: true},
		Standby: StandbySettings{Enabled: true},
		Meal:    MealAllowanceSettings{Enabled: true},
	}.WithDefaults()
}

// WithDefaults returns a copy with every unset field replaced by its
// documented default. It never mutates the receiver's maps.
func (c Config) WithDefaults() Config {
	ct := &c.Contract
	ct.HourlyRate = generic.OrDefault(ct.HourlyRate, DefaultHourlyRate)
	if ct.StandardDay <= 0 {
		ct.StandardDay = generic.StandardDayMinutes
	}
	ct.DailyRate = generic.OrDefault(ct.DailyRate, generic.RoundMoney(ct.HourlyRate.Mul(ct.StandardDay.Hours())))
	ct.TravelCompensationRate = generic.OrDefaultNull(ct.TravelCompensationRate, DefaultTravelCompensationRate)
	if _, ok := generic.ParseClock(ct.NightStart); !ok {
		ct.NightStart = generic.DefaultNightWindow.Start.String()
	}
	if _, ok := generic.ParseClock(ct.NightEnd); !ok {
		ct.NightEnd = generic.DefaultNightWindow.End.String()
	}
	if !ct.TravelPolicy.Valid() {
		ct.TravelPolicy = RateExcess
	}

	ot := &ct.Overtime
	ot.Day = generic.OrDefault(ot.Day, DefaultOvertime.Day)
	ot.NightUntil22 = generic.OrDefault(ot.NightUntil22, DefaultOvertime.NightUntil22)
	ot.NightAfter22 = generic.OrDefault(ot.NightAfter22, DefaultOvertime.NightAfter22)
	ot.Saturday = generic.OrDefault(ot.Saturday, DefaultOvertime.Saturday)
	ot.Holiday = generic.OrDefault(ot.Holiday, DefaultOvertime.Holiday)

	pr := &ct.Premiums
	pr.Night = generic.OrDefault(pr.Night, DefaultPremiums.Night)
	pr.Holiday = generic.OrDefault(pr.Holiday, DefaultPremiums.Holiday)
	pr.Saturday = generic.OrDefault(pr.Saturday, DefaultPremiums.Saturday)
	pr.SaturdayNight = generic.OrDefault(pr.SaturdayNight, DefaultPremiums.SaturdayNight)
	pr.NightHoliday = generic.OrDefault(pr.NightHoliday, DefaultPremiums.NightHoliday)

	c.Travel.DailyAmount = generic.OrDefaultNull(c.Travel.DailyAmount, DefaultTravelAllowance)
	if len(c.Travel.Rules) == 0 {
		c.Travel.Rules = []TravelRule{RuleWithTravel}
	}

	if c.Standby.AllowanceType != Allowance16h && c.Standby.AllowanceType != Allowance24h {
		c.Standby.AllowanceType = Allowance24h
	}
	ind := &c.Standby.Indemnities
	ind.H16.Weekday = generic.OrDefaultNull(ind.H16.Weekday, DefaultIndemnities.H16.Weekday.Decimal)
	ind.H16.RestDay = generic.OrDefaultNull(ind.H16.RestDay, DefaultIndemnities.H16.RestDay.Decimal)
	ind.H24.Weekday = generic.OrDefaultNull(ind.H24.Weekday, DefaultIndemnities.H24.Weekday.Decimal)
	ind.H24.RestDay = generic.OrDefaultNull(ind.H24.RestDay, DefaultIndemnities.H24.RestDay.Decimal)

	c.Meal.LunchVoucher = generic.OrDefault(c.Meal.LunchVoucher, DefaultMealVoucher)
	c.Meal.DinnerVoucher = generic.OrDefault(c.Meal.DinnerVoucher, DefaultMealVoucher)

	if c.Calendar == nil {
		c.Calendar = generic.NationalCalendar{Extra: c.ExtraHolidays}
	}
	return c
}
