/*
Package factory provides JSON to Go settings conversion.

PURPOSE:
  Converts the JSON settings document into an earnings.Config. This enables
  contract configuration without code changes: the settings screen, a file
  passed with SETTINGS_PATH, or PUT /api/settings all produce the same JSON,
  and the factory creates the proper Go structs.

JSON SCHEMA:
  {
    "contract": {
      "hourly_rate": 16.41,
      "daily_rate": 131.28,
      "travel_compensation_rate": 1.0,
      "standard_day_hours": 8,
      "night_start": "22:00",
      "night_end": "06:00",
      "travel_time_policy": "rate_excess",
      "overtime": {"day": 1.2, "night_until_22": 1.25, "night_after_22": 1.35,
                   "saturday": 1.25, "holiday": 1.5},
      "premiums": {"night": 1.25, "holiday": 1.3, "saturday": 1.0,
                   "saturday_night": 1.25, "night_holiday": 1.5}
    },
    "travel_allowance": {
      "enabled": true,
      "daily_amount": 46.48,
      "rules": ["with_travel", "proportional_ccnl"],
      "apply_on_special_days": false,
      "overrides": {"2025-03-16": true}
    },
    "standby": {
      "enabled": true,
      "allowance_type": "24h",
      "indemnities": {"16h": {"weekday": 4.63, "rest_day": 17.47},
                      "24h": {"weekday": 7.03, "rest_day": 19.37}},
      "saturday_as_rest": false,
      "days": ["2025-03-15", "2025-03-16"]
    },
    "meal_allowance": {"enabled": true, "lunch_voucher": 8, "dinner_voucher": 8},
    "extra_holidays": [{"month": 6, "day": 24, "name": "San Giovanni"}]
  }

KEY FEATURES:
  - Validates the document (go-playground/validator)
  - Accepts legacy upper-case rule names ("WITH_TRAVEL")
  - Leaves omitted fields zero so earnings.Config.WithDefaults fills them;
    an explicit 0 for a travel compensation rate, travel allowance amount
    or standby indemnity is kept

USAGE:
  f := factory.NewConfigFactory()
  cfg, err := f.ParseConfig(jsonString)

SEE ALSO:
  - earnings/settings.go: Config type definition and defaults
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/earnings"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SettingsJSON is the JSON representation of the active configuration.
type SettingsJSON struct {
	Contract        ContractJSON        `json:"contract"`
	TravelAllowance TravelAllowanceJSON `json:"travel_allowance"`
	Standby         StandbyJSON         `json:"standby"`
	MealAllowance   MealAllowanceJSON   `json:"meal_allowance"`
	ExtraHolidays   []HolidayJSON       `json:"extra_holidays,omitempty" validate:"dive"`
}

// ContractJSON represents the pay parameters. Zero means "use the default",
// except for pointer fields where only an omitted value does.
type ContractJSON struct {
	HourlyRate             float64       `json:"hourly_rate,omitempty" validate:"gte=0"`
	DailyRate              float64       `json:"daily_rate,omitempty" validate:"gte=0"`
	TravelCompensationRate *float64      `json:"travel_compensation_rate,omitempty" validate:"omitempty,gte=0,lte=5"`
	StandardDayHours       float64       `json:"standard_day_hours,omitempty" validate:"gte=0,lte=24"`
	NightStart             string        `json:"night_start,omitempty" validate:"omitempty,clock"`
	NightEnd               string        `json:"night_end,omitempty" validate:"omitempty,clock"`
	TravelTimePolicy       string        `json:"travel_time_policy,omitempty" validate:"omitempty,travel_policy"`
	Overtime               *OvertimeJSON `json:"overtime,omitempty"`
	Premiums               *PremiumsJSON `json:"premiums,omitempty"`
}

// OvertimeJSON represents overtime multipliers.
type OvertimeJSON struct {
	Day          float64 `json:"day,omitempty" validate:"gte=0"`
	NightUntil22 float64 `json:"night_until_22,omitempty" validate:"gte=0"`
	NightAfter22 float64 `json:"night_after_22,omitempty" validate:"gte=0"`
	Saturday     float64 `json:"saturday,omitempty" validate:"gte=0"`
	Holiday      float64 `json:"holiday,omitempty" validate:"gte=0"`
}

// PremiumsJSON represents ordinary premium multipliers.
type PremiumsJSON struct {
	Night         float64 `json:"night,omitempty" validate:"gte=0"`
	Holiday       float64 `json:"holiday,omitempty" validate:"gte=0"`
	Saturday      float64 `json:"saturday,omitempty" validate:"gte=0"`
	SaturdayNight float64 `json:"saturday_night,omitempty" validate:"gte=0"`
	NightHoliday  float64 `json:"night_holiday,omitempty" validate:"gte=0"`
}

// TravelAllowanceJSON represents the travel allowance configuration.
type TravelAllowanceJSON struct {
	Enabled            bool            `json:"enabled"`
	DailyAmount        *float64        `json:"daily_amount,omitempty" validate:"omitempty,gte=0"`
	Rules              []string        `json:"rules,omitempty" validate:"dive,travel_rule"`
	ApplyOnSpecialDays bool            `json:"apply_on_special_days,omitempty"`
	Overrides          map[string]bool `json:"overrides,omitempty" validate:"dive,keys,datetime=2006-01-02,endkeys"`
}

// StandbyJSON represents the on-call configuration.
type StandbyJSON struct {
	Enabled        bool             `json:"enabled"`
	AllowanceType  string           `json:"allowance_type,omitempty" validate:"omitempty,oneof=16h 24h"`
	Indemnities    *IndemnitiesJSON `json:"indemnities,omitempty"`
	SaturdayAsRest bool             `json:"saturday_as_rest,omitempty"`
	Days           []string         `json:"days,omitempty" validate:"dive,datetime=2006-01-02"`
}

// IndemnitiesJSON holds one pair per allowance type.
type IndemnitiesJSON struct {
	H16 IndemnityPairJSON `json:"16h"`
	H24 IndemnityPairJSON `json:"24h"`
}

// IndemnityPairJSON holds the weekday and rest-day indemnity.
type IndemnityPairJSON struct {
	Weekday *float64 `json:"weekday,omitempty" validate:"omitempty,gte=0"`
	RestDay *float64 `json:"rest_day,omitempty" validate:"omitempty,gte=0"`
}

// MealAllowanceJSON represents meal voucher values.
type MealAllowanceJSON struct {
	Enabled       bool    `json:"enabled"`
	LunchVoucher  float64 `json:"lunch_voucher,omitempty" validate:"gte=0"`
	DinnerVoucher float64 `json:"dinner_voucher,omitempty" validate:"gte=0"`
}

// HolidayJSON is a local recurring holiday.
type HolidayJSON struct {
	Month int    `json:"month" validate:"required,gte=1,lte=12"`
	Day   int    `json:"day" validate:"required,gte=1,lte=31"`
	Name  string `json:"name,omitempty"`
}

// =============================================================================
// CONFIG FACTORY
// =============================================================================

// ConfigFactory converts JSON settings to earnings.Config.
type ConfigFactory struct {
	validate *validator.Validate
}

// NewConfigFactory creates a new config factory.
func NewConfigFactory() *ConfigFactory {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, ok := generic.ParseClock(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("travel_policy", func(fl validator.FieldLevel) bool {
		_, err := earnings.ParseTravelTimePolicy(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("travel_rule", func(fl validator.FieldLevel) bool {
		_, err := earnings.ParseTravelRule(fl.Field().String())
		return err == nil
	})
	return &ConfigFactory{validate: v}
}

// Validator exposes the configured validator so request DTOs share the
// custom tags.
func (f *ConfigFactory) Validator() *validator.Validate {
	return f.validate
}

// ParseConfig parses a JSON string into a Config.
func (f *ConfigFactory) ParseConfig(jsonStr string) (earnings.Config, error) {
	var sj SettingsJSON
	if err := json.Unmarshal([]byte(jsonStr), &sj); err != nil {
		return earnings.Config{}, fmt.Errorf("failed to parse settings JSON: %w", err)
	}
	return f.FromJSON(sj)
}

// FromJSON validates sj and converts it to a Config with defaults applied.
func (f *ConfigFactory) FromJSON(sj SettingsJSON) (earnings.Config, error) {
	if err := f.validate.Struct(sj); err != nil {
		return earnings.Config{}, validationError(err)
	}

	cfg := earnings.Config{
		Contract:      parseContract(sj.Contract),
		Travel:        parseTravelAllowance(sj.TravelAllowance),
		Standby:       parseStandby(sj.Standby),
		Meal:          parseMealAllowance(sj.MealAllowance),
		ExtraHolidays: parseHolidays(sj.ExtraHolidays),
	}
	return cfg.WithDefaults(), nil
}

// ToJSON converts a Config to SettingsJSON.
func (f *ConfigFactory) ToJSON(cfg earnings.Config) SettingsJSON {
	c := cfg.Contract
	sj := SettingsJSON{
		Contract: ContractJSON{
			HourlyRate:             c.HourlyRate.InexactFloat64(),
			DailyRate:              c.DailyRate.InexactFloat64(),
			TravelCompensationRate: nullFloat(c.TravelCompensationRate),
			StandardDayHours:       c.StandardDay.Hours().InexactFloat64(),
			NightStart:             c.NightStart,
			NightEnd:               c.NightEnd,
			TravelTimePolicy:       string(c.TravelPolicy),
			Overtime: &OvertimeJSON{
				Day:          c.Overtime.Day.InexactFloat64(),
				NightUntil22: c.Overtime.NightUntil22.InexactFloat64(),
				NightAfter22: c.Overtime.NightAfter22.InexactFloat64(),
				Saturday:     c.Overtime.Saturday.InexactFloat64(),
				Holiday:      c.Overtime.Holiday.InexactFloat64(),
			},
			Premiums: &PremiumsJSON{
				Night:         c.Premiums.Night.InexactFloat64(),
				Holiday:       c.Premiums.Holiday.InexactFloat64(),
				Saturday:      c.Premiums.Saturday.InexactFloat64(),
				SaturdayNight: c.Premiums.SaturdayNight.InexactFloat64(),
				NightHoliday:  c.Premiums.NightHoliday.InexactFloat64(),
			},
		},
		TravelAllowance: TravelAllowanceJSON{
			Enabled:            cfg.Travel.Enabled,
			DailyAmount:        nullFloat(cfg.Travel.DailyAmount),
			ApplyOnSpecialDays: cfg.Travel.ApplyOnSpecialDays,
			Overrides:          cfg.Travel.Overrides,
		},
		Standby: StandbyJSON{
			Enabled:        cfg.Standby.Enabled,
			AllowanceType:  string(cfg.Standby.AllowanceType),
			SaturdayAsRest: cfg.Standby.SaturdayAsRest,
			Indemnities: &IndemnitiesJSON{
				H16: IndemnityPairJSON{
					Weekday: nullFloat(cfg.Standby.Indemnities.H16.Weekday),
					RestDay: nullFloat(cfg.Standby.Indemnities.H16.RestDay),
				},
				H24: IndemnityPairJSON{
					Weekday: nullFloat(cfg.Standby.Indemnities.H24.Weekday),
					RestDay: nullFloat(cfg.Standby.Indemnities.H24.RestDay),
				},
			},
		},
		MealAllowance: MealAllowanceJSON{
			Enabled:       cfg.Meal.Enabled,
			LunchVoucher:  cfg.Meal.LunchVoucher.InexactFloat64(),
			DinnerVoucher: cfg.Meal.DinnerVoucher.InexactFloat64(),
		},
	}

	for _, r := range cfg.Travel.Rules {
		sj.TravelAllowance.Rules = append(sj.TravelAllowance.Rules, r.String())
	}
	for day, selected := range cfg.Standby.Days {
		if selected {
			sj.Standby.Days = append(sj.Standby.Days, day)
		}
	}
	sort.Strings(sj.Standby.Days)
	for _, md := range cfg.ExtraHolidays {
		sj.ExtraHolidays = append(sj.ExtraHolidays, HolidayJSON{Month: int(md.Month), Day: md.Day, Name: md.Name})
	}
	return sj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseContract(cj ContractJSON) earnings.ContractSettings {
	c := earnings.ContractSettings{
		HourlyRate:             decimal.NewFromFloat(cj.HourlyRate),
		DailyRate:              decimal.NewFromFloat(cj.DailyRate),
		TravelCompensationRate: nullDecimal(cj.TravelCompensationRate),
		StandardDay:            hoursToMinutes(cj.StandardDayHours),
		NightStart:             cj.NightStart,
		NightEnd:               cj.NightEnd,
	}
	if p, err := earnings.ParseTravelTimePolicy(cj.TravelTimePolicy); err == nil {
		c.TravelPolicy = p
	}
	if o := cj.Overtime; o != nil {
		c.Overtime = earnings.OvertimeRates{
			Day:          decimal.NewFromFloat(o.Day),
			NightUntil22: decimal.NewFromFloat(o.NightUntil22),
			NightAfter22: decimal.NewFromFloat(o.NightAfter22),
			Saturday:     decimal.NewFromFloat(o.Saturday),
			Holiday:      decimal.NewFromFloat(o.Holiday),
		}
	}
	if p := cj.Premiums; p != nil {
		c.Premiums = earnings.PremiumRates{
			Night:         decimal.NewFromFloat(p.Night),
			Holiday:       decimal.NewFromFloat(p.Holiday),
			Saturday:      decimal.NewFromFloat(p.Saturday),
			SaturdayNight: decimal.NewFromFloat(p.SaturdayNight),
			NightHoliday:  decimal.NewFromFloat(p.NightHoliday),
		}
	}
	return c
}

func parseTravelAllowance(tj TravelAllowanceJSON) earnings.TravelAllowanceSettings {
	s := earnings.TravelAllowanceSettings{
		Enabled:            tj.Enabled,
		DailyAmount:        nullDecimal(tj.DailyAmount),
		ApplyOnSpecialDays: tj.ApplyOnSpecialDays,
		Overrides:          tj.Overrides,
	}
	for _, name := range tj.Rules {
		if r, err := earnings.ParseTravelRule(name); err == nil {
			s.Rules = append(s.Rules, r)
		}
	}
	return s
}

func parseStandby(sj StandbyJSON) earnings.StandbySettings {
	s := earnings.StandbySettings{
		Enabled:        sj.Enabled,
		AllowanceType:  earnings.AllowanceType(sj.AllowanceType),
		SaturdayAsRest: sj.SaturdayAsRest,
	}
	if ij := sj.Indemnities; ij != nil {
		s.Indemnities = earnings.IndemnityRates{
			H16: earnings.IndemnityPair{Weekday: nullDecimal(ij.H16.Weekday), RestDay: nullDecimal(ij.H16.RestDay)},
			H24: earnings.IndemnityPair{Weekday: nullDecimal(ij.H24.Weekday), RestDay: nullDecimal(ij.H24.RestDay)},
		}
	}
	if len(sj.Days) > 0 {
		s.Days = make(map[string]bool, len(sj.Days))
		for _, d := range sj.Days {
			s.Days[d] = true
		}
	}
	return s
}

func parseMealAllowance(mj MealAllowanceJSON) earnings.MealAllowanceSettings {
	return earnings.MealAllowanceSettings{
		Enabled:       mj.Enabled,
		LunchVoucher:  decimal.NewFromFloat(mj.LunchVoucher),
		DinnerVoucher: decimal.NewFromFloat(mj.DinnerVoucher),
	}
}

// hoursToMinutes rounds to the nearest minute; float hours such as 4.1 are
// not exact multiples of 1/60.
func hoursToMinutes(h float64) generic.Minutes {
	return generic.Minutes(decimal.NewFromFloat(h).Mul(decimal.NewFromInt(generic.MinutesPerHour)).Round(0).IntPart())
}

func nullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}

func nullFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

func parseHolidays(hs []HolidayJSON) []generic.MonthDay {
	var out []generic.MonthDay
	for _, h := range hs {
		out = append(out, generic.MonthDay{Month: time.Month(h.Month), Day: h.Day, Name: h.Name})
	}
	return out
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

// ValidationError lists every invalid field of a settings document.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid settings: " + strings.Join(e.Fields, ", ")
}

func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("invalid settings: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range ve {
		out.Fields = append(out.Fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return out
}
