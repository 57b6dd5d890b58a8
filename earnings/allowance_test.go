package earnings_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warp/earnings-engine/earnings"
	"github.com/warp/earnings-engine/generic"
)

func travelConfig(rules ...earnings.TravelRule) earnings.Config {
	cfg := earnings.DefaultConfig()
	cfg.Travel.Rules = rules
	return cfg
}

func halfDay(date generic.Date) earnings.TravelAllowanceInput {
	return earnings.TravelAllowanceInput{Date: date, WorkMinutes: 180, TravelMinutes: 60}
}

// =============================================================================
// AMOUNT RULES
// =============================================================================

func TestTravelAllowance_ProportionalNotHalvedAgain(t *testing.T) {
	// GIVEN: proportional and half-day rules together, 4h worked
	cfg := travelConfig(earnings.RuleWithTravel, earnings.RuleProportionalCcnl, earnings.RuleHalfAllowanceHalfDay)

	// WHEN
	out := earnings.CalculateTravelAllowance(halfDay(wednesday), cfg)

	// THEN: 46.48 x 4/8, never 46.48 x 4/8 / 2
	assertDec(t, "23.24", out.Amount, "amount")
	assert.Equal(t, earnings.RuleWithTravel, out.ActivatedBy)
}

func TestTravelAllowance_AmountRules(t *testing.T) {
	tests := []struct {
		name  string
		rules []earnings.TravelRule
		input earnings.TravelAllowanceInput
		want  string
	}{
		{"half day halved", []earnings.TravelRule{earnings.RuleWithTravel, earnings.RuleHalfAllowanceHalfDay},
			halfDay(wednesday), "23.24"},
		{"full day not halved", []earnings.TravelRule{earnings.RuleWithTravel, earnings.RuleHalfAllowanceHalfDay},
			earnings.TravelAllowanceInput{Date: wednesday, WorkMinutes: 420, TravelMinutes: 60}, "46.48"},
		{"full allowance on half day", []earnings.TravelRule{earnings.RuleWithTravel, earnings.RuleFullAllowanceHalfDay},
			halfDay(wednesday), "46.48"},
		{"proportional capped at one", []earnings.TravelRule{earnings.RuleWithTravel, earnings.RuleProportionalCcnl},
			earnings.TravelAllowanceInput{Date: wednesday, WorkMinutes: 540, TravelMinutes: 120}, "46.48"},
		{"no amount rule", []earnings.TravelRule{earnings.RuleWithTravel},
			halfDay(wednesday), "46.48"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := earnings.CalculateTravelAllowance(tt.input, travelConfig(tt.rules...))
			assertDec(t, tt.want, out.Amount, "amount")
		})
	}
}

// =============================================================================
// ACTIVATION
// =============================================================================

func TestTravelAllowance_ActivationPriority(t *testing.T) {
	tests := []struct {
		name  string
		rules []earnings.TravelRule
		input earnings.TravelAllowanceInput
		want  earnings.TravelRule
	}{
		{"always wins", []earnings.TravelRule{earnings.RuleWithTravel, earnings.RuleAlways},
			halfDay(wednesday), earnings.RuleAlways},
		{"full day before with travel", []earnings.TravelRule{earnings.RuleWithTravel, earnings.RuleFullDayOnly},
			earnings.TravelAllowanceInput{Date: wednesday, WorkMinutes: 420, TravelMinutes: 60}, earnings.RuleFullDayOnly},
		{"full day not met falls to with travel", []earnings.TravelRule{earnings.RuleFullDayOnly, earnings.RuleWithTravel},
			halfDay(wednesday), earnings.RuleWithTravel},
		{"standby call-out", []earnings.TravelRule{earnings.RuleAlsoOnStandby},
			earnings.TravelAllowanceInput{Date: wednesday, StandbyActive: true, StandbyWorkMinutes: 120}, earnings.RuleAlsoOnStandby},
		{"proportional fallback", []earnings.TravelRule{earnings.RuleProportionalCcnl},
			earnings.TravelAllowanceInput{Date: wednesday, WorkMinutes: 240}, earnings.RuleProportionalCcnl},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := earnings.CalculateTravelAllowance(tt.input, travelConfig(tt.rules...))
			assert.Equal(t, tt.want, out.ActivatedBy)
			assert.True(t, out.Amount.IsPositive())
		})
	}
}

func TestTravelAllowance_NotActivated(t *testing.T) {
	tests := []struct {
		name  string
		rules []earnings.TravelRule
		input earnings.TravelAllowanceInput
	}{
		{"no travel", []earnings.TravelRule{earnings.RuleWithTravel},
			earnings.TravelAllowanceInput{Date: wednesday, WorkMinutes: 480}},
		{"short day", []earnings.TravelRule{earnings.RuleFullDayOnly},
			halfDay(wednesday)},
		{"standby day with ordinary work", []earnings.TravelRule{earnings.RuleAlsoOnStandby},
			earnings.TravelAllowanceInput{Date: wednesday, WorkMinutes: 60, StandbyActive: true, StandbyWorkMinutes: 120}},
		{"standby without call-out", []earnings.TravelRule{earnings.RuleAlsoOnStandby},
			earnings.TravelAllowanceInput{Date: wednesday, StandbyActive: true}},
		{"proportional with activation rule unmet", []earnings.TravelRule{earnings.RuleWithTravel, earnings.RuleProportionalCcnl},
			earnings.TravelAllowanceInput{Date: wednesday, WorkMinutes: 240}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := earnings.CalculateTravelAllowance(tt.input, travelConfig(tt.rules...))
			assert.True(t, out.Amount.IsZero())
			assert.Zero(t, out.ActivatedBy)
		})
	}
}

func TestTravelAllowance_StandbyProportionalOnCallOutHours(t *testing.T) {
	cfg := travelConfig(earnings.RuleAlsoOnStandby, earnings.RuleProportionalCcnl)
	in := earnings.TravelAllowanceInput{Date: wednesday, StandbyActive: true, StandbyWorkMinutes: 90, StandbyTravelMinutes: 30}

	out := earnings.CalculateTravelAllowance(in, cfg)

	// 46.48 x 2/8
	assertDec(t, "11.62", out.Amount, "amount")
}

// =============================================================================
// SPECIAL DAYS AND OVERRIDES
// =============================================================================

func TestTravelAllowance_SuppressedOnSunday(t *testing.T) {
	out := earnings.CalculateTravelAllowance(halfDay(sunday), earnings.DefaultConfig())

	assert.True(t, out.Suppressed)
	assert.True(t, out.Amount.IsZero())
}

func TestTravelAllowance_SuppressedOnHoliday(t *testing.T) {
	christmas := generic.NewDate(2025, 12, 25)

	out := earnings.CalculateTravelAllowance(halfDay(christmas), earnings.DefaultConfig())

	assert.True(t, out.Suppressed)
}

func TestTravelAllowance_SaturdayNotSuppressed(t *testing.T) {
	out := earnings.CalculateTravelAllowance(halfDay(saturday), earnings.DefaultConfig())

	assert.False(t, out.Suppressed)
	assertDec(t, "46.48", out.Amount, "amount")
}

func TestTravelAllowance_ApplyOnSpecialDays(t *testing.T) {
	cfg := earnings.DefaultConfig()
	cfg.Travel.ApplyOnSpecialDays = true

	out := earnings.CalculateTravelAllowance(halfDay(sunday), cfg)

	assert.False(t, out.Suppressed)
	assertDec(t, "46.48", out.Amount, "amount")
}

func TestTravelAllowance_ManualOverride(t *testing.T) {
	cfg := earnings.DefaultConfig()
	cfg.Travel.Overrides = map[string]bool{
		sunday.String():    true,
		wednesday.String(): false,
	}

	// Forced on: a Sunday with no time at all still gets the full amount
	on := earnings.CalculateTravelAllowance(earnings.TravelAllowanceInput{Date: sunday}, cfg)
	assert.True(t, on.Manual)
	assert.False(t, on.Suppressed)
	assertDec(t, "46.48", on.Amount, "forced on")

	// Forced off: a weekday with travel gets nothing
	off := earnings.CalculateTravelAllowance(halfDay(wednesday), cfg)
	assert.True(t, off.Manual)
	assert.True(t, off.Amount.IsZero())
}

func TestTravelAllowance_Disabled(t *testing.T) {
	cfg := earnings.DefaultConfig()
	cfg.Travel.Enabled = false

	out := earnings.CalculateTravelAllowance(halfDay(wednesday), cfg)

	assert.True(t, out.Amount.IsZero())
	assert.Zero(t, out.ActivatedBy)
}

// =============================================================================
// MEAL ALLOWANCE
// =============================================================================

func TestMealAllowance_CashBeatsVoucher(t *testing.T) {
	flags := earnings.MealFlags{
		LunchVoucher:  true,
		LunchCash:     dec("10.50"),
		DinnerVoucher: true,
	}

	out := earnings.CalculateMealAllowance(flags, earnings.DefaultConfig())

	assertDec(t, "10.50", out.Lunch, "lunch")
	assertDec(t, "8.00", out.Dinner, "dinner")
	assertDec(t, "10.50", out.Cash, "cash")
	assertDec(t, "8.00", out.Voucher, "voucher")
	assertDec(t, "18.50", out.Total, "total")
}

func TestMealAllowance_CashWithoutVoucherFlag(t *testing.T) {
	out := earnings.CalculateMealAllowance(earnings.MealFlags{DinnerCash: dec("12")}, earnings.DefaultConfig())

	assert.True(t, out.Lunch.IsZero())
	assertDec(t, "12", out.Dinner, "dinner")
}

func TestMealAllowance_Disabled(t *testing.T) {
	cfg := earnings.DefaultConfig()
	cfg.Meal.Enabled = false

	out := earnings.CalculateMealAllowance(earnings.MealFlags{LunchVoucher: true}, cfg)

	assert.True(t, out.Total.IsZero())
}

func TestTravelRule_ParseAndText(t *testing.T) {
	r, err := earnings.ParseTravelRule("Proportional-CCNL")
	assert.NoError(t, err)
	assert.Equal(t, earnings.RuleProportionalCcnl, r)

	text, err := earnings.RuleHalfAllowanceHalfDay.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "half_allowance_half_day", string(text))

	_, err = earnings.ParseTravelRule("sometimes")
	assert.Error(t, err)
}
