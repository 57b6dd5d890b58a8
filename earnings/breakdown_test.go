package earnings_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/earnings-engine/earnings"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// COMBINE / CALCULATE DAY
// =============================================================================

func TestCalculateDay_OrdinaryWithTravelAndMeals(t *testing.T) {
	// GIVEN: an 8h day with travel, a lunch voucher, on a calendar on-call day
	cfg := earnings.DefaultConfig()
	cfg.Standby.Days = map[string]bool{wednesday.String(): true}
	entry := eightHourDay(wednesday)
	entry.Meals = earnings.MealFlags{LunchVoucher: true}

	// WHEN
	day := earnings.CalculateDay(entry, cfg)

	// THEN
	assert.Equal(t, earnings.DayOrdinary, day.DayType)
	assert.True(t, day.StandbyActive)
	assertDec(t, "131.28", day.Ordinary.Total, "ordinary.total")
	assertDec(t, "46.48", day.Allowances.Travel, "allowances.travel")
	assertDec(t, "7.03", day.Allowances.Standby, "allowances.standby")
	assertDec(t, "8.00", day.Allowances.Meal, "allowances.meal")
	assertDec(t, "7.03", day.Standby.TotalEarnings, "standby.totalEarnings")

	// Indemnity counted once, meal excluded: 131.28 + 7.03 + 46.48
	assertDec(t, "184.79", day.TotalEarnings, "totalEarnings")
	assert.Empty(t, day.Diagnostics)
}

func TestCombine_TotalExcludesMeal(t *testing.T) {
	ordinary := earnings.OrdinaryBreakdown{Total: dec("100")}
	standby := earnings.StandbyBreakdown{DailyIndemnity: dec("7.03"), TotalEarnings: dec("27.03")}
	allowances := earnings.Allowances{Travel: dec("46.48"), Standby: dec("7.03"), Meal: dec("8")}

	day := earnings.Combine(ordinary, standby, allowances)

	assertDec(t, "173.51", day.TotalEarnings, "totalEarnings")
	assertDec(t, "8", day.Allowances.Meal, "allowances.meal")
}

func TestCombine_StandbyAllowanceReportedNotAdded(t *testing.T) {
	// GIVEN: a standby allowance that disagrees with the priced indemnity
	ordinary := earnings.OrdinaryBreakdown{Total: dec("100")}
	standby := earnings.StandbyBreakdown{DailyIndemnity: dec("7.03"), TotalEarnings: dec("7.03")}
	allowances := earnings.Allowances{Standby: dec("50")}

	// WHEN
	day := earnings.Combine(ordinary, standby, allowances)

	// THEN: it is carried through but only standby.TotalEarnings counts
	assertDec(t, "50", day.Allowances.Standby, "allowances.standby")
	assertDec(t, "107.03", day.TotalEarnings, "totalEarnings")
}

func TestCalculateDay_FixedPayoutDayTypes(t *testing.T) {
	for _, dt := range []earnings.DayType{
		earnings.DayVacation, earnings.DaySick, earnings.DayLeave, earnings.DayRest, earnings.DayHoliday,
	} {
		t.Run(string(dt), func(t *testing.T) {
			// GIVEN: shifts and travel recorded on a non-working day type
			entry := eightHourDay(wednesday)
			entry.DayType = dt

			// WHEN
			day := earnings.CalculateDay(entry, earnings.DefaultConfig())

			// THEN: daily rate only, no travel allowance
			assertDec(t, "131.28", day.Ordinary.Total, "ordinary.total")
			assert.True(t, day.Ordinary.Hours.Total().IsZero())
			assert.True(t, day.Allowances.Travel.IsZero())
			assertDec(t, "131.28", day.TotalEarnings, "totalEarnings")
		})
	}
}

func TestCalculateDay_FixedPayoutKeepsStandby(t *testing.T) {
	entry := earnings.WorkEntry{Date: wednesday, DayType: earnings.DayVacation, StandbyOverride: earnings.BoolPtr(true)}

	day := earnings.CalculateDay(entry, earnings.DefaultConfig())

	assertDec(t, "138.31", day.TotalEarnings, "totalEarnings")
}

func TestCalculateDay_MissingSettingsUseDefaults(t *testing.T) {
	// GIVEN: a zero configuration
	entry := eightHourDay(wednesday)

	// WHEN
	day := earnings.CalculateDay(entry, earnings.Config{})

	// THEN: default contract applies and the substitution is reported
	assertDec(t, "131.28", day.Ordinary.Total, "ordinary.total")
	require.NotEmpty(t, day.Diagnostics)
	assert.Equal(t, generic.DiagDefaultApplied, day.Diagnostics[0].Code)
	assert.Equal(t, "contract.hourlyRate", day.Diagnostics[0].Field)
}

func TestCalculateDay_Idempotent(t *testing.T) {
	cfg := earnings.DefaultConfig()
	entry := eightHourDay(wednesday)
	entry.Interventions = []earnings.Intervention{callOut(pair("22:00", "23:30"))}

	first := earnings.CalculateDay(entry, cfg)
	earnings.CalculateDay(eightHourDay(sunday), cfg)
	earnings.CalculateDay(earnings.WorkEntry{Date: saturday, DayType: earnings.DaySick}, cfg)
	second := earnings.CalculateDay(entry, cfg)

	assert.Equal(t, first, second)
}

// =============================================================================
// FOLD
// =============================================================================

func sampleDays() []earnings.DailyBreakdown {
	cfg := earnings.DefaultConfig()
	cfg.Standby.Days = map[string]bool{saturday.String(): true}

	late := eightHourDay(wednesday)
	late.Travel.Return = pair("16:00", "17:13")
	late.Meals = earnings.MealFlags{DinnerCash: dec("9.90")}

	onCall := earnings.WorkEntry{
		Date:          saturday,
		Interventions: []earnings.Intervention{callOut(pair("21:17", "01:04"))},
	}

	return []earnings.DailyBreakdown{
		earnings.CalculateDay(late, cfg),
		earnings.CalculateDay(onCall, cfg),
		earnings.CalculateDay(earnings.WorkEntry{Date: sunday, OrdinaryShifts: []earnings.TimePair{pair("06:45", "11:11")}}, cfg),
		earnings.CalculateDay(earnings.WorkEntry{Date: generic.NewDate(2025, time.March, 17), DayType: earnings.DayVacation}, cfg),
	}
}

func TestFold_Commutative(t *testing.T) {
	days := sampleDays()
	want := earnings.Fold(days)

	permutations := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, p := range permutations {
		shuffled := make([]earnings.DailyBreakdown, len(p))
		for i, idx := range p {
			shuffled[i] = days[idx]
		}
		got := earnings.Fold(shuffled)
		assert.Truef(t, want.Equal(got), "fold order %v changed the result", p)
	}
}

func TestFold_Associative(t *testing.T) {
	days := sampleDays()

	left := earnings.Fold(days[:2]).Merge(earnings.Fold(days[2:]))
	right := earnings.Fold(days[:1]).Merge(earnings.Fold(days[1:3])).Merge(earnings.Fold(days[3:]))

	assert.True(t, left.Equal(right))
	assert.True(t, left.Equal(earnings.Fold(days)))
}

func TestFold_EqualsLeafSum(t *testing.T) {
	days := sampleDays()

	s := earnings.Fold(days)

	var total, travel, meal, standby = dec("0"), dec("0"), dec("0"), dec("0")
	for _, d := range days {
		total = total.Add(d.TotalEarnings)
		travel = travel.Add(d.Allowances.Travel)
		meal = meal.Add(d.Allowances.Meal)
		standby = standby.Add(d.Standby.TotalEarnings)
	}
	assert.True(t, total.Equal(s.TotalEarnings))
	assert.True(t, travel.Equal(s.Allowances.Travel))
	assert.True(t, meal.Equal(s.Allowances.Meal))
	assert.True(t, standby.Equal(s.Standby.TotalEarnings))

	assert.Equal(t, 4, s.Days)
	assert.Equal(t, 1, s.StandbyDays)
	assert.Equal(t, wednesday, s.Period.Start)
	assert.Equal(t, generic.NewDate(2025, time.March, 17), s.Period.End)
}

func TestFold_Empty(t *testing.T) {
	s := earnings.Fold(nil)

	assert.Zero(t, s.Days)
	assert.True(t, s.TotalEarnings.IsZero())
	assert.True(t, s.Ordinary.Hours.Total().IsZero())
	assert.True(t, s.Period.Start.IsZero())
	assert.True(t, s.Equal(earnings.MonthlySummary{}))
}

func TestFoldYear_GroupsByMonth(t *testing.T) {
	cfg := earnings.DefaultConfig()
	days := earnings.CalculateDays([]earnings.WorkEntry{
		eightHourDay(generic.NewDate(2025, time.May, 6)),
		eightHourDay(wednesday),
		eightHourDay(generic.NewDate(2025, time.March, 13)),
		eightHourDay(generic.NewDate(2024, time.December, 31)),
	}, cfg)

	y := earnings.FoldYear(2025, days)

	require.Len(t, y.Months, 2)
	assert.Equal(t, time.March, y.Months[0].Period.Start.Month())
	assert.Equal(t, 2, y.Months[0].Days)
	assert.Equal(t, time.May, y.Months[1].Period.Start.Month())
	assert.Equal(t, 3, y.Total.Days)
	assertDec(t, "533.28", y.Total.TotalEarnings, "total") // 3 x (131.28 + 46.48)
}
