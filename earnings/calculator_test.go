package earnings_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/earnings-engine/earnings"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================
// Default contract: hourly 16.41, daily 131.28, travel rate 1.00.
// 2025-03-12 is a Wednesday, 03-15 a Saturday, 03-16 a Sunday.
// =============================================================================

var (
	wednesday = generic.NewDate(2025, time.March, 12)
	saturday  = generic.NewDate(2025, time.March, 15)
	sunday    = generic.NewDate(2025, time.March, 16)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "%s: want %s, got %s", field, want, got)
}

func pair(start, end string) earnings.TimePair {
	return earnings.TimePair{Start: start, End: end}
}

func configWith(policy earnings.TravelTimePolicy) earnings.Config {
	cfg := earnings.DefaultConfig()
	cfg.Contract.TravelPolicy = policy
	return cfg
}

// eightHourDay is 7h of shifts plus 30m travel each way.
func eightHourDay(date generic.Date) earnings.WorkEntry {
	return earnings.WorkEntry{
		Date:           date,
		OrdinaryShifts: []earnings.TimePair{pair("08:00", "12:00"), pair("13:00", "16:00")},
		Travel: earnings.Travel{
			Outbound: pair("07:30", "08:00"),
			Return:   pair("16:00", "16:30"),
		},
	}
}

// =============================================================================
// RATE EXCESS (default policy)
// =============================================================================

func TestRateExcess_ExactlyEightHours_NoTravelPay(t *testing.T) {
	// GIVEN: 7h work + 1h travel = exactly 8h on a weekday
	entry := eightHourDay(wednesday)

	// WHEN: priced under the default policy
	out, diags := earnings.CalculateOrdinary(entry, earnings.DefaultConfig())

	// THEN: daily rate only, travel absorbed
	assert.Empty(t, diags)
	assertDec(t, "131.28", out.RegularPay, "regularPay")
	assertDec(t, "8", out.RegularHours, "regularHours")
	assert.True(t, out.TravelPay.IsZero(), "travelPay must be zero at exactly 8h")
	assert.True(t, out.OvertimePay.IsZero())
	assertDec(t, "131.28", out.Total, "total")
}

func TestRateExcess_OneMinuteOver_PaidAtTravelRate(t *testing.T) {
	// GIVEN: 8h01m combined (return travel one minute longer)
	entry := eightHourDay(wednesday)
	entry.Travel.Return = pair("16:00", "16:31")

	// WHEN
	out, _ := earnings.CalculateOrdinary(entry, earnings.DefaultConfig())

	// THEN: the excess minute earns hourly x travel rate / 60
	assertDec(t, "0.27", out.TravelPay, "travelPay")
	assert.True(t, out.OvertimePay.IsZero())
	assertDec(t, "131.55", out.Total, "total")
}

func TestRateExcess_ExcessWorkMinutesAlsoAtTravelRate(t *testing.T) {
	// GIVEN: a 9h shift with no travel at all
	entry := earnings.WorkEntry{
		Date:           wednesday,
		OrdinaryShifts: []earnings.TimePair{pair("08:00", "17:00")},
	}

	// WHEN
	out, _ := earnings.CalculateOrdinary(entry, earnings.DefaultConfig())

	// THEN: the extra hour of work is paid at the travel rate, not overtime
	assertDec(t, "16.41", out.TravelPay, "travelPay")
	assertDec(t, "1", out.TravelHours, "travelHours")
	assert.True(t, out.OvertimePay.IsZero())
}

// =============================================================================
// OVERTIME EXCESS
// =============================================================================

func TestOvertimeExcess_OneMinuteOver_PaidAsOvertime(t *testing.T) {
	entry := eightHourDay(wednesday)
	entry.Travel.Return = pair("16:00", "16:31")

	out, _ := earnings.CalculateOrdinary(entry, configWith(earnings.OvertimeExcess))

	// 16.41 x 1.20 / 60 = 0.3282
	assertDec(t, "0.33", out.OvertimePay, "overtimePay")
	assert.True(t, out.TravelPay.IsZero(), "no separate travel rate under overtime_excess")
	assertDec(t, "131.61", out.Total, "total")
}

// =============================================================================
// RATE ALL
// =============================================================================

func TestRateAll_TravelAlwaysPaid(t *testing.T) {
	// GIVEN: 8h work and 2h travel
	entry := earnings.WorkEntry{
		Date:           wednesday,
		OrdinaryShifts: []earnings.TimePair{pair("08:00", "12:00"), pair("13:00", "17:00")},
		Travel: earnings.Travel{
			Outbound: pair("07:00", "08:00"),
			Return:   pair("17:00", "18:00"),
		},
	}

	// WHEN
	out, _ := earnings.CalculateOrdinary(entry, configWith(earnings.RateAll))

	// THEN: travel at the travel rate even though work did not exceed 8h
	assertDec(t, "131.28", out.RegularPay, "regularPay")
	assertDec(t, "32.82", out.TravelPay, "travelPay")
	assert.True(t, out.OvertimePay.IsZero())
	assertDec(t, "164.10", out.Total, "total")
}

func TestRateAll_ZeroTravelRate_TravelUnpaid(t *testing.T) {
	// GIVEN: a contract that explicitly pays travel at zero
	entry := earnings.WorkEntry{
		Date:           wednesday,
		OrdinaryShifts: []earnings.TimePair{pair("08:00", "12:00"), pair("13:00", "17:00")},
		Travel:         earnings.Travel{Outbound: pair("07:00", "08:00")},
	}
	cfg := configWith(earnings.RateAll)
	cfg.Contract.TravelCompensationRate = decimal.NewNullDecimal(decimal.Zero)

	// WHEN
	out, _ := earnings.CalculateOrdinary(entry, cfg)

	// THEN: the zero is not replaced by the default rate
	assert.True(t, out.TravelPay.IsZero())
	assertDec(t, "131.28", out.Total, "total")
}

func TestRateAll_WorkOverEightHoursIsOvertime(t *testing.T) {
	entry := earnings.WorkEntry{
		Date:           wednesday,
		OrdinaryShifts: []earnings.TimePair{pair("08:00", "12:00"), pair("13:00", "18:00")},
		Travel: earnings.Travel{
			Outbound: pair("07:00", "08:00"),
			Return:   pair("18:00", "19:00"),
		},
	}

	out, _ := earnings.CalculateOrdinary(entry, configWith(earnings.RateAll))

	assertDec(t, "19.69", out.OvertimePay, "overtimePay")
	assertDec(t, "1", out.OvertimeHours, "overtimeHours")
	assertDec(t, "32.82", out.TravelPay, "travelPay")
	assertDec(t, "183.79", out.Total, "total")
}

// =============================================================================
// AS WORK
// =============================================================================

func TestAsWork_UnderEightHours_Hourly(t *testing.T) {
	entry := earnings.WorkEntry{
		Date:           wednesday,
		OrdinaryShifts: []earnings.TimePair{pair("08:00", "12:00")},
		Travel:         earnings.Travel{Outbound: pair("07:00", "08:00")},
	}

	out, _ := earnings.CalculateOrdinary(entry, configWith(earnings.AsWork))

	assertDec(t, "82.05", out.RegularPay, "regularPay")
	assertDec(t, "5", out.RegularHours, "regularHours")
	assertDec(t, "82.05", out.Total, "total")
}

func TestAsWork_OverEightHours_DailyPlusOvertime(t *testing.T) {
	entry := earnings.WorkEntry{
		Date:           wednesday,
		OrdinaryShifts: []earnings.TimePair{pair("08:00", "12:00"), pair("13:00", "17:00")},
		Travel:         earnings.Travel{Outbound: pair("07:00", "08:00")},
	}

	out, _ := earnings.CalculateOrdinary(entry, configWith(earnings.AsWork))

	assertDec(t, "131.28", out.RegularPay, "regularPay")
	assertDec(t, "19.69", out.OvertimePay, "overtimePay")
	assertDec(t, "150.97", out.Total, "total")
}

func TestOvertimeTier_PicksMultiplierPerMinute(t *testing.T) {
	tests := []struct {
		name     string
		date     generic.Date
		shift    earnings.TimePair
		overtime string
	}{
		// 16.41 x 1.20
		{"day", wednesday, pair("08:00", "17:00"), "19.69"},
		// 20:00-21:00 falls in the evening band: 16.41 x 1.25
		{"night until 22", wednesday, pair("12:00", "21:00"), "20.51"},
		// 22:00-23:00 is night: 16.41 x 1.35
		{"night after 22", wednesday, pair("14:00", "23:00"), "22.15"},
		// 16.41 x 1.25
		{"saturday", saturday, pair("08:00", "17:00"), "20.51"},
		// 16.41 x 1.50
		{"sunday", sunday, pair("08:00", "17:00"), "24.62"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := earnings.WorkEntry{Date: tt.date, OrdinaryShifts: []earnings.TimePair{tt.shift}}
			out, _ := earnings.CalculateOrdinary(entry, configWith(earnings.AsWork))
			assertDec(t, tt.overtime, out.OvertimePay, "overtimePay")
		})
	}
}

// =============================================================================
// ORDINARY BONUS
// =============================================================================

func TestOrdinaryBonus_SundayWithoutOvertime(t *testing.T) {
	// GIVEN: 4h on a Sunday, far below the threshold
	entry := earnings.WorkEntry{
		Date:           sunday,
		OrdinaryShifts: []earnings.TimePair{pair("08:00", "12:00")},
	}

	// WHEN
	out, _ := earnings.CalculateOrdinary(entry, earnings.DefaultConfig())

	// THEN: (1.30 - 1) x 16.41 x 4h is still paid on top
	assertDec(t, "19.69", out.Bonus, "bonus")
	assertDec(t, "19.69", out.Earnings.Holiday, "earnings.holiday")
	assertDec(t, "4", out.Hours.Holiday, "hours.holiday")
	assert.True(t, out.OvertimePay.IsZero())
	assertDec(t, "150.97", out.Total, "total")
}

func TestOrdinaryBonus_NightShift(t *testing.T) {
	entry := earnings.WorkEntry{
		Date:           wednesday,
		OrdinaryShifts: []earnings.TimePair{pair("22:00", "02:00")},
	}

	out, _ := earnings.CalculateOrdinary(entry, earnings.DefaultConfig())

	// (1.25 - 1) x 16.41 x 4h
	assertDec(t, "16.41", out.Bonus, "bonus")
	assertDec(t, "4", out.Hours.Night, "hours.night")
}

// =============================================================================
// TIME BOUNDARIES
// =============================================================================

func TestNightWindow_Boundary(t *testing.T) {
	before := earnings.WorkEntry{Date: wednesday, OrdinaryShifts: []earnings.TimePair{pair("21:00", "21:59")}}
	after := earnings.WorkEntry{Date: wednesday, OrdinaryShifts: []earnings.TimePair{pair("22:00", "23:00")}}

	outBefore, _ := earnings.CalculateOrdinary(before, earnings.DefaultConfig())
	outAfter, _ := earnings.CalculateOrdinary(after, earnings.DefaultConfig())

	assert.True(t, outBefore.Hours.Night.IsZero(), "segment ending at 21:59 has no night minutes")
	assertDec(t, "1", outAfter.Hours.Night, "hours.night")
	assert.True(t, outAfter.Hours.Ordinary.IsZero())
}

func TestMidnightCrossover_ShiftDuration(t *testing.T) {
	entry := earnings.WorkEntry{Date: wednesday, OrdinaryShifts: []earnings.TimePair{pair("23:30", "00:15")}}

	out, _ := earnings.CalculateOrdinary(entry, earnings.DefaultConfig())

	assertDec(t, "0.75", out.Hours.Total(), "hours")
	assertDec(t, "0.75", out.Hours.Night, "hours.night")
}

// =============================================================================
// MALFORMED INPUT
// =============================================================================

func TestMalformedTimes_AbsentWithDiagnostics(t *testing.T) {
	// GIVEN: one malformed shift, one half-filled travel pair, one extra shift
	entry := earnings.WorkEntry{
		Date: wednesday,
		OrdinaryShifts: []earnings.TimePair{
			pair("8:00x", "12:00"),
			pair("13:00", "17:00"),
			pair("18:00", "19:00"),
		},
		Travel: earnings.Travel{Outbound: pair("07:00", "")},
	}

	// WHEN
	out, diags := earnings.CalculateOrdinary(entry, earnings.DefaultConfig())

	// THEN: only the valid shift counts and every problem is reported
	assertDec(t, "4", out.Hours.Total(), "hours")
	require.Len(t, diags, 3)

	byField := map[string]generic.DiagnosticCode{}
	for _, d := range diags {
		byField[d.Field] = d.Code
	}
	assert.Equal(t, generic.DiagHalfOpenPair, byField["travel.outbound"])
	assert.Equal(t, generic.DiagMalformedTime, byField["ordinaryShifts[0]"])
	assert.Equal(t, generic.DiagExtraSegment, byField["ordinaryShifts"])
}

func TestEmptyEntry_ZeroOrdinaryPay(t *testing.T) {
	out, diags := earnings.CalculateOrdinary(earnings.WorkEntry{Date: wednesday}, earnings.DefaultConfig())

	assert.Empty(t, diags)
	assert.True(t, out.Total.IsZero())
	assert.True(t, out.RegularPay.IsZero())
}

func TestFixedDayPay_DailyRate(t *testing.T) {
	cfg := earnings.DefaultConfig()

	out := earnings.FixedDayPay(cfg.Contract)

	assertDec(t, "131.28", out.Total, "total")
	assertDec(t, "131.28", out.Earnings.Ordinary, "earnings.ordinary")
}

func TestParseTravelTimePolicy(t *testing.T) {
	p, err := earnings.ParseTravelTimePolicy("Rate-Excess")
	require.NoError(t, err)
	assert.Equal(t, earnings.RateExcess, p)

	_, err = earnings.ParseTravelTimePolicy("double_pay")
	assert.Error(t, err)
}
