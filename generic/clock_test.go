package generic_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/earnings-engine/generic"
)

func clock(t *testing.T, s string) generic.ClockTime {
	t.Helper()
	c, ok := generic.ParseClock(s)
	require.True(t, ok, "parse %q", s)
	return c
}

// =============================================================================
// PARSING
// =============================================================================

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"08:30", 510, true},
		{"8:30", 510, true},
		{" 22:00 ", 1320, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"24:00", 0, true},
		{"07:15:00", 435, true},
		{"", 0, false},
		{"  ", 0, false},
		{"25:00", 0, false},
		{"12:60", 0, false},
		{"12:5", 0, false},
		{"noon", 0, false},
		{"12-30", 0, false},
		{"12:30:zz", 0, false},
		{"12:30:60", 0, false},
		{"12:30:5", 0, false},
		{"24:00:01", 0, false},
		{"+8:00", 0, false},
		{"-1:00", 0, false},
		{"08:+5", 0, false},
		{"008:00", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := generic.ParseClock(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, int(got))
			}
		})
	}
}

func TestClockTime_String(t *testing.T) {
	assert.Equal(t, "06:05", generic.NewClockTime(6, 5).String())
	assert.Equal(t, "00:00", generic.NewClockTime(24, 0).String())
}

// =============================================================================
// DURATION
// =============================================================================

func TestDuration_MidnightCrossover(t *testing.T) {
	// GIVEN: 23:30 -> 00:15
	// THEN: 45 minutes, never negative
	assert.Equal(t, generic.Minutes(45), generic.Duration(clock(t, "23:30"), clock(t, "00:15")))
}

func TestDuration_SameDay(t *testing.T) {
	assert.Equal(t, generic.Minutes(480), generic.Duration(clock(t, "08:00"), clock(t, "16:00")))
}

func TestDuration_EqualBoundsIsEmpty(t *testing.T) {
	assert.Equal(t, generic.Minutes(0), generic.Duration(clock(t, "10:00"), clock(t, "10:00")))
}

func TestDuration_EndOfDayMidnight(t *testing.T) {
	assert.Equal(t, generic.Minutes(480), generic.Duration(clock(t, "16:00"), clock(t, "24:00")))
}

func TestDuration_NeverNegative(t *testing.T) {
	for s := 0; s < generic.MinutesPerDay; s += 37 {
		for e := 0; e < generic.MinutesPerDay; e += 41 {
			d := generic.Duration(generic.ClockTime(s), generic.ClockTime(e))
			if d < 0 || d >= generic.MinutesPerDay {
				t.Fatalf("duration(%d,%d) = %d out of range", s, e, d)
			}
		}
	}
}

// =============================================================================
// CLASSIFICATION
// =============================================================================

func TestClassify_NightWindowBounds(t *testing.T) {
	assert.False(t, generic.Classify(clock(t, "21:59")).IsNight)
	assert.True(t, generic.Classify(clock(t, "22:00")).IsNight)
	assert.True(t, generic.Classify(clock(t, "03:00")).IsNight)
	assert.True(t, generic.Classify(clock(t, "05:59")).IsNight)
	assert.False(t, generic.Classify(clock(t, "06:00")).IsNight)
}

func TestClassify_Bands(t *testing.T) {
	assert.Equal(t, generic.BandDay, generic.Classify(clock(t, "19:59")).Band)
	assert.Equal(t, generic.BandEvening, generic.Classify(clock(t, "20:00")).Band)
	assert.Equal(t, generic.BandEvening, generic.Classify(clock(t, "21:59")).Band)
	assert.Equal(t, generic.BandNight, generic.Classify(clock(t, "22:00")).Band)
}

func TestNightWindow_NonWrapping(t *testing.T) {
	w := generic.NightWindow{Start: clock(t, "00:00"), End: clock(t, "05:00")}
	assert.True(t, w.Contains(clock(t, "04:59")))
	assert.False(t, w.Contains(clock(t, "05:00")))
	assert.False(t, w.Contains(clock(t, "23:00")))
}

// =============================================================================
// SEGMENTS
// =============================================================================

func TestSegment_NightMinutesAtBoundary(t *testing.T) {
	// GIVEN: a segment ending at 21:59 and one starting at 22:00
	// THEN: the first has no night minutes, the second is all night
	countNight := func(seg generic.Segment) int {
		n := 0
		seg.Each(func(c generic.ClockTime) {
			if generic.Classify(c).IsNight {
				n++
			}
		})
		return n
	}

	before, err := generic.ParseSegment("18:00", "21:59")
	require.NoError(t, err)
	assert.Equal(t, 0, countNight(before))

	after, err := generic.ParseSegment("22:00", "02:00")
	require.NoError(t, err)
	assert.Equal(t, int(after.Minutes()), countNight(after))
	assert.Equal(t, 240, countNight(after))
}

func TestParseSegment_Absent(t *testing.T) {
	seg, err := generic.ParseSegment("", "")
	assert.NoError(t, err)
	assert.False(t, seg.Valid)
	assert.Equal(t, generic.Minutes(0), seg.Minutes())
}

func TestParseSegment_HalfOpenIsAbsentWithError(t *testing.T) {
	seg, err := generic.ParseSegment("08:00", "")
	assert.False(t, seg.Valid)
	assert.True(t, errors.Is(err, generic.ErrHalfOpenPair))

	var tfe *generic.TimeFieldError
	require.ErrorAs(t, err, &tfe)
	assert.Equal(t, "08:00", tfe.Start)
}

func TestParseSegment_MalformedIsAbsentWithError(t *testing.T) {
	seg, err := generic.ParseSegment("08:00", "17:75")
	assert.Equal(t, generic.Minutes(0), seg.Minutes())
	assert.ErrorIs(t, err, generic.ErrMalformedTime)

	d := generic.DiagnosticFor("ordinaryShifts[0]", err)
	assert.Equal(t, generic.DiagMalformedTime, d.Code)
	assert.Equal(t, "ordinaryShifts[0]", d.Field)
}

func TestSegment_EachWrapsMidnight(t *testing.T) {
	seg := generic.NewSegment(clock(t, "23:58"), clock(t, "00:02"))
	var got []string
	seg.Each(func(c generic.ClockTime) { got = append(got, c.String()) })
	assert.Equal(t, []string{"23:58", "23:59", "00:00", "00:01"}, got)
}

// =============================================================================
// QUANTITIES
// =============================================================================

func TestPayForMinutes(t *testing.T) {
	rate := decimal.RequireFromString("12.50")
	one := decimal.RequireFromString("1")
	assert.Equal(t, "18.75", generic.PayForMinutes(rate, one, 90).StringFixed(2))
	assert.True(t, generic.PayForMinutes(rate, one, 0).IsZero())
	assert.Equal(t, "0.21", generic.PayForMinutes(rate, one, 1).StringFixed(2))
}

func TestHoursFromMinutes(t *testing.T) {
	assert.Equal(t, "0.75", generic.HoursFromMinutes(45).String())
	assert.Equal(t, "8", generic.StandardDayMinutes.Hours().String())
}
