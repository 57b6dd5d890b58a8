package generic

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// CLOCK TIME - Local wall-clock minute of day, no date, no zone
// =============================================================================

// ClockTime is a minute of the day in [0, 1440).
type ClockTime int

// NewClockTime builds a ClockTime from hour and minute.
func NewClockTime(hour, minute int) ClockTime {
	return ClockTime(((hour*MinutesPerHour+minute)%MinutesPerDay + MinutesPerDay) % MinutesPerDay)
}

func (c ClockTime) Hour() int   { return int(c) / MinutesPerHour }
func (c ClockTime) Minute() int { return int(c) % MinutesPerHour }

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// ParseClock parses "HH:MM" (also "H:MM" and "HH:MM:SS").
// Empty or malformed input reports ok=false; it never panics.
// "24:00" is accepted as midnight so that a shift ending at end of day rolls over.
func ParseClock(s string) (ClockTime, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	p := strings.Split(s, ":")
	if len(p) != 2 && len(p) != 3 {
		return 0, false
	}
	if !digits(p[0], 1, 2) || !digits(p[1], 2, 2) {
		return 0, false
	}
	h, _ := strconv.Atoi(p[0])
	m, _ := strconv.Atoi(p[1])
	if len(p) == 3 {
		if !digits(p[2], 2, 2) {
			return 0, false
		}
		// Seconds are validated, then dropped.
		if sec, _ := strconv.Atoi(p[2]); sec > 59 || (h == 24 && sec != 0) {
			return 0, false
		}
	}
	if h == 24 && m == 0 {
		return 0, true
	}
	if h > 23 || m > 59 {
		return 0, false
	}
	return NewClockTime(h, m), true
}

// digits reports whether s is lo to hi ASCII digits. Signs and spaces are
// rejected, unlike strconv.Atoi.
func digits(s string, lo, hi int) bool {
	if len(s) < lo || len(s) > hi {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Duration returns the minutes from start to end. An end before start means
// the interval crosses midnight. Equal bounds are an empty interval.
func Duration(start, end ClockTime) Minutes {
	if end < start {
		return Minutes(MinutesPerDay-int(start)) + Minutes(end)
	}
	return Minutes(end - start)
}

// =============================================================================
// CLASSIFICATION - Day / evening / night bands
// =============================================================================

// Band is the time-of-day band a minute falls into.
type Band int

const (
	BandDay Band = iota
	BandEvening
	BandNight
)

func (b Band) String() string {
	switch b {
	case BandEvening:
		return "evening"
	case BandNight:
		return "night"
	default:
		return "day"
	}
}

// NightWindow is a [Start, End) window that may wrap midnight.
type NightWindow struct {
	Start ClockTime
	End   ClockTime
}

var (
	// DefaultNightWindow is 22:00-06:00.
	DefaultNightWindow = NightWindow{Start: NewClockTime(22, 0), End: NewClockTime(6, 0)}

	// EveningStart opens the band that runs up to the night window start
	// (the "night until 22" overtime tier).
	EveningStart = NewClockTime(20, 0)
)

// Contains reports whether minute c lies in the window.
func (w NightWindow) Contains(c ClockTime) bool {
	if w.Start == w.End {
		return false
	}
	if w.Start < w.End {
		return c >= w.Start && c < w.End
	}
	return c >= w.Start || c < w.End
}

// Classification describes one minute of the day.
type Classification struct {
	IsNight bool
	Band    Band
}

// Classify uses the default 22:00-06:00 night window.
func Classify(c ClockTime) Classification {
	return DefaultNightWindow.Classify(c)
}

// Classify places c in the night window, the evening band before it, or day.
func (w NightWindow) Classify(c ClockTime) Classification {
	if w.Contains(c) {
		return Classification{IsNight: true, Band: BandNight}
	}
	if EveningStart < w.Start && c >= EveningStart && c < w.Start {
		return Classification{Band: BandEvening}
	}
	return Classification{Band: BandDay}
}

// =============================================================================
// SEGMENT - A (start, end) pair
// =============================================================================

// Segment is a time pair. A zero Segment is absent and lasts zero minutes.
type Segment struct {
	Start ClockTime
	End   ClockTime
	Valid bool
}

// NewSegment builds a present segment.
func NewSegment(start, end ClockTime) Segment {
	return Segment{Start: start, End: end, Valid: true}
}

// ParseSegment parses a pair of "HH:MM" strings. Two blank strings are a
// normal absent segment. A malformed value or a half-filled pair also yields
// an absent segment, together with a *TimeFieldError describing why.
func ParseSegment(start, end string) (Segment, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return Segment{}, nil
	}
	if start == "" || end == "" {
		return Segment{}, &TimeFieldError{Start: start, End: end, Err: ErrHalfOpenPair}
	}
	s, ok := ParseClock(start)
	if !ok {
		return Segment{}, &TimeFieldError{Start: start, End: end, Err: ErrMalformedTime}
	}
	e, ok := ParseClock(end)
	if !ok {
		return Segment{}, &TimeFieldError{Start: start, End: end, Err: ErrMalformedTime}
	}
	return NewSegment(s, e), nil
}

// Minutes returns the segment length, zero when absent.
func (s Segment) Minutes() Minutes {
	if !s.Valid {
		return 0
	}
	return Duration(s.Start, s.End)
}

// Each calls fn for every minute of the segment in chronological order,
// wrapping past midnight.
func (s Segment) Each(fn func(ClockTime)) {
	n := int(s.Minutes())
	for i := 0; i < n; i++ {
		fn(ClockTime((int(s.Start) + i) % MinutesPerDay))
	}
}

func (s Segment) String() string {
	if !s.Valid {
		return "-"
	}
	return s.Start.String() + "-" + s.End.String()
}
