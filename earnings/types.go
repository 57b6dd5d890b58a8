// Package earnings turns daily time records and a labor-contract configuration
// into auditable earnings breakdowns, and folds them into monthly and yearly
// summaries. Every calculation is a pure function of its inputs.
package earnings

import (
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// DAY TYPE
// =============================================================================

// DayType says whether the day was worked or covered by a fixed payout.
type DayType string

const (
	DayOrdinary DayType = "ordinary"
	DayVacation DayType = "vacation"
	DaySick     DayType = "sick"
	DayLeave    DayType = "leave"
	DayRest     DayType = "rest"
	DayHoliday  DayType = "holiday"
)

// IsFixedPayout reports whether the day type short-circuits to the daily rate.
func (t DayType) IsFixedPayout() bool {
	switch t {
	case DayVacation, DaySick, DayLeave, DayRest, DayHoliday:
		return true
	default:
		return false
	}
}

// =============================================================================
// WORK ENTRY - One calendar day of raw time records
// =============================================================================

// MaxOrdinaryShifts and MaxInterventionWork bound the pairs read from an entry.
const (
	MaxOrdinaryShifts   = 2
	MaxInterventionWork = 2
)

// TimePair holds two local "HH:MM" strings. Both set or both blank; an end
// before the start crosses midnight.
type TimePair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Travel holds the commute of a day: company to site, then site back to company.
type Travel struct {
	Outbound TimePair `json:"outbound"` // departure company -> arrival site
	Return   TimePair `json:"return"`   // departure return -> arrival company
}

// Intervention is one on-call call-out with its own work and travel pairs.
type Intervention struct {
	Travel
	Work []TimePair `json:"work"`
}

// MealFlags records what was received for each meal slot. A cash amount takes
// precedence over the voucher for the same slot.
type MealFlags struct {
	LunchVoucher  bool            `json:"lunchVoucher"`
	LunchCash     decimal.Decimal `json:"lunchCash"`
	DinnerVoucher bool            `json:"dinnerVoucher"`
	DinnerCash    decimal.Decimal `json:"dinnerCash"`
}

// WorkEntry is the raw record of one day.
type WorkEntry struct {
	Date           generic.Date `json:"date"`
	DayType        DayType      `json:"dayType"`
	OrdinaryShifts []TimePair   `json:"ordinaryShifts"`
	Travel         Travel       `json:"travel"`

	// StandbyOverride, when set, replaces calendar-derived on-call membership.
	StandbyOverride *bool          `json:"standbyOverride,omitempty"`
	Interventions   []Intervention `json:"standbyInterventions"`

	Meals MealFlags `json:"meals"`
	Notes string    `json:"notes,omitempty"`
}

// EffectiveDayType treats an unset day type as ordinary.
func (e WorkEntry) EffectiveDayType() DayType {
	if e.DayType == "" {
		return DayOrdinary
	}
	return e.DayType
}

// BoolPtr is a convenience for StandbyOverride and settings overrides.
func BoolPtr(b bool) *bool { return &b }
