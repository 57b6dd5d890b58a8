package earnings

import (
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// PREMIUM CATEGORY - Bucket a minute falls into
// =============================================================================

// Category is the day-type premium bucket of a minute.
type Category int

const (
	CatOrdinary Category = iota
	CatNight
	CatHoliday
	CatSaturday
	CatSaturdayNight
	CatNightHoliday

	numCategories
)

// Categories lists every bucket in field order.
var Categories = []Category{CatOrdinary, CatNight, CatHoliday, CatSaturday, CatSaturdayNight, CatNightHoliday}

func (c Category) String() string {
	switch c {
	case CatNight:
		return "night"
	case CatHoliday:
		return "holiday"
	case CatSaturday:
		return "saturday"
	case CatSaturdayNight:
		return "saturday_night"
	case CatNightHoliday:
		return "night_holiday"
	default:
		return "ordinary"
	}
}

// CategoryOf combines the calendar category of the day with the night flag of
// the minute. Premiums look at the real weekday: Saturday stays Saturday even
// when standby treats it as a rest day.
func CategoryOf(day generic.DayCategory, cls generic.Classification) Category {
	switch {
	case day == generic.RestDay && cls.IsNight:
		return CatNightHoliday
	case day == generic.RestDay:
		return CatHoliday
	case day == generic.Saturday && cls.IsNight:
		return CatSaturdayNight
	case day == generic.Saturday:
		return CatSaturday
	case cls.IsNight:
		return CatNight
	default:
		return CatOrdinary
	}
}

// For returns the premium multiplier of a category; ordinary is 1.
func (p PremiumRates) For(c Category) decimal.Decimal {
	switch c {
	case CatNight:
		return p.Night
	case CatHoliday:
		return p.Holiday
	case CatSaturday:
		return p.Saturday
	case CatSaturdayNight:
		return p.SaturdayNight
	case CatNightHoliday:
		return p.NightHoliday
	default:
		return decimal.NewFromInt(1)
	}
}

// =============================================================================
// OVERTIME TIER - Which multiplier an overtime minute earns
// =============================================================================

// OvertimeTier selects one of the contract's overtime multipliers.
type OvertimeTier int

const (
	TierDay OvertimeTier = iota
	TierNightUntil22
	TierNightAfter22
	TierSaturday
	TierHoliday

	numTiers
)

// TierOf picks the overtime tier by priority: night > holiday/Sunday >
// Saturday > evening (night until 22) > plain day.
func TierOf(day generic.DayCategory, cls generic.Classification) OvertimeTier {
	switch {
	case cls.IsNight:
		return TierNightAfter22
	case day == generic.RestDay:
		return TierHoliday
	case day == generic.Saturday:
		return TierSaturday
	case cls.Band == generic.BandEvening:
		return TierNightUntil22
	default:
		return TierDay
	}
}

// For returns the multiplier of a tier.
func (r OvertimeRates) For(t OvertimeTier) decimal.Decimal {
	switch t {
	case TierNightUntil22:
		return r.NightUntil22
	case TierNightAfter22:
		return r.NightAfter22
	case TierSaturday:
		return r.Saturday
	case TierHoliday:
		return r.Holiday
	default:
		return r.Day
	}
}

// =============================================================================
// BY CATEGORY - Six fixed decimal buckets
// =============================================================================

// ByCategory holds one decimal per premium category.
type ByCategory struct {
	Ordinary      decimal.Decimal `json:"ordinary"`
	Night         decimal.Decimal `json:"night"`
	Holiday       decimal.Decimal `json:"holiday"`
	Saturday      decimal.Decimal `json:"saturday"`
	SaturdayNight decimal.Decimal `json:"saturdayNight"`
	NightHoliday  decimal.Decimal `json:"nightHoliday"`
}

func (b *ByCategory) slot(c Category) *decimal.Decimal {
	switch c {
	case CatNight:
		return &b.Night
	case CatHoliday:
		return &b.Holiday
	case CatSaturday:
		return &b.Saturday
	case CatSaturdayNight:
		return &b.SaturdayNight
	case CatNightHoliday:
		return &b.NightHoliday
	default:
		return &b.Ordinary
	}
}

// Get returns the bucket of c.
func (b ByCategory) Get(c Category) decimal.Decimal { return *b.slot(c) }

// Plus returns a copy with v added to the bucket of c.
func (b ByCategory) Plus(c Category, v decimal.Decimal) ByCategory {
	s := b.slot(c)
	*s = s.Add(v)
	return b
}

// Add sums two bucket sets field by field.
func (b ByCategory) Add(o ByCategory) ByCategory {
	for _, c := range Categories {
		b = b.Plus(c, o.Get(c))
	}
	return b
}

// Total sums every bucket.
func (b ByCategory) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range Categories {
		total = total.Add(b.Get(c))
	}
	return total
}

// Equal compares numerically, ignoring decimal scale.
func (b ByCategory) Equal(o ByCategory) bool {
	for _, c := range Categories {
		if !b.Get(c).Equal(o.Get(c)) {
			return false
		}
	}
	return true
}

// categoryMinutes counts minutes per category.
type categoryMinutes [numCategories]generic.Minutes

func (m categoryMinutes) hours() ByCategory {
	var b ByCategory
	for _, c := range Categories {
		b = b.Plus(c, m[c].Hours())
	}
	return b
}

