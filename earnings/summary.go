package earnings

import (
	"sort"

	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// SUMMARIES - Leaf-wise sums of daily breakdowns
// =============================================================================

// MonthlySummary has the numeric shape of a DailyBreakdown with every leaf
// summed. It is only ever built by Fold or Merge.
type MonthlySummary struct {
	Period              generic.Period `json:"period"`
	Days                int            `json:"days"`
	StandbyDays         int            `json:"standbyDays"`
	TravelAllowanceDays int            `json:"travelAllowanceDays"`
	Diagnostics         int            `json:"diagnostics"`
	Totals
}

// Summarize turns one breakdown into a one-day summary.
func Summarize(b DailyBreakdown) MonthlySummary {
	s := MonthlySummary{
		Period:      generic.Period{Start: b.Date, End: b.Date},
		Days:        1,
		Diagnostics: len(b.Diagnostics),
		Totals:      b.Totals,
	}
	if b.StandbyActive {
		s.StandbyDays = 1
	}
	if b.TravelAllowance.Amount.IsPositive() {
		s.TravelAllowanceDays = 1
	}
	return s
}

// Merge sums two summaries. Merge is associative and commutative: decimal
// addition is exact and the period is the min/max hull.
func (s MonthlySummary) Merge(x MonthlySummary) MonthlySummary {
	return MonthlySummary{
		Period:              hull(s.Period, x.Period),
		Days:                s.Days + x.Days,
		StandbyDays:         s.StandbyDays + x.StandbyDays,
		TravelAllowanceDays: s.TravelAllowanceDays + x.TravelAllowanceDays,
		Diagnostics:         s.Diagnostics + x.Diagnostics,
		Totals:              s.Totals.Add(x.Totals),
	}
}

// Equal compares every numeric leaf and the period.
func (s MonthlySummary) Equal(x MonthlySummary) bool {
	return s.Period.Start.Equal(x.Period.Start) && s.Period.End.Equal(x.Period.End) &&
		s.Days == x.Days && s.StandbyDays == x.StandbyDays &&
		s.TravelAllowanceDays == x.TravelAllowanceDays && s.Diagnostics == x.Diagnostics &&
		s.Totals.Equal(x.Totals)
}

// Fold sums breakdowns leaf by leaf, in any order. An empty list yields an
// all-zero summary.
func Fold(days []DailyBreakdown) MonthlySummary {
	var out MonthlySummary
	for _, d := range days {
		out = out.Merge(Summarize(d))
	}
	return out
}

// hull spans both periods; a zero period is the identity.
func hull(a, b generic.Period) generic.Period {
	switch {
	case a.Start.IsZero():
		return b
	case b.Start.IsZero():
		return a
	}
	out := a
	if b.Start.Before(out.Start) {
		out.Start = b.Start
	}
	if b.End.After(out.End) {
		out.End = b.End
	}
	return out
}

// =============================================================================
// YEARLY
// =============================================================================

// YearlySummary groups a year's monthly summaries with their total.
type YearlySummary struct {
	Year   int              `json:"year"`
	Months []MonthlySummary `json:"months"`
	Total  MonthlySummary   `json:"total"`
}

// FoldYear folds the breakdowns of a year into one summary per month that has
// entries, in calendar order, plus the year total. Breakdowns dated outside
// year are ignored.
func FoldYear(year int, days []DailyBreakdown) YearlySummary {
	byMonth := make(map[int][]DailyBreakdown)
	for _, d := range days {
		if d.Date.Year() != year {
			continue
		}
		m := int(d.Date.Month())
		byMonth[m] = append(byMonth[m], d)
	}

	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Ints(months)

	out := YearlySummary{Year: year, Months: make([]MonthlySummary, 0, len(months))}
	for _, m := range months {
		ms := Fold(byMonth[m])
		out.Months = append(out.Months, ms)
		out.Total = out.Total.Merge(ms)
	}
	return out
}
