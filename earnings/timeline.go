package earnings

import (
	"fmt"

	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// TIMELINE - The minutes of a day, in the order they were lived
// =============================================================================

type tickKind uint8

const (
	tickWork tickKind = iota
	tickTravel
)

// tick is one minute with everything the calculators need to price it.
type tick struct {
	kind     tickKind
	category Category
	tier     OvertimeTier
}

// timeline is an ordered run of minutes. Index 480 is the first minute past
// a standard 8h day.
type timeline []tick

// dayContext carries the per-day classification inputs.
type dayContext struct {
	day   generic.DayCategory
	night generic.NightWindow
}

func newDayContext(date generic.Date, cfg Config) dayContext {
	return dayContext{
		day:   generic.DayCategoryOf(cfg.Calendar, date, false),
		night: cfg.Contract.NightWindow(),
	}
}

// appendSegment classifies every minute of seg and appends it.
func (tl timeline) appendSegment(ctx dayContext, kind tickKind, seg generic.Segment) timeline {
	seg.Each(func(c generic.ClockTime) {
		cls := ctx.night.Classify(c)
		tl = append(tl, tick{kind: kind, category: CategoryOf(ctx.day, cls), tier: TierOf(ctx.day, cls)})
	})
	return tl
}

func (tl timeline) count(kind tickKind) generic.Minutes {
	var n generic.Minutes
	for _, t := range tl {
		if t.kind == kind {
			n++
		}
	}
	return n
}

// only keeps ticks of one kind, preserving order.
func (tl timeline) only(kind tickKind) timeline {
	out := make(timeline, 0, len(tl))
	for _, t := range tl {
		if t.kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// split cuts the timeline at n minutes.
func (tl timeline) split(n generic.Minutes) (timeline, timeline) {
	if int(n) >= len(tl) {
		return tl, nil
	}
	if n <= 0 {
		return nil, tl
	}
	return tl[:n], tl[n:]
}

// byCategory counts minutes per category, optionally restricted to a kind.
func (tl timeline) byCategory(kinds ...tickKind) categoryMinutes {
	var m categoryMinutes
	for _, t := range tl {
		if len(kinds) == 0 || containsKind(kinds, t.kind) {
			m[t.category]++
		}
	}
	return m
}

// byTier counts minutes per (tier, category).
func (tl timeline) byTier() [numTiers]categoryMinutes {
	var m [numTiers]categoryMinutes
	for _, t := range tl {
		m[t.tier][t.category]++
	}
	return m
}

func containsKind(kinds []tickKind, k tickKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

// =============================================================================
// PARSING ENTRY PAIRS
// =============================================================================

// segmentReader parses pairs and collects a diagnostic for every pair it
// has to treat as absent.
type segmentReader struct {
	diags []generic.Diagnostic
}

func (r *segmentReader) read(field string, p TimePair) generic.Segment {
	seg, err := generic.ParseSegment(p.Start, p.End)
	if err != nil {
		r.diags = append(r.diags, generic.DiagnosticFor(field, err))
	}
	return seg
}

func (r *segmentReader) dropped(field string, n int) {
	r.diags = append(r.diags, generic.Diagnostic{
		Code:    generic.DiagExtraSegment,
		Field:   field,
		Message: fmt.Sprintf("only the first %d pairs are used", n),
	})
}

// ordinaryTimeline orders outbound travel, the shifts, then return travel.
func ordinaryTimeline(entry WorkEntry, ctx dayContext, r *segmentReader) timeline {
	var tl timeline
	tl = tl.appendSegment(ctx, tickTravel, r.read("travel.outbound", entry.Travel.Outbound))
	for i, shift := range entry.OrdinaryShifts {
		if i >= MaxOrdinaryShifts {
			r.dropped("ordinaryShifts", MaxOrdinaryShifts)
			break
		}
		tl = tl.appendSegment(ctx, tickWork, r.read(fmt.Sprintf("ordinaryShifts[%d]", i), shift))
	}
	tl = tl.appendSegment(ctx, tickTravel, r.read("travel.return", entry.Travel.Return))
	return tl
}

// interventionTimeline concatenates all interventions, each ordered outbound
// travel, work pairs, return travel.
func interventionTimeline(entry WorkEntry, ctx dayContext, r *segmentReader) timeline {
	var tl timeline
	for i, iv := range entry.Interventions {
		prefix := fmt.Sprintf("standbyInterventions[%d]", i)
		tl = tl.appendSegment(ctx, tickTravel, r.read(prefix+".outbound", iv.Outbound))
		for j, w := range iv.Work {
			if j >= MaxInterventionWork {
				r.dropped(prefix+".work", MaxInterventionWork)
				break
			}
			tl = tl.appendSegment(ctx, tickWork, r.read(fmt.Sprintf("%s.work[%d]", prefix, j), w))
		}
		tl = tl.appendSegment(ctx, tickTravel, r.read(prefix+".return", iv.Return))
	}
	return tl
}
