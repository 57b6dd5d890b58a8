package earnings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// LEDGER - Breakdowns and summaries over stored entries
// =============================================================================

// Ledger prices stored entries under the stored configuration. It holds no
// results: every call reads the store and recomputes, so a settings change is
// visible immediately.
type Ledger struct {
	store Store
}

// NewLedger creates a Ledger over store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// ActiveConfig returns the stored configuration with defaults applied. A
// store with no configuration yields DefaultConfig.
func (l *Ledger) ActiveConfig(ctx context.Context) (Config, error) {
	cfg, err := l.store.Config(ctx)
	if errors.Is(err, generic.ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg.WithDefaults(), nil
}

// Day returns the stored entry of date priced under the active settings.
func (l *Ledger) Day(ctx context.Context, date generic.Date) (WorkEntry, DailyBreakdown, error) {
	entry, err := l.store.Entry(ctx, date)
	if err != nil {
		return WorkEntry{}, DailyBreakdown{}, err
	}
	cfg, err := l.ActiveConfig(ctx)
	if err != nil {
		return WorkEntry{}, DailyBreakdown{}, err
	}
	return entry, CalculateDay(entry, cfg), nil
}

// DailyBreakdowns prices every stored entry in the period, ordered by date.
func (l *Ledger) DailyBreakdowns(ctx context.Context, period generic.Period) ([]DailyBreakdown, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	cfg, err := l.ActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := l.store.EntriesInRange(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("load entries %s: %w", period, err)
	}
	return CalculateDays(entries, cfg), nil
}

// MonthlySummary folds the stored entries of one calendar month. The summary
// period is always the whole month, even with no entries.
func (l *Ledger) MonthlySummary(ctx context.Context, year int, month time.Month) (MonthlySummary, error) {
	if month < time.January || month > time.December {
		return MonthlySummary{}, generic.ErrInvalidPeriod
	}
	period := generic.MonthPeriod(year, month)
	days, err := l.DailyBreakdowns(ctx, period)
	if err != nil {
		return MonthlySummary{}, err
	}
	s := Fold(days)
	s.Period = period
	return s, nil
}

// YearlySummary folds the stored entries of one calendar year.
func (l *Ledger) YearlySummary(ctx context.Context, year int) (YearlySummary, error) {
	period := generic.YearPeriod(year)
	days, err := l.DailyBreakdowns(ctx, period)
	if err != nil {
		return YearlySummary{}, err
	}
	return FoldYear(year, days), nil
}
