package netincome

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// ESTIMATE - Method selection with fallback
// =============================================================================

// Request describes one estimate.
type Request struct {
	Gross decimal.Decimal
	// Method is the preferred method. Empty picks empirical when usable
	// history exists, theoretical otherwise.
	Method  Method
	History []Record
	Params  TaxParams
}

// Estimate runs the preferred method and falls back down the priority order
// until one succeeds. It never fails: every skipped method is reported in
// Diagnostics, and if nothing runs the FallbackRate applies.
func Estimate(req Request) Result {
	chain := chainFrom(req.Method, hasUsable(req.History))

	if !req.Gross.IsPositive() {
		return Result{
			Gross:      decimal.Zero,
			Net:        decimal.Zero,
			Deductions: decimal.Zero,
			Rate:       decimal.Zero,
			Method:     chain[0],
			Diagnostics: []generic.Diagnostic{{
				Code:    generic.DiagZeroGross,
				Field:   "gross",
				Message: fmt.Sprintf("gross %s is not positive, nothing to deduct", req.Gross),
			}},
		}
	}

	var diags []generic.Diagnostic
	for _, m := range chain {
		res, err := run(m, req)
		if err == nil {
			res.Diagnostics = append(diags, res.Diagnostics...)
			return res
		}
		diags = append(diags, fallbackDiagnostic(m, err))
	}

	res := newResult(req.Gross, FallbackRate, MethodHeuristic)
	res.Diagnostics = append(diags, generic.Diagnostic{
		Code:    generic.DiagMethodFallback,
		Field:   string(MethodHeuristic),
		Message: "fixed fallback rate " + FallbackRate.String() + " applied",
	})
	return res
}

func run(m Method, req Request) (Result, error) {
	switch m {
	case MethodEmpirical:
		return Empirical(req.Gross, req.History)
	case MethodTheoretical:
		return Theoretical(req.Gross, req.Params)
	default:
		return Heuristic(req.Gross, req.Params.WithDefaults().HeuristicBands)
	}
}

// chainFrom returns the methods to try, starting at the preferred one.
func chainFrom(preferred Method, history bool) []Method {
	start := 1
	if history {
		start = 0
	}
	for i, m := range Methods {
		if m == preferred {
			start = i
		}
	}
	return Methods[start:]
}

func hasUsable(history []Record) bool {
	for _, r := range history {
		if r.Usable() {
			return true
		}
	}
	return false
}

func fallbackDiagnostic(m Method, err error) generic.Diagnostic {
	code := generic.DiagMethodFallback
	if errors.Is(err, generic.ErrEstimationFailed) {
		code = generic.DiagRecoveredPanic
	}
	return generic.Diagnostic{Code: code, Field: string(m), Message: err.Error()}
}

// =============================================================================
// ESTIMATOR - Estimates backed by stored history
// =============================================================================

// HistoryStore persists observed gross/net pairs.
type HistoryStore interface {
	SaveRecord(ctx context.Context, r Record) error
	Records(ctx context.Context) ([]Record, error)
}

// Estimator feeds stored history into Estimate.
type Estimator struct {
	store  HistoryStore
	params TaxParams
}

// NewEstimator creates an Estimator. Zero params use DefaultTaxParams.
func NewEstimator(store HistoryStore, params TaxParams) *Estimator {
	return &Estimator{store: store, params: params.WithDefaults()}
}

// Estimate estimates net pay for gross. The only error is a store failure.
func (e *Estimator) Estimate(ctx context.Context, gross decimal.Decimal, preferred Method) (Result, error) {
	history, err := e.store.Records(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load net history: %w", err)
	}
	return Estimate(Request{Gross: gross, Method: preferred, History: history, Params: e.params}), nil
}

// Record validates and stores an observed pair.
func (e *Estimator) Record(ctx context.Context, month generic.Date, gross, net decimal.Decimal) (Record, error) {
	r, err := NewRecord(month, gross, net)
	if err != nil {
		return Record{}, fmt.Errorf("gross %s, net %s: %w", gross, net, err)
	}
	if err := e.store.SaveRecord(ctx, r); err != nil {
		return Record{}, fmt.Errorf("save net history: %w", err)
	}
	return r, nil
}

// History returns every stored pair.
func (e *Estimator) History(ctx context.Context) ([]Record, error) {
	return e.store.Records(ctx)
}
