/*
Package netincome estimates the net pay of a gross monthly amount.

PURPOSE:
  Turns the gross earnings of a month into an approximate net figure.
  Three methods exist, each callable on its own:

METHODS (priority order):
  empirical:    net = gross x (1 - observed deduction rate), the rate taken
                from previously recorded gross/net pairs
  theoretical:  INPS contribution first (rate x capped monthly base), then a
                three-bracket progressive tax on the annualized remainder,
                regional and municipal surtaxes, minus worker deductions
  heuristic:    a flat rate by estimated annual income band; the last resort

FALLBACK:
  Estimate never fails. Without usable history it skips the empirical
  method; when a method cannot run, the next one is tried and the skip is
  recorded as a Diagnostic. If even the heuristic cannot run, the fixed
  FallbackRate applies. A zero gross yields a zero estimate.

SEE ALSO:
  - estimate.go: method selection and fallback
  - store/sqlite/sqlite.go: gross/net history persistence
*/
package netincome

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

// =============================================================================
// METHOD
// =============================================================================

// Method identifies an estimation method.
type Method string

const (
	MethodEmpirical   Method = "empirical"
	MethodTheoretical Method = "theoretical"
	MethodHeuristic   Method = "heuristic"
)

// Methods lists every method in priority order.
var Methods = []Method{MethodEmpirical, MethodTheoretical, MethodHeuristic}

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	switch m {
	case MethodEmpirical, MethodTheoretical, MethodHeuristic:
		return true
	default:
		return false
	}
}

// =============================================================================
// HISTORY RECORD
// =============================================================================

// Record is one observed gross/net pair, typically taken from a payslip.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	Month     generic.Date    `json:"month"` // first day of the month
	Gross     decimal.Decimal `json:"gross"`
	Net       decimal.Decimal `json:"net"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewRecord validates a pair and assigns it an ID.
func NewRecord(month generic.Date, gross, net decimal.Decimal) (Record, error) {
	r := Record{
		ID:        uuid.New(),
		Month:     generic.NewDate(month.Year(), month.Month(), 1),
		Gross:     gross,
		Net:       net,
		CreatedAt: time.Now().UTC(),
	}
	if !r.Usable() {
		return Record{}, generic.ErrInvalidAmount
	}
	return r, nil
}

// Usable reports whether the pair can inform a deduction rate:
// gross > 0 and 0 <= net <= gross.
func (r Record) Usable() bool {
	return r.Gross.IsPositive() && !r.Net.IsNegative() && r.Net.LessThanOrEqual(r.Gross)
}

// =============================================================================
// RESULT
// =============================================================================

// Result is one net estimate.
type Result struct {
	Gross       decimal.Decimal      `json:"gross"`
	Net         decimal.Decimal      `json:"net"`
	Deductions  decimal.Decimal      `json:"deductions"`
	Rate        decimal.Decimal      `json:"rate"` // deductions / gross
	Method      Method               `json:"method"`
	Breakdown   *TaxBreakdown        `json:"breakdown,omitempty"`
	Diagnostics []generic.Diagnostic `json:"diagnostics,omitempty"`
}

// TaxBreakdown details the theoretical method.
type TaxBreakdown struct {
	Contribution  decimal.Decimal `json:"contribution"` // INPS, monthly
	AnnualTaxable decimal.Decimal `json:"annualTaxable"`
	GrossTax      decimal.Decimal `json:"grossTax"`   // IRPEF, annual
	Deductions    decimal.Decimal `json:"deductions"` // worker deductions, annual
	Surtaxes      decimal.Decimal `json:"surtaxes"`   // annual
	MonthlyTax    decimal.Decimal `json:"monthlyTax"`
}

// newResult derives net, deductions and rate from gross and a rate.
func newResult(gross, rate decimal.Decimal, m Method) Result {
	deductions := generic.RoundMoney(gross.Mul(rate))
	return Result{
		Gross:      gross,
		Net:        gross.Sub(deductions),
		Deductions: deductions,
		Rate:       rate,
		Method:     m,
	}
}

// =============================================================================
// TAX PARAMETERS
// =============================================================================

// Bracket is one progressive tax band: Rate applies to income up to UpTo.
// A zero UpTo marks the open top band.
type Bracket struct {
	UpTo decimal.Decimal `json:"upTo"`
	Rate decimal.Decimal `json:"rate"`
}

// Band maps an annual income ceiling to a flat heuristic rate. A zero UpTo
// marks the open top band.
type Band struct {
	UpTo decimal.Decimal `json:"upTo"`
	Rate decimal.Decimal `json:"rate"`
}

// TaxParams are the parameters of the theoretical and heuristic methods.
type TaxParams struct {
	ContributionRate decimal.Decimal `json:"contributionRate"`
	ContributionCap  decimal.Decimal `json:"contributionCap"` // monthly base cap
	Brackets         []Bracket       `json:"brackets"`
	RegionalSurtax   decimal.Decimal `json:"regionalSurtax"`
	MunicipalSurtax  decimal.Decimal `json:"municipalSurtax"`
	HeuristicBands   []Band          `json:"heuristicBands"`
}

var (
	// FallbackRate is applied when no method can run. It is the highest
	// heuristic band, so the estimate errs low.
	FallbackRate = decimal.RequireFromString("0.38")

	DefaultTaxParams = TaxParams{
		ContributionRate: decimal.RequireFromString("0.0919"),
		ContributionCap:  decimal.RequireFromString("10050.58"),
		Brackets: []Bracket{
			{UpTo: decimal.NewFromInt(28000), Rate: decimal.RequireFromString("0.23")},
			{UpTo: decimal.NewFromInt(50000), Rate: decimal.RequireFromString("0.35")},
			{Rate: decimal.RequireFromString("0.43")},
		},
		RegionalSurtax:  decimal.RequireFromString("0.0173"),
		MunicipalSurtax: decimal.RequireFromString("0.008"),
		HeuristicBands: []Band{
			{UpTo: decimal.NewFromInt(15000), Rate: decimal.RequireFromString("0.18")},
			{UpTo: decimal.NewFromInt(28000), Rate: decimal.RequireFromString("0.25")},
			{UpTo: decimal.NewFromInt(50000), Rate: decimal.RequireFromString("0.32")},
			{Rate: FallbackRate},
		},
	}
)

// WithDefaults fills unset parameters from DefaultTaxParams.
func (p TaxParams) WithDefaults() TaxParams {
	d := DefaultTaxParams
	p.ContributionRate = generic.OrDefault(p.ContributionRate, d.ContributionRate)
	p.ContributionCap = generic.OrDefault(p.ContributionCap, d.ContributionCap)
	p.RegionalSurtax = generic.OrDefault(p.RegionalSurtax, d.RegionalSurtax)
	p.MunicipalSurtax = generic.OrDefault(p.MunicipalSurtax, d.MunicipalSurtax)
	if len(p.Brackets) == 0 {
		p.Brackets = d.Brackets
	}
	if len(p.HeuristicBands) == 0 {
		p.HeuristicBands = d.HeuristicBands
	}
	return p
}
