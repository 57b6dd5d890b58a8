package netincome

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/earnings-engine/generic"
)

var (
	monthsPerYear = decimal.NewFromInt(12)

	// Worker deduction (detrazioni lavoro dipendente) thresholds and amounts.
	deductionLowCeiling = decimal.NewFromInt(15000)
	deductionMidCeiling = decimal.NewFromInt(28000)
	deductionTopCeiling = decimal.NewFromInt(50000)
	deductionLow        = decimal.NewFromInt(1955)
	deductionBase       = decimal.NewFromInt(1910)
	deductionMidExtra   = decimal.NewFromInt(1190)
	deductionMidSpan    = decimal.NewFromInt(13000)
	deductionTopSpan    = decimal.NewFromInt(22000)
)

// =============================================================================
// EMPIRICAL
// =============================================================================

// Empirical applies the deduction rate observed across history. Unusable
// pairs are skipped; with none left it returns generic.ErrNoHistory.
func Empirical(gross decimal.Decimal, history []Record) (res Result, err error) {
	defer recoverInto(MethodEmpirical, &err)
	if gross.IsNegative() {
		return Result{}, generic.ErrInvalidAmount
	}

	totalGross, totalNet := decimal.Zero, decimal.Zero
	skipped := 0
	for _, r := range history {
		if !r.Usable() {
			skipped++
			continue
		}
		totalGross = totalGross.Add(r.Gross)
		totalNet = totalNet.Add(r.Net)
	}
	if totalGross.IsZero() {
		return Result{}, generic.ErrNoHistory
	}

	rate := decimal.NewFromInt(1).Sub(totalNet.Div(totalGross)).Round(4)
	res = newResult(gross, rate, MethodEmpirical)
	if skipped > 0 {
		res.Diagnostics = append(res.Diagnostics, generic.Diagnostic{
			Code:    generic.DiagIgnoredHistory,
			Field:   "history",
			Message: fmt.Sprintf("%d records with gross <= 0 or net outside [0, gross] ignored", skipped),
		})
	}
	return res, nil
}

// =============================================================================
// THEORETICAL
// =============================================================================

// Theoretical computes contributions and taxes from params. Amounts are
// annualized (x12) for the brackets and deductions and brought back to a
// monthly figure at the end.
func Theoretical(gross decimal.Decimal, params TaxParams) (res Result, err error) {
	defer recoverInto(MethodTheoretical, &err)
	if gross.IsNegative() {
		return Result{}, generic.ErrInvalidAmount
	}
	p := params.WithDefaults()

	contribution := generic.RoundMoney(generic.MinDecimal(gross, p.ContributionCap).Mul(p.ContributionRate))
	annual := gross.Sub(contribution).Mul(monthsPerYear)

	grossTax := progressiveTax(annual, p.Brackets)
	deductions := workerDeductions(annual)
	netTax := generic.MaxDecimal(decimal.Zero, grossTax.Sub(deductions))
	surtaxes := annual.Mul(p.RegionalSurtax.Add(p.MunicipalSurtax))
	monthlyTax := generic.RoundMoney(netTax.Add(surtaxes).Div(monthsPerYear))

	total := contribution.Add(monthlyTax)
	res = Result{
		Gross:      gross,
		Net:        gross.Sub(total),
		Deductions: total,
		Rate:       ratio(total, gross),
		Method:     MethodTheoretical,
		Breakdown: &TaxBreakdown{
			Contribution:  contribution,
			AnnualTaxable: generic.RoundMoney(annual),
			GrossTax:      generic.RoundMoney(grossTax),
			Deductions:    generic.RoundMoney(deductions),
			Surtaxes:      generic.RoundMoney(surtaxes),
			MonthlyTax:    monthlyTax,
		},
	}
	return res, nil
}

// progressiveTax applies each bracket to the slice of income inside it.
func progressiveTax(income decimal.Decimal, brackets []Bracket) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if !income.GreaterThan(lower) {
			break
		}
		upper := income
		if !b.UpTo.IsZero() {
			upper = generic.MinDecimal(income, b.UpTo)
		}
		tax = tax.Add(upper.Sub(lower).Mul(b.Rate))
		lower = upper
		if b.UpTo.IsZero() {
			break
		}
	}
	return tax
}

// workerDeductions is the annual employee deduction for income.
//
//	income <= 15k:  1955
//	15k..28k:       1910 + 1190 x (28k - income) / 13k
//	28k..50k:       1910 x (50k - income) / 22k
//	above 50k:      0
func workerDeductions(income decimal.Decimal) decimal.Decimal {
	switch {
	case !income.IsPositive():
		return decimal.Zero
	case income.LessThanOrEqual(deductionLowCeiling):
		return deductionLow
	case income.LessThanOrEqual(deductionMidCeiling):
		return deductionBase.Add(deductionMidExtra.Mul(deductionMidCeiling.Sub(income)).Div(deductionMidSpan))
	case income.LessThanOrEqual(deductionTopCeiling):
		return deductionBase.Mul(deductionTopCeiling.Sub(income)).Div(deductionTopSpan)
	default:
		return decimal.Zero
	}
}

// =============================================================================
// HEURISTIC
// =============================================================================

// Heuristic applies the flat rate of the band the annualized gross falls in.
func Heuristic(gross decimal.Decimal, bands []Band) (res Result, err error) {
	defer recoverInto(MethodHeuristic, &err)
	if gross.IsNegative() {
		return Result{}, generic.ErrInvalidAmount
	}
	if len(bands) == 0 {
		bands = DefaultTaxParams.HeuristicBands
	}
	annual := gross.Mul(monthsPerYear)
	rate := FallbackRate
	for _, b := range bands {
		if b.UpTo.IsZero() || annual.LessThanOrEqual(b.UpTo) {
			rate = b.Rate
			break
		}
	}
	return newResult(gross, rate, MethodHeuristic), nil
}

// =============================================================================
// HELPERS
// =============================================================================

func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Round(4)
}

// recoverInto turns a panic inside a method (decimal division by zero) into
// an ErrEstimationFailed error.
func recoverInto(m Method, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s method: %v", generic.ErrEstimationFailed, m, r)
	}
}
