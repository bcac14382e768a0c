package amortization

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	defaultSeed          = 0.01
	defaultTolerance     = 1e-9
	defaultMaxIterations = 100

	// below this the annuity factor is replaced by its limit principal/term
	zeroRateEpsilon = 1e-12
)

// SolverOptions tunes the rate solver. Zero fields fall back to the defaults.
type SolverOptions struct {
	Seed          float64
	Tolerance     float64
	MaxIterations int
}

// DefaultSolverOptions seeds the search at 1% per period and stops once the
// installment is matched to 1e-9 (relative to payments above 1.0).
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Seed:          defaultSeed,
		Tolerance:     defaultTolerance,
		MaxIterations: defaultMaxIterations,
	}
}

func (o SolverOptions) withDefaults() SolverOptions {
	if o.Seed <= 0 {
		o.Seed = defaultSeed
	}
	if o.Tolerance <= 0 {
		o.Tolerance = defaultTolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = defaultMaxIterations
	}
	return o
}

// RateEquation captures the known values of the amortization equation whose
// root is the periodic rate.
type RateEquation struct {
	Principal float64
	Term      int
	Payment   float64
}

// Residual returns Payment minus the installment produced at rate. It is
// strictly decreasing in rate for rate >= 0.
func (e RateEquation) Residual(rate float64) float64 {
	return e.Payment - e.installment(rate)
}

func (e RateEquation) installment(rate float64) float64 {
	n := float64(e.Term)
	if math.Abs(rate) < zeroRateEpsilon {
		return e.Principal / n
	}
	// 1-(1+r)^-n without cancellation for small r
	annuity := -math.Expm1(-n * math.Log1p(rate))
	return e.Principal * rate / annuity
}

// SolveRate finds the periodic rate at which CalculatePayment(principal, rate,
// term) equals knownPayment, using DefaultSolverOptions.
func SolveRate(principal decimal.Decimal, term int, knownPayment decimal.Decimal) (float64, error) {
	return SolveRateWithOptions(principal, term, knownPayment, DefaultSolverOptions())
}

// SolveRateWithOptions is SolveRate with explicit solver options.
func SolveRateWithOptions(
	principal decimal.Decimal,
	term int,
	knownPayment decimal.Decimal,
	opts SolverOptions,
) (float64, error) {
	if err := checkLoan(principal, term); err != nil {
		return 0, err
	}
	if !knownPayment.IsPositive() {
		return 0, &DomainError{Field: "payment", Value: knownPayment.String(), Reason: "must be positive"}
	}

	zeroRatePayment := principal.Div(decimal.NewFromInt(int64(term)))
	switch knownPayment.Cmp(zeroRatePayment) {
	case 0:
		return 0, nil
	case -1:
		return 0, &ConvergenceError{
			Reason: fmt.Sprintf("payment %s does not exceed principal/term %s", knownPayment, zeroRatePayment.Round(2)),
		}
	}

	// (1+r)^0 = 1 makes the general formula a pole at term 1.
	if term == 1 {
		return knownPayment.Div(principal).Sub(one).InexactFloat64(), nil
	}

	ceiling, err := CalculatePayment(principal, decimal.NewFromFloat(MaxPeriodicRate), term)
	if err != nil {
		return 0, err
	}
	if knownPayment.GreaterThan(ceiling) {
		return 0, &ConvergenceError{
			Reason: fmt.Sprintf("payment %s exceeds the installment at %.0f%% per period", knownPayment, MaxPeriodicRate*100),
		}
	}

	eq := RateEquation{
		Principal: principal.InexactFloat64(),
		Term:      term,
		Payment:   knownPayment.InexactFloat64(),
	}
	return solveBracketed(eq, 0, MaxPeriodicRate, opts.withDefaults())
}

type bracket struct {
	lo, hi float64
}

func (b *bracket) narrow(rate, residual float64) {
	if residual > 0 {
		b.lo = rate
	} else {
		b.hi = rate
	}
}

func (b *bracket) contains(rate float64) bool {
	return rate > b.lo && rate < b.hi
}

func (b *bracket) mid() float64 {
	return b.lo + (b.hi-b.lo)/2
}

// solveBracketed runs a secant iteration that falls back to bisection
// whenever a step leaves the current bracket [lo, hi].
func solveBracketed(eq RateEquation, lo, hi float64, opts SolverOptions) (float64, error) {
	tol := opts.Tolerance * math.Max(1, math.Abs(eq.Payment))
	b := bracket{lo: lo, hi: hi}

	if fLo := eq.Residual(lo); math.Abs(fLo) < tol {
		return lo, nil
	}

	x0 := opts.Seed
	if !b.contains(x0) {
		x0 = b.mid()
	}
	f0 := eq.Residual(x0)
	if math.Abs(f0) < tol {
		return x0, nil
	}
	b.narrow(x0, f0)

	x1 := x0 * 1.01
	if !b.contains(x1) {
		x1 = b.mid()
	}
	f1 := eq.Residual(x1)

	for i := 1; i <= opts.MaxIterations; i++ {
		if math.Abs(f1) < tol {
			return x1, nil
		}
		b.narrow(x1, f1)

		next := b.mid()
		if f1 != f0 {
			step := x1 - f1*(x1-x0)/(f1-f0)
			if !math.IsNaN(step) && b.contains(step) {
				next = step
			}
		}

		x0, f0 = x1, f1
		x1, f1 = next, eq.Residual(next)
	}

	if math.Abs(f1) < tol {
		return x1, nil
	}
	return 0, &ConvergenceError{
		Reason:     "tolerance not reached",
		Iterations: opts.MaxIterations,
		Rate:       x1,
		Residual:   f1,
	}
}
