// Package amortization computes level installments and infers periodic rates
// from known installments.
package amortization

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// MaxPeriodicRate is the highest periodic rate the solver searches (100% per period).
const MaxPeriodicRate = 1.0

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// CalculatePayment returns the level installment that amortizes principal over
// term periods at the periodic rate. The result is not rounded.
func CalculatePayment(principal, rate decimal.Decimal, term int) (decimal.Decimal, error) {
	if err := checkLoan(principal, term); err != nil {
		return decimal.Zero, err
	}
	if rate.LessThanOrEqual(one.Neg()) {
		return decimal.Zero, &DomainError{Field: "rate", Value: rate.String(), Reason: "must be greater than -1"}
	}

	n := decimal.NewFromInt(int64(term))

	// Limite r -> 0: a fórmula geral é 0/0 neste ponto.
	if rate.IsZero() {
		return principal.Div(n), nil
	}

	growth := one.Add(rate)
	if term == 1 {
		return principal.Mul(growth), nil
	}

	// P*r/(1-(1+r)^-n) rewritten as P*r*g/(g-1) with g=(1+r)^n.
	g := growth.Pow(n)
	return principal.Mul(rate).Mul(g).Div(g.Sub(one)), nil
}

// RoundMoney rounds an amount to cents.
func RoundMoney(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// RoundPercent converts a periodic rate fraction to a percentage with two decimals.
func RoundPercent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred).Round(2)
}

func checkLoan(principal decimal.Decimal, term int) error {
	if !principal.IsPositive() {
		return &DomainError{Field: "principal", Value: principal.String(), Reason: "must be positive"}
	}
	if term < 1 {
		return &DomainError{Field: "term", Value: strconv.Itoa(term), Reason: "must be at least 1"}
	}
	return nil
}
