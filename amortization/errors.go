package amortization

import "fmt"

// DomainError reports an input outside the domain of the amortization formulas.
type DomainError struct {
	Field  string
	Value  string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Field, e.Value, e.Reason)
}

// ConvergenceError reports that no periodic rate could be solved for the
// given principal, term and payment.
type ConvergenceError struct {
	Reason     string
	Iterations int
	Rate       float64
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	if e.Iterations == 0 {
		return fmt.Sprintf("rate solver did not converge: %s", e.Reason)
	}
	return fmt.Sprintf(
		"rate solver did not converge after %d iterations (rate=%g, residual=%g): %s",
		e.Iterations, e.Rate, e.Residual, e.Reason,
	)
}
