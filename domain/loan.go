package domain

import (
	"github.com/shopspring/decimal"

	"loan-refinance/amortization"
)

// LoanInput holds one refinancing scenario as entered by the user.
type LoanInput struct {
	Name           string
	Principal      decimal.Decimal
	RemainingTerm  int
	CurrentPayment decimal.Decimal
	ProposedRate   decimal.Decimal // fraction, not percent
}

// LoanRecord is an evaluated refinancing scenario. It is immutable: the only
// way to build one is NewLoanRecord, which derives the proposed payment.
type LoanRecord struct {
	name            string
	principal       decimal.Decimal
	remainingTerm   int
	currentPayment  decimal.Decimal
	currentRate     float64
	proposedRate    decimal.Decimal
	proposedPayment decimal.Decimal
}

// NewLoanRecord builds a record from the entered values and the rate solved
// from them.
func NewLoanRecord(input LoanInput, inferredCurrentRate float64) (LoanRecord, error) {
	proposedPayment, err := amortization.CalculatePayment(
		input.Principal,
		input.ProposedRate,
		input.RemainingTerm,
	)
	if err != nil {
		return LoanRecord{}, err
	}

	return LoanRecord{
		name:            input.Name,
		principal:       input.Principal,
		remainingTerm:   input.RemainingTerm,
		currentPayment:  input.CurrentPayment,
		currentRate:     inferredCurrentRate,
		proposedRate:    input.ProposedRate,
		proposedPayment: proposedPayment,
	}, nil
}

func (r LoanRecord) Name() string { return r.name }
func (r LoanRecord) Principal() decimal.Decimal { return r.principal }
func (r LoanRecord) RemainingTerm() int { return r.remainingTerm }
func (r LoanRecord) CurrentPayment() decimal.Decimal { return r.currentPayment }
func (r LoanRecord) InferredCurrentRate() float64 { return r.currentRate }
func (r LoanRecord) ProposedRate() decimal.Decimal { return r.proposedRate }
func (r LoanRecord) ProposedPayment() decimal.Decimal { return r.proposedPayment }
