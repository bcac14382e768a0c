package repository

import (
	"iter"
	"slices"

	"loan-refinance/domain"
)

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
// It lives for one session.
type LoanRepositoryMemory struct {
	data []domain.LoanRecord
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		data: []domain.LoanRecord{},
	}
}

// Append stores the record after the ones already kept. Duplicates are allowed.
func (r *LoanRepositoryMemory) Append(record domain.LoanRecord) {
	r.data = append(r.data, record)
}

// All yields the records in insertion order. Each call starts a new pass.
func (r *LoanRepositoryMemory) All() iter.Seq[domain.LoanRecord] {
	return slices.Values(r.data)
}

func (r *LoanRepositoryMemory) IsEmpty() bool {
	return len(r.data) == 0
}

func (r *LoanRepositoryMemory) Len() int {
	return len(r.data)
}
