package repository

import (
	"iter"

	"loan-refinance/domain"
)

// LoanRepository is the ordered, append-only collection of the records
// evaluated during a session.
type LoanRepository interface {
	Append(record domain.LoanRecord)
	All() iter.Seq[domain.LoanRecord]
	IsEmpty() bool
	Len() int
}
