package service

const (
	MaxLoanAmount = 1_000_000_000.0 // 1 bilhão
	MaxTermMonths = 600             // 50 anos
	MinTermMonths = 1
)
