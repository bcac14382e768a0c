package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"loan-refinance/amortization"
	"loan-refinance/domain"
	"loan-refinance/repository"
)

type MockCache struct {
	Data       map[string]string
	GetCalls   int
	SetCalls   int
	ForceError bool
}

func newMockCache() *MockCache {
	return &MockCache{Data: map[string]string{}}
}

func (m *MockCache) Get(key string) (string, bool) {
	m.GetCalls++
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key, value string) error {
	m.SetCalls++
	if m.ForceError {
		return errors.New("cache down")
	}
	m.Data[key] = value
	return nil
}

func newTestService(t *testing.T, cache repository.CacheRepository) (*RefinanceService, *repository.LoanRepositoryMemory) {
	t.Helper()
	repo := repository.NewLoanRepositoryMemory()
	return NewRefinanceService(repo, cache, amortization.DefaultSolverOptions(), zaptest.NewLogger(t)), repo
}

func validInput() domain.LoanInput {
	return domain.LoanInput{
		Name:           "Maria",
		Principal:      decimal.RequireFromString("10000.00"),
		RemainingTerm:  12,
		CurrentPayment: decimal.RequireFromString("900.00"),
		ProposedRate:   decimal.RequireFromString("0.01"),
	}
}

func TestCreateRecord_OK(t *testing.T) {
	cache := newMockCache()
	svc, repo := newTestService(t, cache)

	record, err := svc.CreateRecord(validInput())
	require.NoError(t, err)

	payment, err := amortization.CalculatePayment(
		record.Principal(), decimal.NewFromFloat(record.InferredCurrentRate()), record.RemainingTerm())
	require.NoError(t, err)
	assert.True(t, payment.Sub(record.CurrentPayment()).Abs().LessThan(decimal.RequireFromString("0.01")))
	assert.Equal(t, "888.49", amortization.RoundMoney(record.ProposedPayment()).StringFixed(2))

	assert.Equal(t, 1, repo.Len())
	assert.True(t, svc.HasRecords())
	assert.Equal(t, 1, cache.SetCalls)
	assert.Contains(t, cache.Data, "10000|12|900")
}

func TestCreateRecord_SingleInstallment(t *testing.T) {
	svc, _ := newTestService(t, newMockCache())

	input := validInput()
	input.Principal = decimal.RequireFromString("5000.00")
	input.RemainingTerm = 1
	input.CurrentPayment = decimal.RequireFromString("5100.00")

	record, err := svc.CreateRecord(input)
	require.NoError(t, err)
	assert.Equal(t, 0.02, record.InferredCurrentRate())
}

func TestCreateRecord_UsesCachedRate(t *testing.T) {
	cache := newMockCache()
	cache.Data["10000|12|900"] = "0.0123"
	svc, _ := newTestService(t, cache)

	record, err := svc.CreateRecord(validInput())
	require.NoError(t, err)

	assert.Equal(t, 0.0123, record.InferredCurrentRate())
	assert.Equal(t, 0, cache.SetCalls)
}

func TestCreateRecord_MalformedCacheEntryIsResolved(t *testing.T) {
	cache := newMockCache()
	cache.Data["10000|12|900"] = "not-a-rate"
	svc, _ := newTestService(t, cache)

	record, err := svc.CreateRecord(validInput())
	require.NoError(t, err)

	assert.InDelta(t, 0.012043, record.InferredCurrentRate(), 1e-6)
	assert.Equal(t, 1, cache.SetCalls)
}

func TestCreateRecord_CacheFailureIsNotFatal(t *testing.T) {
	cache := newMockCache()
	cache.ForceError = true
	svc, repo := newTestService(t, cache)

	_, err := svc.CreateRecord(validInput())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Len())
}

func TestCreateRecord_ConvergenceErrorIsSurfaced(t *testing.T) {
	svc, repo := newTestService(t, newMockCache())

	input := validInput()
	input.CurrentPayment = decimal.RequireFromString("500.00")

	_, err := svc.CreateRecord(input)

	var convErr *amortization.ConvergenceError
	require.True(t, errors.As(err, &convErr), "expected ConvergenceError, got %v", err)
	assert.True(t, repo.IsEmpty())
}

func TestCreateRecord_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.LoanInput)
	}{
		{"empty name", func(in *domain.LoanInput) { in.Name = "  " }},
		{"zero principal", func(in *domain.LoanInput) { in.Principal = decimal.Zero }},
		{"principal above maximum", func(in *domain.LoanInput) { in.Principal = decimal.NewFromInt(2_000_000_000) }},
		{"zero term", func(in *domain.LoanInput) { in.RemainingTerm = 0 }},
		{"term above maximum", func(in *domain.LoanInput) { in.RemainingTerm = MaxTermMonths + 1 }},
		{"zero payment", func(in *domain.LoanInput) { in.CurrentPayment = decimal.Zero }},
		{"negative proposed rate", func(in *domain.LoanInput) { in.ProposedRate = decimal.RequireFromString("-0.01") }},
		{"proposed rate above ceiling", func(in *domain.LoanInput) { in.ProposedRate = decimal.RequireFromString("1.5") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newMockCache()
			svc, repo := newTestService(t, cache)

			input := validInput()
			tt.mutate(&input)

			_, err := svc.CreateRecord(input)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.True(t, repo.IsEmpty())
			assert.Equal(t, 0, cache.GetCalls)
		})
	}
}

func TestRecords_InsertionOrder(t *testing.T) {
	svc, _ := newTestService(t, newMockCache())
	assert.False(t, svc.HasRecords())

	for _, name := range []string{"Ana", "Bruno", "Ana"} {
		input := validInput()
		input.Name = name
		_, err := svc.CreateRecord(input)
		require.NoError(t, err)
	}

	var got []string
	for r := range svc.Records() {
		got = append(got, r.Name())
	}
	assert.Equal(t, []string{"Ana", "Bruno", "Ana"}, got)
}
