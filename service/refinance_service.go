package service

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loan-refinance/amortization"
	"loan-refinance/domain"
	"loan-refinance/repository"
)

// ErrInvalidInput wraps every validation failure of a LoanInput.
var ErrInvalidInput = errors.New("entrada inválida")

var maxLoanAmount = decimal.NewFromFloat(MaxLoanAmount)

type RefinanceService struct {
	repo   repository.LoanRepository
	cache  repository.CacheRepository
	solver amortization.SolverOptions
	logger *zap.Logger
}

// NewRefinanceService creates a RefinanceService appending to repo and caching
// solved rates in cache.
func NewRefinanceService(
	repo repository.LoanRepository,
	cache repository.CacheRepository,
	solver amortization.SolverOptions,
	logger *zap.Logger,
) *RefinanceService {
	return &RefinanceService{
		repo:   repo,
		cache:  cache,
		solver: solver,
		logger: logger,
	}
}

// CreateRecord infers the current rate of the loan, derives the installment at
// the proposed rate and appends the resulting record. Nothing is appended
// when the rate cannot be solved.
func (s *RefinanceService) CreateRecord(input domain.LoanInput) (domain.LoanRecord, error) {
	if err := validateInput(input); err != nil {
		return domain.LoanRecord{}, err
	}

	rate, err := s.currentRate(input)
	if err != nil {
		s.logger.Warn("current rate not solved",
			zap.String("name", input.Name),
			zap.Stringer("principal", input.Principal),
			zap.Int("term", input.RemainingTerm),
			zap.Stringer("payment", input.CurrentPayment),
			zap.Error(err),
		)
		return domain.LoanRecord{}, fmt.Errorf("não foi possível calcular a taxa de juros atual: %w", err)
	}

	record, err := domain.NewLoanRecord(input, rate)
	if err != nil {
		return domain.LoanRecord{}, fmt.Errorf("não foi possível calcular a nova prestação: %w", err)
	}

	s.repo.Append(record)
	s.logger.Info("loan record created",
		zap.String("name", record.Name()),
		zap.Float64("current_rate", rate),
		zap.Stringer("proposed_rate", record.ProposedRate()),
		zap.Stringer("proposed_payment", amortization.RoundMoney(record.ProposedPayment())),
		zap.Int("records", s.repo.Len()),
	)

	return record, nil
}

// Records yields the session's records in insertion order.
func (s *RefinanceService) Records() iter.Seq[domain.LoanRecord] {
	return s.repo.All()
}

func (s *RefinanceService) HasRecords() bool {
	return !s.repo.IsEmpty()
}

func (s *RefinanceService) currentRate(input domain.LoanInput) (float64, error) {
	key := rateCacheKey(input)

	if cached, ok := s.cache.Get(key); ok {
		rate, err := strconv.ParseFloat(cached, 64)
		if err == nil {
			s.logger.Debug("current rate cache hit", zap.String("key", key))
			return rate, nil
		}
		s.logger.Warn("discarding malformed cached rate", zap.String("key", key), zap.String("value", cached))
	}

	rate, err := amortization.SolveRateWithOptions(
		input.Principal,
		input.RemainingTerm,
		input.CurrentPayment,
		s.solver,
	)
	if err != nil {
		return 0, err
	}

	// cache é opcional; falha não impede o cadastro
	if err := s.cache.Set(key, strconv.FormatFloat(rate, 'g', -1, 64)); err != nil {
		s.logger.Warn("failed to cache current rate", zap.String("key", key), zap.Error(err))
	}

	return rate, nil
}

func rateCacheKey(input domain.LoanInput) string {
	return strings.Join([]string{
		input.Principal.String(),
		strconv.Itoa(input.RemainingTerm),
		input.CurrentPayment.String(),
	}, "|")
}

func validateInput(input domain.LoanInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: nome do cliente não pode ser vazio", ErrInvalidInput)
	}
	if !input.Principal.IsPositive() {
		return fmt.Errorf("%w: saldo devedor deve ser positivo", ErrInvalidInput)
	}
	if input.Principal.GreaterThan(maxLoanAmount) {
		return fmt.Errorf("%w: saldo devedor excede o máximo permitido de R$ %.2f", ErrInvalidInput, MaxLoanAmount)
	}
	if input.RemainingTerm < MinTermMonths {
		return fmt.Errorf("%w: parcelas restantes deve ser ao menos %d", ErrInvalidInput, MinTermMonths)
	}
	if input.RemainingTerm > MaxTermMonths {
		return fmt.Errorf("%w: parcelas restantes excede o máximo de %d", ErrInvalidInput, MaxTermMonths)
	}
	if !input.CurrentPayment.IsPositive() {
		return fmt.Errorf("%w: prestação atual deve ser positiva", ErrInvalidInput)
	}
	if input.ProposedRate.IsNegative() {
		return fmt.Errorf("%w: nova taxa de juros não pode ser negativa", ErrInvalidInput)
	}
	if input.ProposedRate.GreaterThan(decimal.NewFromFloat(amortization.MaxPeriodicRate)) {
		return fmt.Errorf("%w: nova taxa de juros excede %.0f%% ao mês", ErrInvalidInput, amortization.MaxPeriodicRate*100)
	}
	return nil
}
