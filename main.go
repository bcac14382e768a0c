package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"loan-refinance/amortization"
	"loan-refinance/config"
	"loan-refinance/console"
	"loan-refinance/export"
	"loan-refinance/logger"
	"loan-refinance/repository"
	"loan-refinance/service"
)

func main() {
	prompter := console.NewPrompter(os.Stdin, os.Stdout)

	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stdout, "\n Ocorreu um erro inesperado: %v\n", r)
			waitForEnter(prompter)
		}
	}()

	if err := run(prompter, os.Stdout); err != nil {
		fmt.Fprintf(os.Stdout, "\n Ocorreu um erro inesperado: %v\n", err)
	}

	// mantém o terminal aberto até o usuário pressionar Enter
	waitForEnter(prompter)
}

func run(prompter *console.Prompter, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	cache, closeCache := newRateCache(cfg.Redis, log)
	defer closeCache()

	loanRepo := repository.NewLoanRepositoryMemory()

	refinanceService := service.NewRefinanceService(
		loanRepo,
		cache,
		amortization.SolverOptions{
			Seed:          cfg.Solver.Seed,
			Tolerance:     cfg.Solver.Tolerance,
			MaxIterations: cfg.Solver.MaxIterations,
		},
		log,
	)

	exporter := export.NewExporter(cfg.Export, log)

	session := console.NewSession(prompter, out, refinanceService, exporter, log)
	return session.Run()
}

// newRateCache returns Redis when configured and reachable, the in-memory
// cache otherwise.
func newRateCache(cfg config.RedisConfig, log *zap.Logger) (repository.CacheRepository, func()) {
	if !cfg.Enabled() {
		return repository.NewMemoryCache(), func() {}
	}

	redisCache := repository.NewRedisCache(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := redisCache.Ping(ctx); err != nil {
		log.Warn("redis unavailable, using in-memory rate cache", zap.String("address", cfg.Address), zap.Error(err))
		_ = redisCache.Close()
		return repository.NewMemoryCache(), func() {}
	}

	log.Info("using redis rate cache", zap.String("address", cfg.Address))
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.Warn("failed to close redis client", zap.Error(err))
		}
	}
}

func waitForEnter(p *console.Prompter) {
	_, _ = p.ReadLine("\nPressione Enter para sair...")
}
