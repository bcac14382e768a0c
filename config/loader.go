package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultExportPath  = "emprestimos.xlsx"
	DefaultExportSheet = "Empréstimos"
	DefaultPreviewRows = 10
)

// Load reads config.yaml from ./configs or the working directory when present,
// then applies environment overrides such as EXPORT_PATH or REDIS_ADDRESS.
// A .env file in the working directory is loaded first.
func Load() (*Config, error) {
	loadEnvFile(".env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "loan-refinance")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("export.path", DefaultExportPath)
	v.SetDefault("export.sheet", DefaultExportSheet)
	v.SetDefault("export.preview_rows", DefaultPreviewRows)

	v.SetDefault("solver.seed", 0.01)
	v.SetDefault("solver.tolerance", 1e-9)
	v.SetDefault("solver.max_iterations", 100)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)
}

func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level)
	}
	if cfg.Export.Path == "" {
		return errors.New("export.path is required")
	}
	if cfg.Export.Sheet == "" || len([]rune(cfg.Export.Sheet)) > 31 {
		return fmt.Errorf("export.sheet %q must have 1 to 31 characters", cfg.Export.Sheet)
	}
	if cfg.Export.PreviewRows < 0 {
		return errors.New("export.preview_rows must not be negative")
	}
	if cfg.Solver.Seed <= 0 || cfg.Solver.Seed >= 1 {
		return errors.New("solver.seed must be between 0 and 1")
	}
	if cfg.Solver.Tolerance <= 0 {
		return errors.New("solver.tolerance must be positive")
	}
	if cfg.Solver.MaxIterations < 1 {
		return errors.New("solver.max_iterations must be at least 1")
	}
	if cfg.Redis.TTL < 0 {
		return errors.New("redis.ttl must not be negative")
	}
	return nil
}
