package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Logging LoggingConfig `mapstructure:"logging"`
	Export  ExportConfig  `mapstructure:"export"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Redis   RedisConfig   `mapstructure:"redis"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// ExportConfig controls where the spreadsheet is written and how much of it is
// echoed back.
type ExportConfig struct {
	Path        string `mapstructure:"path"`
	Sheet       string `mapstructure:"sheet"`
	PreviewRows int    `mapstructure:"preview_rows"`
}

type SolverConfig struct {
	Seed          float64 `mapstructure:"seed"`
	Tolerance     float64 `mapstructure:"tolerance"`
	MaxIterations int     `mapstructure:"max_iterations"`
}

// RedisConfig is optional; an empty Address keeps the rate cache in memory.
type RedisConfig struct {
	Address  string        `mapstructure:"address"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a Redis server was configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}
