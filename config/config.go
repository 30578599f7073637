// Package config loads the settings of the default fork worker pool from the environment.
//
// Variables are read after an optional .env file has been loaded; variables already set in
// the environment take precedence over the file.
//
//	FORK_POOL_SIZE   max concurrent tasks, 0 sizes the pool to the number of CPUs (default 0)
//	FORK_QUEUE_SIZE  max queued tasks, 0 means unbounded (default 0)
//	FORK_DEADLINE    per-task wait deadline such as 250ms, 0 means none (default 0)
//	FORK_LOG_LEVEL   DEBUG, INFO, WARN or ERROR (default INFO)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrLoadingEnvFile is returned when an explicitly requested env file cannot be loaded
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrParsingConfig is returned when environment variables cannot be parsed into the config
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned when a parsed value is out of range
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the settings of the default worker pool
type Config struct {
	PoolSize  int           `env:"FORK_POOL_SIZE" envDefault:"0"`
	QueueSize int           `env:"FORK_QUEUE_SIZE" envDefault:"0"`
	Deadline  time.Duration `env:"FORK_DEADLINE" envDefault:"0s"`
	LogLevel  slog.Level    `env:"FORK_LOG_LEVEL" envDefault:"INFO"`
}

// Load reads the configuration from the environment.
// Without arguments it first loads ./.env if there is one; otherwise it loads the given
// files in order and fails if any of them cannot be read.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		// The .env file is optional
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, errors.Join(ErrLoadingEnvFile, err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// MustLoad works like Load but panics if the configuration cannot be loaded
func MustLoad(files ...string) Config {
	cfg, err := Load(files...)
	if err != nil {
		panic(fmt.Sprintf("failed to load fork configuration: %v", err))
	}
	return cfg
}

// Validate checks that sizes and deadline are not negative
func (c Config) Validate() error {
	if c.PoolSize < 0 {
		return fmt.Errorf("%w: FORK_POOL_SIZE must be greater than or equal to 0, got %d", ErrInvalidConfig, c.PoolSize)
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("%w: FORK_QUEUE_SIZE must be greater than or equal to 0, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.Deadline < 0 {
		return fmt.Errorf("%w: FORK_DEADLINE must not be negative, got %s", ErrInvalidConfig, c.Deadline)
	}
	return nil
}

// Logger returns a text logger writing to stderr at the configured level
func (c Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}
