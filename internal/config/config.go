// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"
)

// Config holds application configuration
type Config struct {
	// Environment ("development" or "production")
	AppEnv   string
	LogLevel string

	// Storage backend spec: memory, file:<dir>, gzip:<dir>, sqlite:<path>
	Storage string

	// ISO 4217 code amounts are rendered in
	Currency string

	// Reminders
	ReminderSchedule      string
	ReminderLookaheadDays int
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first when present;
// variables already set in the environment take precedence.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "error")),
		Storage:          getEnv("PORTFOLIO_STORAGE", "file:.rebalancer"),
		Currency:         strings.ToUpper(getEnv("PORTFOLIO_CURRENCY", "KRW")),
		ReminderSchedule: getEnv("REMINDER_SCHEDULE", "0 9 * * *"),
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: must be debug, info, warn or error", cfg.LogLevel)
	}

	if money.GetCurrency(cfg.Currency) == nil {
		return nil, fmt.Errorf("invalid PORTFOLIO_CURRENCY %q: unknown currency code", cfg.Currency)
	}

	if _, err := cron.ParseStandard(cfg.ReminderSchedule); err != nil {
		return nil, fmt.Errorf("invalid REMINDER_SCHEDULE %q: %w", cfg.ReminderSchedule, err)
	}

	days, err := parsePositiveInt(getEnv("REMINDER_LOOKAHEAD_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid REMINDER_LOOKAHEAD_DAYS: %w", err)
	}
	cfg.ReminderLookaheadDays = days

	return cfg, nil
}

// IsProduction reports whether the application runs in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("must be an integer, got %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
