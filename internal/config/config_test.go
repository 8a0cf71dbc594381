package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory so no stray .env is picked up.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, key := range []string{"APP_ENV", "LOG_LEVEL", "PORTFOLIO_STORAGE", "PORTFOLIO_CURRENCY", "REMINDER_SCHEDULE", "REMINDER_LOOKAHEAD_DAYS"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "file:.rebalancer", cfg.Storage)
	assert.Equal(t, "KRW", cfg.Currency)
	assert.Equal(t, "0 9 * * *", cfg.ReminderSchedule)
	assert.Equal(t, 7, cfg.ReminderLookaheadDays)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PORTFOLIO_STORAGE", "sqlite:/tmp/portfolio.db")
	t.Setenv("PORTFOLIO_CURRENCY", "usd")
	t.Setenv("REMINDER_SCHEDULE", "@daily")
	t.Setenv("REMINDER_LOOKAHEAD_DAYS", "30")

	cfg, err := Load()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "sqlite:/tmp/portfolio.db", cfg.Storage)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "@daily", cfg.ReminderSchedule)
	assert.Equal(t, 30, cfg.ReminderLookaheadDays)
}

func TestLoad_DotEnvFile(t *testing.T) {
	isolate(t)
	// godotenv never overrides a variable that is already set, even to "".
	require.NoError(t, os.Unsetenv("PORTFOLIO_STORAGE"))
	require.NoError(t, os.WriteFile(filepath.Join(".", ".env"), []byte("PORTFOLIO_STORAGE=memory\n"), 0o600))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown log level", key: "LOG_LEVEL", value: "chatty"},
		{name: "unknown currency", key: "PORTFOLIO_CURRENCY", value: "XXQ"},
		{name: "bad schedule", key: "REMINDER_SCHEDULE", value: "every morning"},
		{name: "non-numeric lookahead", key: "REMINDER_LOOKAHEAD_DAYS", value: "week"},
		{name: "zero lookahead", key: "REMINDER_LOOKAHEAD_DAYS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.ErrorContains(t, err, tt.key)
		})
	}
}
