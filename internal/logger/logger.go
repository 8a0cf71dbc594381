// Package logger provides structured logging using Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
	level = zap.NewAtomicLevel()
)

// Init initializes the global logger for the given environment.
// For "production", it uses a JSON encoder at info level. For all other
// environments, it uses a human-readable console encoder at debug level.
// Log output goes to stderr so it never mixes with command output.
func Init(env string) {
	once.Do(func() {
		level.SetLevel(defaultLevel(env))
		sugar = build(env, level).Sugar()
	})
}

// New builds a logger for env without touching the global one.
func New(env string) *zap.Logger {
	return build(env, zap.NewAtomicLevelAt(defaultLevel(env)))
}

// SetLevel changes the level of the global logger, e.g. "warn".
func SetLevel(text string) error {
	return level.UnmarshalText([]byte(text))
}

func defaultLevel(env string) zapcore.Level {
	if env == "production" {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

func build(env string, lvl zap.AtomicLevel) *zap.Logger {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}

	base, err := cfg.Build()
	if err != nil {
		// Fallback to nop logger if initialization fails.
		return zap.NewNop()
	}
	return base
}

// Get returns the global sugared logger.
// If Init has not been called, it initializes a development logger.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
