package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestNew_LevelPerEnvironment(t *testing.T) {
	prod := New("production")
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))

	dev := New("development")
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestGet_InitializesOnceAndSetLevel(t *testing.T) {
	first := Get()
	Init("production")

	assert.NotNil(t, first)
	assert.Same(t, first, Get())

	assert.NoError(t, SetLevel("error"))
	assert.False(t, Get().Desugar().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, Get().Desugar().Core().Enabled(zapcore.ErrorLevel))

	assert.Error(t, SetLevel("loud"))
	Sync()
}
