package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "holding name cannot be empty")

	assert.True(t, stderrors.Is(err, ErrInvalidInput))
	assert.False(t, stderrors.Is(err, ErrStorage))
	assert.Equal(t, "holding name cannot be empty", err.Error())
}

func TestWrap_KeepsInternalError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrStorage, cause)

	assert.True(t, stderrors.Is(err, ErrStorage))
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, "Storage operation failed: disk full", err.Error())
}

func TestAppError_WrappedByFmt(t *testing.T) {
	err := fmt.Errorf("open backend: %w", WithMessage(ErrUnsupportedBackend, "unsupported storage backend: redis"))

	var appErr *AppError
	assert.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, "UNSUPPORTED_BACKEND", appErr.Code)
}
