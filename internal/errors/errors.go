// Package errors provides the structured error type shared by the
// rebalancer packages. Every error that crosses a package boundary and
// that callers are expected to branch on is an AppError.
package errors

// AppError represents a structured application error with a stable
// error code, a human-readable message and an optional internal cause.
type AppError struct {
	Code     string
	Message  string
	Internal error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that a
// wrapped sentinel still matches errors.Is(err, ErrInvalidInput).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Internal: sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput = &AppError{Code: "INVALID_INPUT", Message: "Invalid input"}
	ErrNotFound     = &AppError{Code: "NOT_FOUND", Message: "Resource not found"}
)

// Storage errors.
var (
	ErrStorage            = &AppError{Code: "STORAGE_ERROR", Message: "Storage operation failed"}
	ErrUnsupportedBackend = &AppError{Code: "UNSUPPORTED_BACKEND", Message: "Unsupported storage backend"}
)
