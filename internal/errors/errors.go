package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// ErrorType buckets errors by where they came from, which is what the
// log pipeline and the HTTP error mapper key on.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeIO         ErrorType = "io"
)

// Codes attached to errors this service produces.
const (
	ErrCodeFileNotFound    = "FILE_NOT_FOUND"
	ErrCodeFileNotReadable = "FILE_NOT_READABLE"
	ErrCodeInvalidFormat   = "INVALID_FORMAT"
	ErrCodeInvalidFields   = "INVALID_FIELDS"
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
)

// AppError is a coded error with a stable machine-readable code and a
// human-readable message, wrapping the underlying cause when there is one.
type AppError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"cause,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// NewValidationError marks input the caller got wrong: malformed fields
// documents, bad formats, bad request shapes.
func NewValidationError(code, message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: code, Message: message, Cause: cause}
}

// NewIOError marks a filesystem failure while reading inputs or writing
// results.
func NewIOError(code, message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeIO, Code: code, Message: message, Cause: cause}
}

// Logger is a thin wrapper over slog that knows how to unpack AppError
// fields into structured attributes.
type Logger struct {
	logger *slog.Logger
}

// New builds a JSON logger at the named level ("debug", "info", "warn",
// "error").
func New(level string) (*Logger, error) {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})
	return &Logger{logger: slog.New(handler)}, nil
}

// LogError logs err at error level. An AppError contributes its type and
// code as separate attributes so log queries can filter on them.
func (l *Logger) LogError(err error, message string, args ...any) {
	if appErr, ok := err.(*AppError); ok {
		args = append([]any{
			"error_type", appErr.Type,
			"error_code", appErr.Code,
			"error_message", appErr.Message,
		}, args...)
		l.logger.Error(message, args...)
		return
	}
	l.logger.Error(message, append([]any{"error", err.Error()}, args...)...)
}

func (l *Logger) Info(message string, args ...any)  { l.logger.Info(message, args...) }
func (l *Logger) Debug(message string, args ...any) { l.logger.Debug(message, args...) }
func (l *Logger) Warn(message string, args ...any)  { l.logger.Warn(message, args...) }
