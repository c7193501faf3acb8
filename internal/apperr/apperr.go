// Package apperr normalizes every failure in the application into a closed
// taxonomy of error kinds with user-presentable messages. All components
// funnel raw errors through a Classifier before anything reaches state or
// output; nothing else constructs its own error presentation.
package apperr

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind is the closed set of error categories.
type Kind string

// Error kinds. Network and Server are the only recoverable kinds: callers may
// offer a retry for those and must treat the rest as terminal.
const (
	KindNetwork        Kind = "NETWORK"
	KindAuthentication Kind = "AUTHENTICATION"
	KindValidation     Kind = "VALIDATION"
	KindPermission     Kind = "PERMISSION"
	KindServer         Kind = "SERVER"
	KindUnknown        Kind = "UNKNOWN"
)

// Refined error codes attached during classification.
const (
	CodeNetworkError     = "NETWORK_ERROR"
	CodeTimeout          = "TIMEOUT"
	CodeOffline          = "OFFLINE"
	CodeConnectionFailed = "CONNECTION_FAILED"
	CodeSessionExpired   = "SESSION_EXPIRED"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeInvalidCreds     = "INVALID_CREDENTIALS"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeRateLimited      = "RATE_LIMITED"
	CodeServerError      = "SERVER_UNAVAILABLE"
	CodeUnknownError     = "UNKNOWN_ERROR"
)

// AppError is the normalized error value. Once constructed it is never
// mutated; the classifier only appends it to the log.
type AppError struct {
	ID        string
	Kind      Kind
	Message   string
	Code      string
	Details   any
	Timestamp time.Time
}

func (e *AppError) Error() string {
	return e.Message
}

// newError stamps a fresh AppError with an ID and timestamp.
func newError(kind Kind, message, code string, details any) *AppError {
	return &AppError{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   message,
		Code:      code,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// IsRecoverable reports whether the error is worth retrying. Only network and
// server failures qualify; the other kinds need user action first.
func IsRecoverable(e *AppError) bool {
	return e.Kind == KindNetwork || e.Kind == KindServer
}

// UserMessage returns the generic guidance shown for an error's kind.
// Validation errors carry their own specific message through unchanged.
func UserMessage(e *AppError) string {
	switch e.Kind {
	case KindNetwork:
		return "Please check your internet connection and try again."
	case KindAuthentication:
		return "Please log in again to continue."
	case KindValidation:
		return e.Message
	case KindPermission:
		return "Please grant the required permissions in your device settings."
	case KindServer:
		return "Our servers are experiencing issues. Please try again later."
	default:
		return "Something went wrong. Please try again."
	}
}

// ValidationError marks input rejected by local validation. The classifier
// maps it to KindValidation with the joined reasons as the message.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}
