package apperr

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/poultrypro/poultryctl/pkg/client"
)

// logCapacity bounds the in-memory error log. Older entries are overwritten
// once the ring is full.
const logCapacity = 128

// Classifier maps raw failures to AppErrors and keeps a bounded in-memory log
// of everything it has classified.
type Classifier struct {
	log    zerolog.Logger
	notify func(*AppError)

	mu   sync.Mutex
	ring [logCapacity]*AppError
	next int
	size int
}

// New returns a Classifier that records classified errors and emits them
// through the given logger. The default notifier logs the user-facing message;
// override it with OnNotify to surface errors elsewhere.
func New(log zerolog.Logger) *Classifier {
	c := &Classifier{log: log}
	c.notify = func(e *AppError) {
		c.log.Error().Str("code", e.Code).Msg(UserMessage(e))
	}
	return c
}

// OnNotify replaces the default error presenter used by Run when no handler
// is supplied.
func (c *Classifier) OnNotify(fn func(*AppError)) {
	c.notify = fn
}

// Classify maps err to an AppError, logging it as a side effect.
//
// Dispatch order: already-classified errors pass through untouched; transport
// failures that never reached the network are KindNetwork; errors carrying an
// HTTP status are mapped from the status; locally rejected input is
// KindValidation; everything else is KindUnknown.
func (c *Classifier) Classify(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if isNetworkError(err) {
		return c.record(classifyNetwork(err))
	}
	if status := client.StatusCode(err); status != 0 {
		return c.record(classifyStatus(status, err))
	}
	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return c.record(newError(KindValidation, valErr.Error(), CodeValidationError, valErr.Reasons))
	}

	msg := "An unexpected error occurred"
	if err != nil {
		msg = err.Error()
	}
	return c.record(newError(KindUnknown, msg, CodeUnknownError, err))
}

// record appends the error to the ring and emits a structured log event.
func (c *Classifier) record(e *AppError) *AppError {
	c.mu.Lock()
	c.ring[c.next] = e
	c.next = (c.next + 1) % logCapacity
	if c.size < logCapacity {
		c.size++
	}
	c.mu.Unlock()

	c.log.Error().
		Str("error_id", e.ID).
		Str("kind", string(e.Kind)).
		Str("code", e.Code).
		Msg(e.Message)
	return e
}

// Logs returns a chronological snapshot of the retained error log.
func (c *Classifier) Logs() []*AppError {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*AppError, 0, c.size)
	start := c.next - c.size
	if start < 0 {
		start += logCapacity
	}
	for i := 0; i < c.size; i++ {
		out = append(out, c.ring[(start+i)%logCapacity])
	}
	return out
}

// ClearLogs drops all retained errors.
func (c *Classifier) ClearLogs() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ring = [logCapacity]*AppError{}
	c.next = 0
	c.size = 0
}

// isNetworkError reports whether err is a transport failure that never
// produced an HTTP response.
func isNetworkError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH)
}

// classifyNetwork refines a transport failure into a code and message.
// The refinement is a lookup over known signals, nothing more.
func classifyNetwork(err error) *AppError {
	message := "Network connection failed"
	code := CodeNetworkError

	var netErr net.Error
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		message = "Request timed out. Please check your connection."
		code = CodeTimeout
	case errors.As(err, &dnsErr):
		message = "You appear to be offline. Please check your internet connection."
		code = CodeOffline
	case errors.Is(err, syscall.ECONNREFUSED):
		message = "Unable to connect to server. Please try again later."
		code = CodeConnectionFailed
	}
	return newError(KindNetwork, message, code, err)
}

// classifyStatus maps an HTTP status to a kind, code, and message.
//
//	401, 403        -> authentication
//	429             -> server (rate limited)
//	other 4xx       -> validation
//	5xx             -> server
func classifyStatus(status int, err error) *AppError {
	switch {
	case status == 401:
		if strings.Contains(strings.ToLower(err.Error()), "invalid credentials") {
			return newError(KindAuthentication, "Invalid email or password. Please try again.", CodeInvalidCreds, err)
		}
		return newError(KindAuthentication, "Your session has expired. Please log in again.", CodeSessionExpired, err)
	case status == 403:
		return newError(KindAuthentication, "You do not have permission to perform this action.", CodePermissionDenied, err)
	case status == 429:
		return newError(KindServer, "Too many requests. Please wait a moment and try again.", CodeRateLimited, err)
	case status == 404:
		return newError(KindValidation, "The requested resource was not found.", CodeNotFound, err)
	case status >= 400 && status < 500:
		return newError(KindValidation, err.Error(), CodeValidationError, err)
	default:
		return newError(KindServer, "Server is temporarily unavailable. Please try again later.", CodeServerError, err)
	}
}
