package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poultrypro/poultryctl/pkg/client"
)

func newTestClassifier() *Classifier {
	return New(zerolog.Nop())
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		wantKind Kind
		wantCode string
	}{
		{"expired session", 401, "token expired", KindAuthentication, CodeSessionExpired},
		{"bad login", 401, "invalid credentials", KindAuthentication, CodeInvalidCreds},
		{"forbidden", 403, "Forbidden", KindAuthentication, CodePermissionDenied},
		{"missing", 404, "Not Found", KindValidation, CodeNotFound},
		{"rejected input", 422, "name is required", KindValidation, CodeValidationError},
		{"rate limited", 429, "Too Many Requests", KindServer, CodeRateLimited},
		{"server down", 503, "Service Unavailable", KindServer, CodeServerError},
		{"server error", 500, "Internal Server Error", KindServer, CodeServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier()
			err := fmt.Errorf("client.GetProfile: %w", &client.HTTPError{StatusCode: tt.status, Message: tt.message})
			got := c.Classify(err)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.NotEmpty(t, got.ID)
			assert.False(t, got.Timestamp.IsZero())
		})
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyNetwork(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"deadline", context.DeadlineExceeded, CodeTimeout},
		{"net timeout", timeoutErr{}, CodeTimeout},
		{"dns failure", &net.DNSError{Err: "no such host", Name: "api.poultrypro.com"}, CodeOffline},
		{"refused", fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED), CodeConnectionFailed},
		{"reset", fmt.Errorf("read: %w", syscall.ECONNRESET), CodeNetworkError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier()
			got := c.Classify(tt.err)
			assert.Equal(t, KindNetwork, got.Kind)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestClassifyValidation(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify(&ValidationError{Reasons: []string{"Email is required", "Password is required"}})
	assert.Equal(t, KindValidation, got.Kind)
	assert.Equal(t, CodeValidationError, got.Code)
	assert.Equal(t, "Email is required; Password is required", got.Message)
}

func TestClassifyPassthrough(t *testing.T) {
	c := newTestClassifier()
	first := c.Classify(errors.New("boom"))
	again := c.Classify(fmt.Errorf("wrapped: %w", first))
	assert.Same(t, first, again)
	// Passthrough must not append a second log entry.
	assert.Len(t, c.Logs(), 1)
}

func TestClassifyUnknown(t *testing.T) {
	c := newTestClassifier()
	got := c.Classify(errors.New("something odd"))
	assert.Equal(t, KindUnknown, got.Kind)
	assert.Equal(t, CodeUnknownError, got.Code)
	assert.Equal(t, "something odd", got.Message)
}

func TestIsRecoverable(t *testing.T) {
	recoverable := map[Kind]bool{
		KindNetwork:        true,
		KindServer:         true,
		KindAuthentication: false,
		KindValidation:     false,
		KindPermission:     false,
		KindUnknown:        false,
	}
	for kind, want := range recoverable {
		assert.Equal(t, want, IsRecoverable(&AppError{Kind: kind}), "kind %s", kind)
	}
}

func TestLogsBounded(t *testing.T) {
	c := newTestClassifier()
	for i := 0; i < logCapacity+10; i++ {
		c.Classify(fmt.Errorf("failure %d", i))
	}

	logs := c.Logs()
	require.Len(t, logs, logCapacity)
	// Oldest retained entry is the 11th produced; newest is the last.
	assert.Equal(t, "failure 10", logs[0].Message)
	assert.Equal(t, fmt.Sprintf("failure %d", logCapacity+9), logs[len(logs)-1].Message)

	c.ClearLogs()
	assert.Empty(t, c.Logs())
}

func TestRun(t *testing.T) {
	c := newTestClassifier()

	got, ok := Run(context.Background(), c, func(context.Context) (int, error) {
		return 42, nil
	}, nil)
	require.True(t, ok)
	assert.Equal(t, 42, got)

	var notified *AppError
	got, ok = Run(context.Background(), c, func(context.Context) (int, error) {
		return 0, &client.HTTPError{StatusCode: 503, Message: "maintenance"}
	}, func(e *AppError) { notified = e })
	assert.False(t, ok)
	assert.Zero(t, got)
	require.NotNil(t, notified)
	assert.Equal(t, KindServer, notified.Kind)
}
