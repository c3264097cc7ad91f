package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrorKind is the closed classification of external-call failures.
type ErrorKind string

const (
	// KindConnection: transport-level connectivity failure. Retryable.
	KindConnection ErrorKind = "connection"

	// KindTimeout: the call exceeded its deadline. Retryable.
	KindTimeout ErrorKind = "timeout"

	// KindRateLimit: the provider rejected the call for rate. Retryable,
	// honoring a server retry-after hint when present.
	KindRateLimit ErrorKind = "rate_limit"

	// KindFatal: everything else, including malformed requests. Never
	// retried.
	KindFatal ErrorKind = "fatal"
)

// ConnectionError represents a transport-level connectivity failure.
type ConnectionError struct {
	// Message is the error message
	Message string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// TimeoutError represents a call that exceeded its deadline.
type TimeoutError struct {
	// Timeout is the configured per-call bound
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("call timed out after %s", e.Timeout)
}

// RateLimitError represents a provider rate-limit rejection.
type RateLimitError struct {
	// RetryAfter is the server-provided wait hint (0 if absent)
	RetryAfter time.Duration

	// Message is the error message from the provider
	Message string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded (retry after %s): %s", e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

// CallError is the structured terminal failure raised by the executor on a
// fatal error or retry exhaustion. The caller must not mark the event
// replied nor mutate spend or call counters when it sees one.
type CallError struct {
	// Kind is the classified failure class of the final attempt.
	Kind ErrorKind

	// Message is the final failure message.
	Message string

	// EventID identifies the event the call was made for.
	EventID string

	// Attempts is the number of attempts made, including the first.
	Attempts int

	// Cause is the final underlying error.
	Cause error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return fmt.Sprintf("call failed (%s) after %d attempt(s): %s", e.Kind, e.Attempts, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *CallError) Unwrap() error {
	return e.Cause
}

// Classify maps an error to its failure class. Unknown errors are fatal:
// retrying a request the provider deterministically rejects only burns
// budget.
func Classify(err error) ErrorKind {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return KindConnection
	}
	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return KindTimeout
	}
	// A generator that respects its per-call deadline surfaces the
	// context error directly. context.Canceled stays fatal so shutdown
	// aborts instead of retrying.
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return KindRateLimit
	}
	return KindFatal
}

// Retryable reports whether a failure class is worth another attempt.
func Retryable(kind ErrorKind) bool {
	switch kind {
	case KindConnection, KindTimeout, KindRateLimit:
		return true
	}
	return false
}

// retryAfterHint extracts the server-provided wait hint, if the error
// carries one.
func retryAfterHint(err error) time.Duration {
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return rateErr.RetryAfter
	}
	return 0
}
