package retry

import (
	"context"
	"log/slog"
	"time"
)

// Operation is the external call being wrapped. It must respect ctx.
type Operation[T any] func(ctx context.Context) (T, error)

// Execute runs op with classified retries and exponential backoff.
//
// Retryable failures (connection, timeout, rate limit) are logged and
// retried up to policy.MaxRetries times, sleeping the policy delay (or a
// capped server retry-after hint) between attempts. A fatal failure or
// exhausted retries returns a *CallError carrying the failure class, the
// event identifier, and the attempt count; the operation's side effects are
// the caller's problem only on success.
//
// Cancelling ctx during a backoff sleep aborts with the context's error.
func Execute[T any](ctx context.Context, policy Policy, eventID string, op Operation[T]) (T, error) {
	logger := slog.Default().With("component", "retry.executor")

	var zero T
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		out, err := op(ctx)
		if err == nil {
			if attempt > 0 {
				logger.Info("call recovered",
					"event_id", eventID, "attempts", attempt+1)
			}
			return out, nil
		}

		kind := Classify(err)
		lastErr = err

		if !Retryable(kind) {
			logger.Error("fatal call failure",
				"event_id", eventID,
				"kind", string(kind),
				"attempt", attempt,
				"error", err,
			)
			return zero, &CallError{
				Kind:     kind,
				Message:  err.Error(),
				EventID:  eventID,
				Attempts: attempt + 1,
				Cause:    err,
			}
		}

		if attempt >= policy.MaxRetries {
			break
		}

		delay := policy.Delay(attempt, retryAfterHint(err))
		logger.Warn("retryable call failure",
			"event_id", eventID,
			"kind", string(kind),
			"attempt", attempt,
			"delay", delay.String(),
			"error", err,
		)

		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	kind := Classify(lastErr)
	logger.Error("call failed after all retries",
		"event_id", eventID,
		"kind", string(kind),
		"attempts", policy.MaxRetries+1,
		"error", lastErr,
	)
	return zero, &CallError{
		Kind:     kind,
		Message:  lastErr.Error(),
		EventID:  eventID,
		Attempts: policy.MaxRetries + 1,
		Cause:    lastErr,
	}
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
