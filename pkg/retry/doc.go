// Package retry wraps the single external generation call with classified
// retries and exponential backoff.
//
// # Overview
//
// Failures are classified into a closed set: connection, timeout, and
// rate-limit errors are retryable; everything else is fatal. Retryable
// failures back off with min(base * 2^attempt, max) plus ±10% jitter, or a
// server retry-after hint capped at the maximum delay. Fatal failures and
// retry exhaustion surface as a structured *CallError.
//
// # At-Most-Once Contract
//
// The executor never mutates durable state. Callers commit counters and the
// dedup marker only after Execute returns success; on any error the event
// stays unmarked and is reconsidered on a later cycle.
//
// # Usage
//
//	res, err := retry.Execute(ctx, retry.Policy{
//	    MaxRetries: 3,
//	    BaseDelay:  time.Second,
//	    MaxDelay:   30 * time.Second,
//	}, event.ID, func(ctx context.Context) (*GenerationResult, error) {
//	    return gen.Generate(ctx, event, mode)
//	})
package retry
