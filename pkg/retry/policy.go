package retry

import (
	"math/rand"
	"time"
)

// DefaultJitter is the fractional jitter applied to computed delays.
const DefaultJitter = 0.1

// Policy is the retry strategy consumed by Execute. Modeling it as a value
// keeps classification and backoff testable in isolation from the call it
// wraps.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// BaseDelay is the first backoff delay.
	BaseDelay time.Duration

	// MaxDelay caps every delay, including server retry-after hints.
	MaxDelay time.Duration

	// Jitter is the fractional random spread applied to computed delays
	// (0.1 = ±10%). Zero uses DefaultJitter; negative disables jitter.
	Jitter float64

	// rng overrides the jitter source in tests.
	rng func() float64
}

// Delay returns the wait before retrying after the given 0-indexed attempt:
// min(BaseDelay * 2^attempt, MaxDelay) with the configured jitter. A
// positive server hint takes precedence, capped at MaxDelay and not
// jittered.
func (p Policy) Delay(attempt int, hint time.Duration) time.Duration {
	if hint > 0 {
		return min(hint, p.MaxDelay)
	}

	delay := p.BaseDelay << uint(attempt)
	if delay > p.MaxDelay || delay <= 0 {
		// The shift overflows for large attempt counts.
		delay = p.MaxDelay
	}

	jitter := p.Jitter
	if jitter == 0 {
		jitter = DefaultJitter
	}
	if jitter > 0 {
		randf := p.rng
		if randf == nil {
			randf = rand.Float64
		}
		spread := float64(delay) * jitter
		delay += time.Duration((randf()*2 - 1) * spread)
	}

	if delay < 0 {
		return 0
	}
	return delay
}
