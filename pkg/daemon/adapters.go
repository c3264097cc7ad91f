package daemon

import (
	"context"

	"moltworks/replygate/pkg/decision"
)

// EventSource supplies feed events to govern. Poll returns the batch of
// events that arrived since the previous call, oldest first. An empty
// batch is a normal idle cycle, not an error.
type EventSource interface {
	Poll(ctx context.Context) ([]decision.Event, error)
}

// GenerationResult is the output of one model call.
type GenerationResult struct {
	// Text is the generated reply body.
	Text string

	// InputTokens and OutputTokens are the provider-reported token
	// counts. When zero, cost is estimated from character lengths.
	InputTokens  int
	OutputTokens int
}

// Generator produces a reply for an allowed event. Implementations should
// return the typed errors from pkg/retry (ConnectionError, TimeoutError,
// RateLimitError) for transient failures so the executor can retry them.
type Generator interface {
	Generate(ctx context.Context, ev decision.Event, mode decision.Mode) (GenerationResult, error)
}

// ReplySink delivers a generated reply to the feed. Delivery failures are
// logged as drift and do not roll back committed state.
type ReplySink interface {
	Send(ctx context.Context, ev decision.Event, text string) error
}
