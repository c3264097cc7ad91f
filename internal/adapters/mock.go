// Package adapters provides in-process feed adapters used by dry runs and
// tests. The mock adapter replays a fixed queue of events and answers with
// canned text, so the governance path can be exercised end to end without
// a feed connection or a model provider.
package adapters

import (
	"context"
	"fmt"
	"sync"

	"moltworks/replygate/pkg/daemon"
	"moltworks/replygate/pkg/decision"
)

// MockSource replays queued events, one batch per poll.
type MockSource struct {
	mu      sync.Mutex
	batches [][]decision.Event

	// Err is returned from Poll when non-nil.
	Err error
}

// NewMockSource returns a source that yields the given batches in order
// and then idles.
func NewMockSource(batches ...[]decision.Event) *MockSource {
	return &MockSource{batches: batches}
}

// Push enqueues another batch.
func (m *MockSource) Push(events ...decision.Event) {
	m.mu.Lock()
	m.batches = append(m.batches, events)
	m.mu.Unlock()
}

// Poll returns the next queued batch, or nil when the queue is drained.
func (m *MockSource) Poll(ctx context.Context) ([]decision.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.batches) == 0 {
		return nil, nil
	}
	batch := m.batches[0]
	m.batches = m.batches[1:]
	return batch, nil
}

// MockGenerator answers every event with canned text. Err, when set, is
// returned instead, which lets tests drive the retry path.
type MockGenerator struct {
	mu    sync.Mutex
	calls int

	// Err is returned from Generate when non-nil.
	Err error

	// InputTokens and OutputTokens are reported on every result.
	InputTokens  int
	OutputTokens int
}

// Generate returns a canned reply for the event.
func (m *MockGenerator) Generate(ctx context.Context, ev decision.Event, mode decision.Mode) (daemon.GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return daemon.GenerationResult{}, err
	}
	m.mu.Lock()
	m.calls++
	err := m.Err
	m.mu.Unlock()
	if err != nil {
		return daemon.GenerationResult{}, err
	}

	var text string
	switch mode {
	case decision.ModeRefuse:
		text = "I can't help with that topic."
	case decision.ModeRedirect:
		text = fmt.Sprintf("That's outside what I cover, but happy to talk shop. (re: %s)", ev.ID)
	default:
		text = fmt.Sprintf("Thanks for the note, %s. (re: %s)", ev.Author, ev.ID)
	}
	return daemon.GenerationResult{
		Text:         text,
		InputTokens:  m.InputTokens,
		OutputTokens: m.OutputTokens,
	}, nil
}

// Calls reports how many times Generate ran.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// SentReply is one delivery captured by MockSink.
type SentReply struct {
	EventID string
	Text    string
}

// MockSink captures deliveries instead of posting them.
type MockSink struct {
	mu   sync.Mutex
	sent []SentReply

	// Err is returned from Send when non-nil.
	Err error
}

// Send records the reply.
func (m *MockSink) Send(ctx context.Context, ev decision.Event, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.sent = append(m.sent, SentReply{EventID: ev.ID, Text: text})
	return nil
}

// Sent returns the captured deliveries.
func (m *MockSink) Sent() []SentReply {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentReply, len(m.sent))
	copy(out, m.sent)
	return out
}
