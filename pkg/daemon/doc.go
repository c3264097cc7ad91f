// Package daemon runs the poll loop that governs an automated reply agent.
//
// Each cycle pulls a batch of feed events from an EventSource, routes every
// event through the decision pipeline, and for allowed events calls the
// Generator under the retry policy before delivering through the ReplySink.
// Spend and call counters are committed to durable state only after a
// generation succeeds, so a crash between the call and the commit can
// under-count but never double-charge.
//
// The daemon also owns the run-level concerns around the loop: minimum
// inter-call spacing, the daily log summary, the soft-cap budget warning,
// and the optional Prometheus metrics listener.
package daemon
