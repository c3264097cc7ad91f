package audit

import "time"

// Record is a single decision appended to the audit trail. One record is
// written per governed event, whether the decision allowed a reply or not.
type Record struct {
	// ID is a generated UUID identifying this record.
	ID string

	// RunID identifies the daemon run that produced the decision. All
	// records from one process lifetime share a RunID.
	RunID string

	// EventID is the feed event the decision was made for.
	EventID string

	// RecordedAt is when the decision was persisted.
	RecordedAt time.Time

	// DayKey is the local calendar day the decision was charged to.
	DayKey string

	// Reply reports whether the pipeline allowed a reply.
	Reply bool

	// Priority is the classified priority tier (P0, P1, P2), empty when
	// the event was denied before classification completed.
	Priority string

	// Reason is the machine-readable decision reason.
	Reason string

	// Mode is the reply mode (normal or refuse) for allowed decisions.
	Mode string

	// WaitSeconds is the pacing wait attached to a paced_wait denial.
	WaitSeconds float64

	// SpentUSD and CallsToday snapshot the budget counters at decision
	// time, for after-the-fact spend reconstruction.
	SpentUSD   float64
	CallsToday int

	// CostUSD is the estimated cost of the generation, zero for denials.
	CostUSD float64

	// DryRun marks decisions taken without side effects.
	DryRun bool
}
