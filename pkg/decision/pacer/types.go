package pacer

// Tier is the priority tier requesting admission.
type Tier string

// Priority tiers in descending order of urgency.
const (
	TierP0 Tier = "P0"
	TierP1 Tier = "P1"
	TierP2 Tier = "P2"
)

// BurstType identifies which burst pool a decision consumed.
type BurstType string

const (
	BurstNone BurstType = "none"
	BurstP0   BurstType = "p0"
	BurstP1   BurstType = "p1"
)

// Config contains the pacing parameters.
type Config struct {
	// Enabled turns pacing on. When false Check always allows.
	Enabled bool

	// MaxCallsPerDay is the daily quota spread across the day.
	MaxCallsPerDay int

	// BurstP0 and BurstP1 are the per-day pools of extra calls the two
	// upper tiers may consume beyond the earned pace. TierP2 has no pool.
	BurstP0 int
	BurstP1 int
}

// Decision is the pacer's admission verdict. It is transient and never
// persisted.
type Decision struct {
	// Allowed reports whether the call may proceed now.
	Allowed bool

	// Reason explains the verdict.
	Reason string

	// WaitSeconds is, on a paced-wait denial, the time until the next
	// call index becomes earned.
	WaitSeconds float64

	// UsedBurst reports whether this admission consumed a burst slot.
	// The caller must pass an allowed decision to CommitBurst so the
	// consumption is recorded.
	UsedBurst bool

	// BurstType names the pool consumed when UsedBurst is set.
	BurstType BurstType
}

// Pacer decision reasons.
const (
	// ReasonDisabled: pacing is turned off in configuration.
	ReasonDisabled = "disabled"

	// ReasonDailyCallsCap: the daily quota is fully consumed.
	ReasonDailyCallsCap = "daily_calls_cap"

	// ReasonWithinPace: the call count is below the earned pace; no burst
	// consumed.
	ReasonWithinPace = "within_pace"

	// ReasonBurstP0 and ReasonBurstP1: pace exhausted, admitted from the
	// tier's burst pool.
	ReasonBurstP0 = "burst_p0"
	ReasonBurstP1 = "burst_p1"

	// ReasonPacedWait: pace exhausted and no burst available; the caller
	// should wait WaitSeconds.
	ReasonPacedWait = "paced_wait"
)
