package pacer

import (
	"math"

	"moltworks/replygate/pkg/state"
)

// daySeconds is the length of the pacing window.
const daySeconds = 24 * 60 * 60

// EarnedCalls returns the fractional number of calls owed so far today under
// linear pacing: (elapsed / 86400) * maxCallsPerDay.
func EarnedCalls(elapsed float64, maxCallsPerDay int) float64 {
	return (elapsed / daySeconds) * float64(maxCallsPerDay)
}

// WaitSeconds returns the time until call index callsToday+1 becomes earned,
// floored at zero.
func WaitSeconds(callsToday, maxCallsPerDay int, elapsed float64) float64 {
	if maxCallsPerDay <= 0 {
		return 0
	}
	needed := (float64(callsToday+1) / float64(maxCallsPerDay)) * daySeconds
	return math.Max(0, needed-elapsed)
}

// Check evaluates the Daily Pacer admission rule for the given tier at
// elapsed seconds since local midnight.
//
// The rule, in order: disabled pacing allows everything; a consumed daily
// quota denies everything; a call count below the earned pace allows without
// burst; otherwise the tier's burst pool admits P0 and P1 up to their
// per-day allowances; otherwise the decision is a paced wait carrying the
// seconds until the next call is earned.
//
// Check does not mutate state. An allowed decision with UsedBurst set must
// be passed to CommitBurst once the admission is actually used.
func Check(st *state.State, tier Tier, cfg Config, elapsed float64) Decision {
	if !cfg.Enabled {
		return Decision{Allowed: true, Reason: ReasonDisabled}
	}

	if st.CallsToday >= cfg.MaxCallsPerDay {
		return Decision{Allowed: false, Reason: ReasonDailyCallsCap}
	}

	earned := math.Floor(EarnedCalls(elapsed, cfg.MaxCallsPerDay))
	if float64(st.CallsToday) < earned {
		return Decision{Allowed: true, Reason: ReasonWithinPace}
	}

	switch tier {
	case TierP0:
		if st.BurstUsedP0 < cfg.BurstP0 {
			return Decision{
				Allowed:   true,
				Reason:    ReasonBurstP0,
				UsedBurst: true,
				BurstType: BurstP0,
			}
		}
	case TierP1:
		if st.BurstUsedP1 < cfg.BurstP1 {
			return Decision{
				Allowed:   true,
				Reason:    ReasonBurstP1,
				UsedBurst: true,
				BurstType: BurstP1,
			}
		}
	}

	return Decision{
		Allowed:     false,
		Reason:      ReasonPacedWait,
		WaitSeconds: WaitSeconds(st.CallsToday, cfg.MaxCallsPerDay, elapsed),
	}
}

// CommitBurst records burst consumption on the state. Decisions that did not
// use a burst are a no-op.
func CommitBurst(st *state.State, d Decision) {
	if !d.UsedBurst {
		return
	}
	switch d.BurstType {
	case BurstP0:
		st.BurstUsedP0++
	case BurstP1:
		st.BurstUsedP1++
	}
}

// RollbackBurst undoes a CommitBurst whose persistence failed, so the
// in-memory counters never run ahead of the durable state.
func RollbackBurst(st *state.State, d Decision) {
	if !d.UsedBurst {
		return
	}
	switch d.BurstType {
	case BurstP0:
		st.BurstUsedP0--
	case BurstP1:
		st.BurstUsedP1--
	}
}
