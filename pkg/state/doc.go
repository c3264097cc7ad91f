// Package state holds the durable record of the reply-governance engine:
// daily and hourly counters plus the idempotency set of answered event IDs.
//
// # Overview
//
// Exactly one State record exists per deployment. It is loaded at the start
// of every decision cycle, rolled over when a local day or hour boundary has
// passed, and persisted after every mutation. Counters are keyed to a fixed
// local UTC offset so day boundaries are stable.
//
// # Durability
//
// The record is a flat JSON file written with temp-file + fsync + atomic
// rename discipline. Interrupting the process mid-save leaves the file
// either absent, equal to the previous commit, or equal to the new content.
// A corrupt file is quarantined to a timestamped backup and replaced with a
// fresh record; corruption is never fatal.
//
// # Usage
//
//	store := state.NewStore("agent_state.json", state.NewFixedOffsetClock(1))
//	st := store.Load()
//	if err := store.EnsureCurrent(st); err != nil {
//	    // durable-write failure: prior committed state is untouched
//	}
//
// # Concurrency
//
// Single-writer discipline is assumed. The Store performs no file locking;
// running two writer processes against the same file is unsafe.
package state
