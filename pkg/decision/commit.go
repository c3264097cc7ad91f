package decision

import (
	"moltworks/replygate/pkg/state"
)

// CommitSuccess records a successful external call: the event joins the
// dedup set, the spend and call counters advance, and the last-call
// timestamp is updated for spacing enforcement. The full record is persisted
// before returning.
//
// This is the at-most-once boundary: callers invoke it only after the
// generation call has succeeded. A crash before this point leaves the event
// unmarked and eligible for reprocessing; a crash after leaves it durably
// answered.
func CommitSuccess(store *state.Store, st *state.State, clock state.Clock, eventID string, costUSD float64) error {
	st.MarkReplied(eventID)
	st.CallsToday++
	st.SpentUSD += costUSD
	st.LastCallTS = float64(clock.Now().Unix())
	return store.Save(st)
}

// CommitP2Reply advances the hourly P2 counter once an ordinary P2 reply has
// actually been dispatched, and persists the record.
func CommitP2Reply(store *state.Store, st *state.State) error {
	st.P2RepliesThisHour++
	return store.Save(st)
}
