// Package audit persists every governance decision to a SQLite trail.
//
// The trail is append-only from the daemon's point of view: one Record per
// governed event, allowed or denied, including dry runs. It exists for
// after-the-fact reconstruction of spend and pacing behavior and is never
// consulted by the decision pipeline itself; the durable counters the
// pipeline depends on live in the flat-file state store.
package audit
