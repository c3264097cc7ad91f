// Package decision composes the admission gates into a single verdict for
// each incoming feed event.
//
// # Overview
//
// The Pipeline evaluates gates in a fixed order:
//
//  1. Idempotency: events already in the dedup set are denied outright.
//  2. Classification: priority (P0/P1/P2) and reply mode from mentions,
//     questions, and keyword policy.
//  3. Hard budget: daily spend and call ceilings (package governor).
//  4. Soft budget: P2-only spend threshold (package governor).
//  5. Daily Pacer: linear pacing with per-tier bursts (package pacer).
//  6. Hourly P2 cap: ceiling on ordinary P2 replies per local hour.
//
// Denials are ordinary Decision values; errors are reserved for
// durable-write failures.
//
// # Commit Discipline
//
// An allowed verdict does not mutate the spend or call counters. The caller
// runs generation through the retry executor and, only on success, calls
// CommitSuccess, which marks the event replied and persists counters in one
// save. A crash at any earlier point leaves the event eligible for
// reprocessing, preserving at-most-once semantics.
package decision
