// Package governor enforces the daily budget ceilings.
//
// # Overview
//
// Two checks guard every admission:
//
//   - Hard cap: absolute spend and call-count ceilings. Once either is
//     reached, every priority is denied until the next local day.
//   - Soft cap: a configurable fraction of the daily budget (default 80%)
//     past which only the lowest priority tier is denied, reserving the
//     remaining budget for urgent and important events.
//
// Denials are plain values carrying the numeric budget context; they are
// never errors. The hard cap is evaluated strictly before the soft cap, and
// both before the Daily Pacer.
package governor
