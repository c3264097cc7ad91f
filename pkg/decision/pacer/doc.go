// Package pacer implements the Daily Pacer: linear spreading of a fixed
// daily call quota across the local day.
//
// # Overview
//
// At elapsed time t since local midnight, the engine has "earned"
// (t / 86400) * maxCallsPerDay calls. Admissions below the floored earned
// count pass freely. Past the pace, only the two upper priority tiers may
// proceed, each drawing from a per-day burst pool; the lowest tier waits
// until the next call index is earned.
//
// Linear pacing prevents exhausting the whole quota in the first hour, while
// burst pools let urgent events through immediately even when the pace has
// been consumed.
package pacer
