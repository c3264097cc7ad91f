package state

import "time"

// Clock supplies the local time used for day/hour keys and pacing math.
// The engine never reads the wall clock directly; injecting a Clock keeps
// rollover and pacing behavior testable at fixed instants.
type Clock interface {
	Now() time.Time
}

// FixedOffsetClock reports wall-clock time in a fixed UTC offset.
//
// The deployment runs against a fixed local offset rather than a named
// zone database location, so day boundaries do not move with DST. The
// offset is configurable (config `timezone_offset_hours`).
type FixedOffsetClock struct {
	loc *time.Location
}

// NewFixedOffsetClock creates a clock at the given UTC offset in hours.
func NewFixedOffsetClock(offsetHours int) *FixedOffsetClock {
	return &FixedOffsetClock{
		loc: time.FixedZone("local", offsetHours*3600),
	}
}

// Now returns the current time in the configured offset.
func (c *FixedOffsetClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// DayKey formats t as a calendar day identifier (YYYY-MM-DD).
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// HourKey formats t as an hour identifier (YYYY-MM-DD-HH).
func HourKey(t time.Time) string {
	return t.Format("2006-01-02-15")
}

// SecondsSinceMidnight returns the elapsed seconds since local midnight of t.
func SecondsSinceMidnight(t time.Time) float64 {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return t.Sub(midnight).Seconds()
}
