package state

import (
	"testing"
	"time"
)

// ============================================================================
// Clock and Key Tests
// ============================================================================

func TestFixedOffsetClock_Offset(t *testing.T) {
	clock := NewFixedOffsetClock(1)
	now := clock.Now()

	_, offset := now.Zone()
	if offset != 3600 {
		t.Errorf("Expected +1h zone offset, got %d seconds", offset)
	}
}

func TestDayKey_Format(t *testing.T) {
	ts := time.Date(2026, 3, 7, 23, 59, 59, 0, time.UTC)
	if got := DayKey(ts); got != "2026-03-07" {
		t.Errorf("Expected day key 2026-03-07, got %q", got)
	}
}

func TestHourKey_Format(t *testing.T) {
	ts := time.Date(2026, 3, 7, 5, 0, 0, 0, time.UTC)
	if got := HourKey(ts); got != "2026-03-07-05" {
		t.Errorf("Expected hour key 2026-03-07-05, got %q", got)
	}
}

func TestDayKey_OffsetCrossesMidnight(t *testing.T) {
	// 23:30 UTC is 00:30 the next day at +1h.
	utc := time.Date(2026, 3, 7, 23, 30, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("local", 3600))

	if got := DayKey(local); got != "2026-03-08" {
		t.Errorf("Expected day key 2026-03-08 in +1h zone, got %q", got)
	}
}

func TestSecondsSinceMidnight(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want float64
	}{
		{"midnight", time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), 0},
		{"noon", time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC), 43200},
		{"one second in", time.Date(2026, 3, 7, 0, 0, 1, 0, time.UTC), 1},
		{"end of day", time.Date(2026, 3, 7, 23, 59, 59, 0, time.UTC), 86399},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SecondsSinceMidnight(tt.ts); got != tt.want {
				t.Errorf("Expected %.0f seconds, got %.0f", tt.want, got)
			}
		})
	}
}
