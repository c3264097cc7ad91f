package daemon

import (
	"testing"
	"time"
)

// ============================================================================
// Stats Tests
// ============================================================================

func TestStats_SnapshotAndReset(t *testing.T) {
	start := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	s := NewStats(start)

	s.recordEvent()
	s.recordEvent()
	s.recordReply(0.002)
	s.recordDenial("not_relevant")
	s.recordDenial("duplicate_event")
	s.recordCallError()
	s.recordSinkError()

	snap := s.Snapshot(start.Add(time.Hour))
	if snap.EventsSeen != 2 || snap.RepliesSent != 1 || snap.Denials != 2 {
		t.Errorf("Unexpected counters: %+v", snap)
	}
	if snap.Duplicates != 1 {
		t.Errorf("Expected the duplicate denial counted separately, got %d", snap.Duplicates)
	}
	if snap.CallErrors != 1 || snap.SinkErrors != 1 {
		t.Errorf("Expected error counters, got %+v", snap)
	}
	if snap.SpentUSD != 0.002 {
		t.Errorf("Expected spend 0.002, got %.4f", snap.SpentUSD)
	}
	if snap.Uptime != time.Hour {
		t.Errorf("Expected 1h uptime, got %s", snap.Uptime)
	}

	s.LogSummary(start.Add(2 * time.Hour))
	if after := s.Snapshot(start.Add(2 * time.Hour)); after.EventsSeen != 0 || after.SpentUSD != 0 {
		t.Errorf("Expected counters reset by the summary, got %+v", after)
	}
}

func TestStats_SoftCapWarningLatches(t *testing.T) {
	s := NewStats(time.Now())

	s.WarnSoftCap(0.50, 1.00, 0.80) // below threshold, no latch
	s.mu.Lock()
	latched := s.warnedSoftCap
	s.mu.Unlock()
	if latched {
		t.Fatal("Expected no warning below the threshold")
	}

	s.WarnSoftCap(0.85, 1.00, 0.80)
	s.WarnSoftCap(0.90, 1.00, 0.80) // second crossing stays silent

	s.mu.Lock()
	latched = s.warnedSoftCap
	s.mu.Unlock()
	if !latched {
		t.Fatal("Expected the warning latched after crossing")
	}

	// The summary resets the latch for the next day.
	s.LogSummary(time.Now())
	s.mu.Lock()
	latched = s.warnedSoftCap
	s.mu.Unlock()
	if latched {
		t.Error("Expected the latch cleared by the summary")
	}
}
