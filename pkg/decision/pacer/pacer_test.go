package pacer

import (
	"math"
	"testing"

	"moltworks/replygate/pkg/state"
)

func testConfig() Config {
	return Config{
		Enabled:        true,
		MaxCallsPerDay: 200,
		BurstP0:        8,
		BurstP1:        4,
	}
}

const noon = 43200.0

// ============================================================================
// Earned Pace Tests
// ============================================================================

func TestEarnedCalls(t *testing.T) {
	tests := []struct {
		name    string
		elapsed float64
		max     int
		want    float64
	}{
		{"midnight", 0, 200, 0},
		{"noon", noon, 200, 100},
		{"full day", 86400, 200, 200},
		{"quarter day small quota", 21600, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EarnedCalls(tt.elapsed, tt.max); got != tt.want {
				t.Errorf("Expected %.2f earned, got %.2f", tt.want, got)
			}
		})
	}
}

func TestWaitSeconds(t *testing.T) {
	// 100 calls made, quota 200: call 101 is earned at 101/200 of a day,
	// which is 43632s, so at noon the wait is 432s.
	got := WaitSeconds(100, 200, noon)
	if math.Abs(got-432) > 1e-9 {
		t.Errorf("Expected 432s wait, got %.2f", got)
	}
}

func TestWaitSeconds_FlooredAtZero(t *testing.T) {
	if got := WaitSeconds(10, 200, noon); got != 0 {
		t.Errorf("Expected zero wait when the call is already earned, got %.2f", got)
	}
}

// ============================================================================
// Admission Tests
// ============================================================================

func TestCheck_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	st := state.New("2026-03-07", "2026-03-07-12")
	st.CallsToday = 199

	d := Check(st, TierP2, cfg, noon)
	if !d.Allowed || d.Reason != ReasonDisabled {
		t.Errorf("Expected allowed/disabled, got %+v", d)
	}
}

func TestCheck_DailyCap(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.CallsToday = 200

	d := Check(st, TierP0, testConfig(), noon)
	if d.Allowed || d.Reason != ReasonDailyCallsCap {
		t.Errorf("Expected denied/daily_calls_cap even for P0, got %+v", d)
	}
}

func TestCheck_WithinPace(t *testing.T) {
	// At noon 100 calls are earned; 50 made.
	st := state.New("2026-03-07", "2026-03-07-12")
	st.CallsToday = 50

	d := Check(st, TierP2, testConfig(), noon)
	if !d.Allowed || d.Reason != ReasonWithinPace {
		t.Errorf("Expected allowed/within_pace, got %+v", d)
	}
	if d.UsedBurst {
		t.Error("Expected no burst consumption within pace")
	}
}

func TestCheck_BurstP0(t *testing.T) {
	// Pace exhausted: 100 calls made at noon.
	st := state.New("2026-03-07", "2026-03-07-12")
	st.CallsToday = 100

	d := Check(st, TierP0, testConfig(), noon)
	if !d.Allowed || d.Reason != ReasonBurstP0 {
		t.Errorf("Expected allowed/burst_p0, got %+v", d)
	}
	if !d.UsedBurst || d.BurstType != BurstP0 {
		t.Errorf("Expected burst consumption marked, got %+v", d)
	}
}

func TestCheck_BurstP1Exhausted(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.CallsToday = 100
	st.BurstUsedP1 = 4

	d := Check(st, TierP1, testConfig(), noon)
	if d.Allowed || d.Reason != ReasonPacedWait {
		t.Errorf("Expected paced_wait once the P1 pool is drained, got %+v", d)
	}
}

func TestCheck_P2NeverBursts(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.CallsToday = 100

	d := Check(st, TierP2, testConfig(), noon)
	if d.Allowed {
		t.Fatalf("Expected P2 denied past pace, got %+v", d)
	}
	if d.Reason != ReasonPacedWait {
		t.Errorf("Expected paced_wait, got %q", d.Reason)
	}
	if math.Abs(d.WaitSeconds-432) > 1e-9 {
		t.Errorf("Expected 432s wait, got %.2f", d.WaitSeconds)
	}
}

func TestCheck_ExactlyAtPaceRequiresBurst(t *testing.T) {
	// CallsToday equal to floor(earned) means the next call is not yet
	// earned; only a burst pool admits it.
	st := state.New("2026-03-07", "2026-03-07-12")
	st.CallsToday = 100

	if d := Check(st, TierP1, testConfig(), noon); !d.UsedBurst {
		t.Errorf("Expected P1 to need its burst pool exactly at pace, got %+v", d)
	}
}

// ============================================================================
// Burst Commit Tests
// ============================================================================

func TestCommitBurst(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")

	CommitBurst(st, Decision{Allowed: true, UsedBurst: true, BurstType: BurstP0})
	CommitBurst(st, Decision{Allowed: true, UsedBurst: true, BurstType: BurstP1})
	CommitBurst(st, Decision{Allowed: true, Reason: ReasonWithinPace})

	if st.BurstUsedP0 != 1 || st.BurstUsedP1 != 1 {
		t.Errorf("Expected one burst charged per pool, got p0=%d p1=%d",
			st.BurstUsedP0, st.BurstUsedP1)
	}
}

func TestRollbackBurst(t *testing.T) {
	st := state.New("2026-03-07", "2026-03-07-12")
	st.BurstUsedP0 = 2
	st.BurstUsedP1 = 1

	RollbackBurst(st, Decision{Allowed: true, UsedBurst: true, BurstType: BurstP0})
	RollbackBurst(st, Decision{Allowed: true, Reason: ReasonWithinPace})

	if st.BurstUsedP0 != 1 || st.BurstUsedP1 != 1 {
		t.Errorf("Expected only the used pool decremented, got p0=%d p1=%d",
			st.BurstUsedP0, st.BurstUsedP1)
	}
}
