package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// stubClock returns a fixed instant.
type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

func newTestStore(t *testing.T, now time.Time) (*Store, *stubClock) {
	t.Helper()
	clock := &stubClock{now: now}
	path := filepath.Join(t.TempDir(), "agent_state.json")
	return NewStore(path, clock), clock
}

var testNow = time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)

// ============================================================================
// Load Tests
// ============================================================================

func TestStore_LoadMissingFile(t *testing.T) {
	store, _ := newTestStore(t, testNow)

	st := store.Load()

	if st.DayKey != "2026-03-07" {
		t.Errorf("Expected fresh day key 2026-03-07, got %q", st.DayKey)
	}
	if st.HourKey != "2026-03-07-12" {
		t.Errorf("Expected fresh hour key 2026-03-07-12, got %q", st.HourKey)
	}
	if st.SpentUSD != 0 || st.CallsToday != 0 {
		t.Errorf("Expected zeroed counters, got spent=%.2f calls=%d", st.SpentUSD, st.CallsToday)
	}
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	store, _ := newTestStore(t, testNow)

	st := store.Load()
	st.SpentUSD = 0.42
	st.CallsToday = 7
	st.LastCallTS = 1772712000
	st.P2RepliesThisHour = 1
	st.BurstUsedP0 = 2
	st.BurstUsedP1 = 1
	st.MarkReplied("e1")
	st.MarkReplied("e2")

	if err := store.Save(st); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := store.Load()
	if got.SpentUSD != 0.42 {
		t.Errorf("Expected spent 0.42, got %.4f", got.SpentUSD)
	}
	if got.CallsToday != 7 {
		t.Errorf("Expected 7 calls, got %d", got.CallsToday)
	}
	if got.LastCallTS != 1772712000 {
		t.Errorf("Expected last call ts to survive, got %.0f", got.LastCallTS)
	}
	if got.P2RepliesThisHour != 1 || got.BurstUsedP0 != 2 || got.BurstUsedP1 != 1 {
		t.Errorf("Expected counters to survive, got p2=%d p0=%d p1=%d",
			got.P2RepliesThisHour, got.BurstUsedP0, got.BurstUsedP1)
	}
	if !got.HasReplied("e1") || !got.HasReplied("e2") {
		t.Error("Expected dedup set to survive the roundtrip")
	}
	if got.HasReplied("e3") {
		t.Error("Expected unknown event to be absent from dedup set")
	}
}

func TestStore_SaveLeavesNoTempFile(t *testing.T) {
	store, _ := newTestStore(t, testNow)

	if err := store.Save(store.Load()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(store.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temp file to be renamed away after commit")
	}
}

// ============================================================================
// Corruption Recovery Tests
// ============================================================================

func TestStore_LoadCorruptFileQuarantines(t *testing.T) {
	store, _ := newTestStore(t, testNow)

	if err := os.WriteFile(store.Path(), []byte(`{"day_key": "2026-03-0`), 0o644); err != nil {
		t.Fatalf("failed to seed corrupt file: %v", err)
	}

	st := store.Load()

	if st.SpentUSD != 0 || st.CallsToday != 0 {
		t.Error("Expected fresh state after corruption")
	}
	if st.DayKey != "2026-03-07" {
		t.Errorf("Expected fresh day key, got %q", st.DayKey)
	}

	// The corrupt file must be preserved under exactly one backup name.
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	backups := 0
	for _, e := range entries {
		if strings.Contains(e.Name(), ".corrupt.") {
			backups++
		}
	}
	if backups != 1 {
		t.Errorf("Expected exactly 1 quarantine file, found %d", backups)
	}

	// The original path must be gone until the next Save.
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("Expected corrupt file to be moved away from the state path")
	}
}

func TestStore_LoadAfterQuarantineSavesCleanly(t *testing.T) {
	store, _ := newTestStore(t, testNow)

	os.WriteFile(store.Path(), []byte("not json"), 0o644)
	st := store.Load()

	st.MarkReplied("e1")
	if err := store.Save(st); err != nil {
		t.Fatalf("Save after quarantine failed: %v", err)
	}
	if !store.Load().HasReplied("e1") {
		t.Error("Expected state written after quarantine to load")
	}
}

// ============================================================================
// Rollover Tests
// ============================================================================

func TestRollover_DayChange(t *testing.T) {
	st := New("2026-03-06", "2026-03-06-23")
	st.SpentUSD = 0.90
	st.CallsToday = 150
	st.BurstUsedP0 = 8
	st.BurstUsedP1 = 4
	st.P2RepliesThisHour = 2
	st.LastCallTS = 1772712000
	st.MarkReplied("e1")

	Rollover(st, "2026-03-07", "2026-03-07-00")

	if st.SpentUSD != 0 || st.CallsToday != 0 {
		t.Errorf("Expected daily counters reset, got spent=%.2f calls=%d", st.SpentUSD, st.CallsToday)
	}
	if st.BurstUsedP0 != 0 || st.BurstUsedP1 != 0 {
		t.Error("Expected burst counters reset on day change")
	}
	if st.P2RepliesThisHour != 0 {
		t.Error("Expected hourly counter reset when the hour key changed too")
	}
	if st.LastCallTS != 1772712000 {
		t.Error("Expected last call timestamp to survive rollover")
	}
	if !st.HasReplied("e1") {
		t.Error("Expected dedup set to survive day rollover")
	}
}

func TestRollover_HourChangeOnly(t *testing.T) {
	st := New("2026-03-07", "2026-03-07-11")
	st.SpentUSD = 0.30
	st.CallsToday = 40
	st.P2RepliesThisHour = 2

	Rollover(st, "2026-03-07", "2026-03-07-12")

	if st.P2RepliesThisHour != 0 {
		t.Error("Expected hourly counter reset on hour change")
	}
	if st.SpentUSD != 0.30 || st.CallsToday != 40 {
		t.Error("Expected daily counters untouched on hour change")
	}
}

func TestRollover_NoChange(t *testing.T) {
	st := New("2026-03-07", "2026-03-07-12")
	st.CallsToday = 5
	st.P2RepliesThisHour = 1

	Rollover(st, "2026-03-07", "2026-03-07-12")

	if st.CallsToday != 5 || st.P2RepliesThisHour != 1 {
		t.Error("Expected counters untouched when keys are current")
	}
}

func TestStore_EnsureCurrentPersistsRollover(t *testing.T) {
	store, clock := newTestStore(t, testNow)

	st := store.Load()
	st.SpentUSD = 0.50
	st.CallsToday = 10
	if err := store.Save(st); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Next day.
	clock.now = testNow.Add(24 * time.Hour)
	if err := store.EnsureCurrent(st); err != nil {
		t.Fatalf("EnsureCurrent failed: %v", err)
	}

	got := store.Load()
	if got.DayKey != "2026-03-08" {
		t.Errorf("Expected rolled day key, got %q", got.DayKey)
	}
	if got.SpentUSD != 0 || got.CallsToday != 0 {
		t.Error("Expected persisted state to carry the reset counters")
	}
}

// ============================================================================
// Dedup Set Tests
// ============================================================================

func TestState_MarkRepliedIdempotent(t *testing.T) {
	st := New("2026-03-07", "2026-03-07-12")

	st.MarkReplied("e1")
	st.MarkReplied("e1")

	if len(st.RepliedEventIDs) != 1 {
		t.Errorf("Expected a single dedup entry, got %d", len(st.RepliedEventIDs))
	}
}
