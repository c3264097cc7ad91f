package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Store persists State as a flat JSON file with crash-safe write discipline:
// the full record is written to a sibling temp file, fsynced, then atomically
// renamed over the target. A reader observes either the previous committed
// record or the new one, never a partial mix.
//
// Exactly one process is assumed to write the file. Concurrent writers are
// not coordinated here and must be prevented operationally.
type Store struct {
	path   string
	clock  Clock
	logger *slog.Logger
}

// NewStore creates a store backed by the JSON file at path.
func NewStore(path string, clock Clock) *Store {
	return &Store{
		path:   path,
		clock:  clock,
		logger: slog.Default().With("component", "state.store"),
	}
}

// stateRecord is the on-disk shape of State. The dedup set is serialized as
// a sorted list so the file diffs cleanly between commits.
type stateRecord struct {
	DayKey            string   `json:"day_key"`
	HourKey           string   `json:"hour_key"`
	SpentUSD          float64  `json:"spent_usd"`
	CallsToday        int      `json:"calls_today"`
	LastCallTS        float64  `json:"last_call_ts"`
	P2RepliesThisHour int      `json:"p2_replies_this_hour"`
	BurstUsedP0       int      `json:"burst_used_p0"`
	BurstUsedP1       int      `json:"burst_used_p1"`
	RepliedEventIDs   []string `json:"replied_event_ids"`
}

// Load reads the persisted state, applying rollover against the current
// local day and hour.
//
// Load never fails: a missing file yields a fresh State, and a corrupt file
// is quarantined to a timestamped backup path and replaced with a fresh
// State. Any other read failure is logged and also yields a fresh State;
// the previously committed file is left untouched in that case.
func (s *Store) Load() *State {
	now := s.clock.Now()
	today, hour := DayKey(now), HourKey(now)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("state file unreadable, starting fresh",
				"path", s.path, "error", err)
		}
		return New(today, hour)
	}

	var rec stateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		s.quarantine(err)
		return New(today, hour)
	}

	st := &State{
		DayKey:            rec.DayKey,
		HourKey:           rec.HourKey,
		SpentUSD:          rec.SpentUSD,
		CallsToday:        rec.CallsToday,
		LastCallTS:        rec.LastCallTS,
		P2RepliesThisHour: rec.P2RepliesThisHour,
		BurstUsedP0:       rec.BurstUsedP0,
		BurstUsedP1:       rec.BurstUsedP1,
		RepliedEventIDs:   make(map[string]struct{}, len(rec.RepliedEventIDs)),
	}
	for _, id := range rec.RepliedEventIDs {
		st.RepliedEventIDs[id] = struct{}{}
	}

	Rollover(st, today, hour)
	return st
}

// Save writes the full state atomically. On any failure the temp file is
// removed and the error propagated; the previously committed file is the
// recovery point and is never touched.
func (s *Store) Save(st *State) error {
	ids := make([]string, 0, len(st.RepliedEventIDs))
	for id := range st.RepliedEventIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rec := stateRecord{
		DayKey:            st.DayKey,
		HourKey:           st.HourKey,
		SpentUSD:          st.SpentUSD,
		CallsToday:        st.CallsToday,
		LastCallTS:        st.LastCallTS,
		P2RepliesThisHour: st.P2RepliesThisHour,
		BurstUsedP0:       st.BurstUsedP0,
		BurstUsedP1:       st.BurstUsedP1,
		RepliedEventIDs:   ids,
	}

	data, err := json.MarshalIndent(&rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := s.writeDurable(tmp, data); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit state file %q: %w", s.path, err)
	}
	return nil
}

// EnsureCurrent re-applies rollover to an in-memory State and persists the
// result. Called at the start of every decision cycle so a process that slept
// through a day or hour boundary resets its counters before admitting work.
func (s *Store) EnsureCurrent(st *State) error {
	now := s.clock.Now()
	Rollover(st, DayKey(now), HourKey(now))
	return s.Save(st)
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Rollover resets counters when the record's day or hour keys are stale.
// The dedup set and LastCallTS survive both boundaries.
func Rollover(st *State, today, hour string) {
	if st.DayKey != today {
		st.DayKey = today
		st.SpentUSD = 0
		st.CallsToday = 0
		st.BurstUsedP0 = 0
		st.BurstUsedP1 = 0
	}
	if st.HourKey != hour {
		st.HourKey = hour
		st.P2RepliesThisHour = 0
	}
}

// writeDurable writes data to path and forces it to stable storage before
// returning. The rename that follows is only safe once the temp file content
// is durable.
func (s *Store) writeDurable(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp state file %q: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write temp state file %q: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to sync temp state file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file %q: %w", path, err)
	}
	return nil
}

// quarantine renames a corrupt state file to a timestamped backup next to it.
// Recovery is deliberately non-fatal: the engine restarts with fresh counters
// and the bad file is preserved for inspection.
func (s *Store) quarantine(cause error) {
	stamp := time.Now().UTC().Format("20060102_150405")
	backup := fmt.Sprintf("%s.corrupt.%s", s.path, stamp)
	if err := os.Rename(s.path, backup); err != nil {
		s.logger.Error("failed to quarantine corrupt state file",
			"path", s.path, "error", err)
		return
	}
	s.logger.Warn("corrupt state file quarantined",
		"path", s.path,
		"backup", filepath.Base(backup),
		"error", cause,
	)
}
