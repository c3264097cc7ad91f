package daemon

import (
	"log/slog"
	"sync"
	"time"
)

// Stats accumulates run counters for log summaries. Counters reset on the
// daily summary, not on poll cycles.
type Stats struct {
	mu sync.Mutex

	startedAt     time.Time
	eventsSeen    int
	repliesSent   int
	denials       int
	duplicates    int
	callErrors    int
	sinkErrors    int
	spentUSD      float64
	warnedSoftCap bool

	logger *slog.Logger
}

// NewStats returns a Stats anchored at now.
func NewStats(now time.Time) *Stats {
	return &Stats{
		startedAt: now,
		logger:    slog.Default().With("component", "daemon.stats"),
	}
}

func (s *Stats) recordEvent() {
	s.mu.Lock()
	s.eventsSeen++
	s.mu.Unlock()
}

func (s *Stats) recordReply(costUSD float64) {
	s.mu.Lock()
	s.repliesSent++
	s.spentUSD += costUSD
	s.mu.Unlock()
}

func (s *Stats) recordDenial(reason string) {
	s.mu.Lock()
	s.denials++
	if reason == "duplicate_event" {
		s.duplicates++
	}
	s.mu.Unlock()
}

func (s *Stats) recordCallError() {
	s.mu.Lock()
	s.callErrors++
	s.mu.Unlock()
}

func (s *Stats) recordSinkError() {
	s.mu.Lock()
	s.sinkErrors++
	s.mu.Unlock()
}

// WarnSoftCap logs a budget warning the first time spend crosses the soft
// cap threshold. The latch resets with the daily summary.
func (s *Stats) WarnSoftCap(spentUSD, dailyBudgetUSD, ratio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warnedSoftCap || spentUSD < dailyBudgetUSD*ratio {
		return
	}
	s.warnedSoftCap = true
	s.logger.Warn("daily budget soft cap reached",
		"spent_usd", spentUSD,
		"daily_budget_usd", dailyBudgetUSD,
		"soft_cap_ratio", ratio,
	)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Uptime      time.Duration
	EventsSeen  int
	RepliesSent int
	Denials     int
	Duplicates  int
	CallErrors  int
	SinkErrors  int
	SpentUSD    float64
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot(now time.Time) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Uptime:      now.Sub(s.startedAt),
		EventsSeen:  s.eventsSeen,
		RepliesSent: s.repliesSent,
		Denials:     s.denials,
		Duplicates:  s.duplicates,
		CallErrors:  s.callErrors,
		SinkErrors:  s.sinkErrors,
		SpentUSD:    s.spentUSD,
	}
}

// LogSummary emits the daily summary and resets the counters and the
// soft-cap warning latch.
func (s *Stats) LogSummary(now time.Time) {
	s.mu.Lock()
	snap := Snapshot{
		Uptime:      now.Sub(s.startedAt),
		EventsSeen:  s.eventsSeen,
		RepliesSent: s.repliesSent,
		Denials:     s.denials,
		Duplicates:  s.duplicates,
		CallErrors:  s.callErrors,
		SinkErrors:  s.sinkErrors,
		SpentUSD:    s.spentUSD,
	}
	s.eventsSeen = 0
	s.repliesSent = 0
	s.denials = 0
	s.duplicates = 0
	s.callErrors = 0
	s.sinkErrors = 0
	s.spentUSD = 0
	s.warnedSoftCap = false
	s.mu.Unlock()

	s.logger.Info("daily summary",
		"uptime", snap.Uptime.Round(time.Second).String(),
		"events_seen", snap.EventsSeen,
		"replies_sent", snap.RepliesSent,
		"denials", snap.Denials,
		"duplicates", snap.Duplicates,
		"call_errors", snap.CallErrors,
		"sink_errors", snap.SinkErrors,
		"spent_usd", snap.SpentUSD,
	)
}
