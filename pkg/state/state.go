package state

// State is the single durable record of the deployment: the daily and hourly
// counters the admission gates consult, plus the idempotency set of event IDs
// already answered.
//
// Counters reset on calendar boundaries in the local offset. RepliedEventIDs
// never shrinks in normal operation; it survives rollovers and restarts and is
// cleared only by explicit administrative action.
type State struct {
	// DayKey identifies the local calendar day the daily counters belong to.
	DayKey string

	// HourKey identifies the local hour the hourly counters belong to.
	HourKey string

	// SpentUSD is the money spent today. Monotonically non-decreasing
	// within a day; reset to 0 only when DayKey changes.
	SpentUSD float64

	// CallsToday counts successful external calls today.
	CallsToday int

	// LastCallTS is the unix timestamp (seconds) of the most recent
	// successful external call. Persists across day rollovers; used for
	// minimum inter-call spacing.
	LastCallTS float64

	// P2RepliesThisHour counts normal-mode P2 replies in the current hour.
	P2RepliesThisHour int

	// BurstUsedP0 and BurstUsedP1 count burst allowance consumed today.
	BurstUsedP0 int
	BurstUsedP1 int

	// RepliedEventIDs is the dedup set of event IDs ever answered.
	RepliedEventIDs map[string]struct{}
}

// New returns a fresh State stamped with the given day and hour keys.
func New(dayKey, hourKey string) *State {
	return &State{
		DayKey:          dayKey,
		HourKey:         hourKey,
		RepliedEventIDs: make(map[string]struct{}),
	}
}

// HasReplied reports whether eventID has already been answered.
func (s *State) HasReplied(eventID string) bool {
	_, ok := s.RepliedEventIDs[eventID]
	return ok
}

// MarkReplied records eventID as answered. Idempotent.
func (s *State) MarkReplied(eventID string) {
	if s.RepliedEventIDs == nil {
		s.RepliedEventIDs = make(map[string]struct{})
	}
	s.RepliedEventIDs[eventID] = struct{}{}
}
