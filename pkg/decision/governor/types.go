package governor

// Config contains the budget ceilings the governor enforces.
type Config struct {
	// DailyBudgetUSD is the hard daily spend ceiling.
	DailyBudgetUSD float64

	// MaxCallsPerDay is the hard daily call-count ceiling.
	MaxCallsPerDay int

	// SoftCapRatio is the fraction of DailyBudgetUSD at which the soft
	// cap engages for the lowest priority tier.
	SoftCapRatio float64
}

// Info is the numeric budget context attached to every denial for
// observability.
type Info struct {
	SpentUSD       float64 `json:"spent_usd"`
	DailyBudgetUSD float64 `json:"daily_budget_usd"`
	CallsToday     int     `json:"calls_today"`
	MaxCallsPerDay int     `json:"max_calls_per_day"`

	// SoftCapThreshold and SoftCapRatio are set only on soft-cap denials.
	SoftCapThreshold float64 `json:"soft_cap_threshold,omitempty"`
	SoftCapRatio     float64 `json:"soft_cap_ratio,omitempty"`
}

// Denial is a budget rejection. It is an ordinary value, not an error:
// business-rule denials never propagate as exceptions.
type Denial struct {
	// Reason identifies which ceiling rejected the request.
	Reason string

	// Budget carries the numeric context at the time of the denial.
	Budget Info
}

// Denial reasons.
const (
	// ReasonBudgetExhausted is returned when daily spend has reached the
	// hard budget ceiling. Blocks all priorities.
	ReasonBudgetExhausted = "budget_exhausted"

	// ReasonDailyCallsCap is returned when the daily call count has
	// reached its ceiling. Blocks all priorities.
	ReasonDailyCallsCap = "daily_calls_cap"

	// ReasonSoftCapP2Blocked is returned when spend has crossed the soft
	// cap threshold. Blocks only the lowest priority tier.
	ReasonSoftCapP2Blocked = "soft_cap_p2_blocked"
)
