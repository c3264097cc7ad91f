package governor

import "moltworks/replygate/pkg/state"

// CheckHard evaluates the absolute ceilings: daily spend and daily call
// count. A nil result means both ceilings still have headroom. Hard-cap
// denials apply to every priority and are evaluated strictly before the soft
// cap and the pacer.
//
// Overspend is irreversible, so the spend ceiling is checked first.
func CheckHard(st *state.State, cfg Config) *Denial {
	info := Info{
		SpentUSD:       st.SpentUSD,
		DailyBudgetUSD: cfg.DailyBudgetUSD,
		CallsToday:     st.CallsToday,
		MaxCallsPerDay: cfg.MaxCallsPerDay,
	}

	if st.SpentUSD >= cfg.DailyBudgetUSD {
		return &Denial{Reason: ReasonBudgetExhausted, Budget: info}
	}
	if st.CallsToday >= cfg.MaxCallsPerDay {
		return &Denial{Reason: ReasonDailyCallsCap, Budget: info}
	}
	return nil
}

// CheckSoft evaluates the soft spend threshold that reserves the tail of the
// daily budget for higher-priority work. The caller applies it only to the
// lowest priority tier; P0 and P1 bypass it entirely.
func CheckSoft(st *state.State, cfg Config) *Denial {
	threshold := cfg.DailyBudgetUSD * cfg.SoftCapRatio
	if st.SpentUSD < threshold {
		return nil
	}
	return &Denial{
		Reason: ReasonSoftCapP2Blocked,
		Budget: Info{
			SpentUSD:         st.SpentUSD,
			DailyBudgetUSD:   cfg.DailyBudgetUSD,
			CallsToday:       st.CallsToday,
			MaxCallsPerDay:   cfg.MaxCallsPerDay,
			SoftCapThreshold: threshold,
			SoftCapRatio:     cfg.SoftCapRatio,
		},
	}
}
