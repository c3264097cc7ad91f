package decision

import (
	"log/slog"

	"moltworks/replygate/pkg/config"
	"moltworks/replygate/pkg/decision/governor"
	"moltworks/replygate/pkg/decision/pacer"
	"moltworks/replygate/pkg/state"
)

// Pipeline composes the admission gates into a single verdict per event.
//
// Gates run in a fixed order: idempotency, classification, hard budget,
// soft budget, Daily Pacer, hourly P2 cap. The order is deliberate: the
// cheapest and most absolute check first; classification before any
// priority-dependent gate; money before pacing because overspend is
// irreversible; the fine-grained hourly cap last.
type Pipeline struct {
	store   *state.Store
	clock   state.Clock
	metrics *Metrics
	logger  *slog.Logger
}

// New creates a Pipeline. metrics may be nil when no Prometheus registry is
// wired (the validate and status commands, most tests).
func New(store *state.Store, clock state.Clock, metrics *Metrics) *Pipeline {
	return &Pipeline{
		store:   store,
		clock:   clock,
		metrics: metrics,
		logger:  slog.Default().With("component", "decision.pipeline"),
	}
}

// Decide evaluates one event against the current policy and state.
//
// State is first rolled over to the current day and hour. A decision that
// consumes a burst slot persists the consumption before returning, so a
// crash cannot replay the slot. In dry-run mode no state is written.
//
// The only error paths are durable-write failures; every business-rule
// outcome is an ordinary Decision value.
func (p *Pipeline) Decide(st *state.State, ev Event, cfg *config.Config, dryRun bool) (Decision, error) {
	if dryRun {
		// Roll over in memory only: dry runs never write.
		now := p.clock.Now()
		state.Rollover(st, state.DayKey(now), state.HourKey(now))
	} else {
		if err := p.store.EnsureCurrent(st); err != nil {
			return Decision{}, err
		}
	}

	d, err := p.decide(st, ev, cfg, dryRun)
	if err != nil {
		return Decision{}, err
	}

	if p.metrics != nil {
		p.metrics.RecordDecision(d)
		p.metrics.UpdateState(st, cfg.Budget.DailyBudgetUSD)
	}
	p.logger.Debug("decision",
		"event_id", ev.ID,
		"reply", d.Reply,
		"priority", d.Priority,
		"reason", d.Reason,
	)
	return d, nil
}

func (p *Pipeline) decide(st *state.State, ev Event, cfg *config.Config, dryRun bool) (Decision, error) {
	// Idempotency precedes everything, including budget.
	if ev.ID != "" && st.HasReplied(ev.ID) {
		return Decision{
			Reply:           false,
			Priority:        P2,
			Reason:          ReasonDuplicateEvent,
			OriginalEventID: ev.ID,
		}, nil
	}

	base := classify(ev, cfg)
	if !base.Reply {
		return base, nil
	}

	govCfg := governor.Config{
		DailyBudgetUSD: cfg.Budget.DailyBudgetUSD,
		MaxCallsPerDay: cfg.Budget.MaxCallsPerDay,
		SoftCapRatio:   cfg.Budget.SoftCapRatio,
	}

	if denial := governor.CheckHard(st, govCfg); denial != nil {
		return Decision{
			Reply:    false,
			Priority: base.Priority,
			Reason:   denial.Reason,
			Budget:   &denial.Budget,
		}, nil
	}

	// Soft cap only gates the lowest tier.
	if base.Priority == P2 {
		if denial := governor.CheckSoft(st, govCfg); denial != nil {
			return Decision{
				Reply:    false,
				Priority: base.Priority,
				Reason:   denial.Reason,
				Budget:   &denial.Budget,
			}, nil
		}
	}

	paceCfg := pacer.Config{
		Enabled:        cfg.Scheduler.IsEnabled(),
		MaxCallsPerDay: cfg.Budget.MaxCallsPerDay,
		BurstP0:        cfg.Scheduler.BurstP0,
		BurstP1:        cfg.Scheduler.BurstP1,
	}
	elapsed := state.SecondsSinceMidnight(p.clock.Now())
	sched := pacer.Check(st, tier(base.Priority), paceCfg, elapsed)

	if !sched.Allowed {
		return Decision{
			Reply:    false,
			Priority: base.Priority,
			Reason:   sched.Reason,
			Scheduler: &SchedulerInfo{
				Reason:      sched.Reason,
				WaitSeconds: sched.WaitSeconds,
				CallsToday:  st.CallsToday,
				BurstUsedP0: st.BurstUsedP0,
				BurstUsedP1: st.BurstUsedP1,
			},
		}, nil
	}

	if sched.UsedBurst && !dryRun {
		pacer.CommitBurst(st, sched)
		if err := p.store.Save(st); err != nil {
			pacer.RollbackBurst(st, sched)
			return Decision{}, err
		}
	}

	// Hourly cap applies only to ordinary P2 replies; redirects are
	// already throttled by the soft cap and the pacer.
	if base.Priority == P2 && base.Mode == ModeNormal {
		if st.P2RepliesThisHour >= cfg.Reply.MaxRepliesPerHourP2 {
			return Decision{Reply: false, Priority: P2, Reason: ReasonP2HourCap}, nil
		}
	}

	base.Scheduler = &SchedulerInfo{
		Reason:      sched.Reason,
		UsedBurst:   sched.UsedBurst,
		BurstType:   string(sched.BurstType),
		CallsToday:  st.CallsToday,
		BurstUsedP0: st.BurstUsedP0,
		BurstUsedP1: st.BurstUsedP1,
	}
	return base, nil
}
