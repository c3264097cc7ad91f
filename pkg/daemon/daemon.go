package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"moltworks/replygate/pkg/audit"
	"moltworks/replygate/pkg/config"
	"moltworks/replygate/pkg/decision"
	"moltworks/replygate/pkg/decision/pacer"
	"moltworks/replygate/pkg/retry"
	"moltworks/replygate/pkg/state"
)

// Options configures a Daemon beyond what the config file carries.
type Options struct {
	// DryRun evaluates decisions without generating, sending, or
	// persisting state.
	DryRun bool

	// Once runs a single poll cycle and returns instead of looping.
	Once bool

	// PollInterval overrides the configured poll interval when non-zero.
	PollInterval time.Duration
}

// Daemon is the poll loop that feeds events through the decision pipeline
// and, for allowed events, generates and delivers replies.
type Daemon struct {
	cfg      atomic.Pointer[config.Config]
	store    *state.Store
	clock    state.Clock
	pipeline *decision.Pipeline
	source   EventSource
	gen      Generator
	sink     ReplySink
	trail    *audit.Store
	stats    *Stats
	policy   retry.Policy
	opts     Options
	runID    string
	logger   *slog.Logger
}

// New assembles a Daemon. trail may be nil when the audit store is
// disabled; sink may be nil in dry-run mode.
func New(cfg *config.Config, store *state.Store, clock state.Clock, pipeline *decision.Pipeline,
	source EventSource, gen Generator, sink ReplySink, trail *audit.Store, opts Options) *Daemon {
	d := &Daemon{
		store:    store,
		clock:    clock,
		pipeline: pipeline,
		source:   source,
		gen:      gen,
		sink:     sink,
		trail:    trail,
		stats:    NewStats(clock.Now()),
		policy: retry.Policy{
			MaxRetries: cfg.Retry.MaxRetries,
			BaseDelay:  cfg.Retry.BaseDelay,
			MaxDelay:   cfg.Retry.MaxDelay,
		},
		opts:   opts,
		runID:  uuid.New().String(),
		logger: slog.Default().With("component", "daemon"),
	}
	d.cfg.Store(cfg)
	return d
}

// Reload swaps the active configuration. The next event picks it up; the
// retry policy and run options are fixed for the process lifetime.
func (d *Daemon) Reload(cfg *config.Config) {
	d.cfg.Store(cfg)
	d.logger.Info("configuration reloaded",
		"daily_budget_usd", cfg.Budget.DailyBudgetUSD,
		"max_calls_per_day", cfg.Budget.MaxCallsPerDay,
	)
}

// RunID returns the identifier shared by all audit records of this run.
func (d *Daemon) RunID() string { return d.runID }

// Stats returns the daemon's run counters.
func (d *Daemon) Stats() *Stats { return d.stats }

// Run executes the poll loop until ctx is cancelled. With Options.Once it
// processes a single cycle and returns.
func (d *Daemon) Run(ctx context.Context) error {
	interval := d.opts.PollInterval
	if interval <= 0 {
		interval = d.cfg.Load().Daemon.PollInterval
	}

	st := d.store.Load()

	d.logger.Info("daemon starting",
		"run_id", d.runID,
		"poll_interval", interval.String(),
		"dry_run", d.opts.DryRun,
		"state_file", d.store.Path(),
		"day_key", st.DayKey,
		"calls_today", st.CallsToday,
		"spent_usd", st.SpentUSD,
	)

	summaries := cron.New()
	if _, err := summaries.AddFunc("59 23 * * *", func() {
		d.stats.LogSummary(d.clock.Now())
	}); err != nil {
		return fmt.Errorf("schedule daily summary: %w", err)
	}
	summaries.Start()
	defer func() { <-summaries.Stop().Done() }()

	for {
		err := d.Cycle(ctx, st)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			d.logger.Error("poll cycle failed", "error", err)
		}
		if d.opts.Once {
			return err
		}

		select {
		case <-ctx.Done():
			d.logger.Info("daemon stopping", "run_id", d.runID)
			d.stats.LogSummary(d.clock.Now())
			return nil
		case <-time.After(interval):
		}
	}

	d.logger.Info("daemon stopping", "run_id", d.runID)
	d.stats.LogSummary(d.clock.Now())
	return nil
}

// Cycle polls the source once and governs each returned event in order.
// A paced-wait denial ends the cycle early: later events in the batch
// would hit the same pacing gate.
func (d *Daemon) Cycle(ctx context.Context, st *state.State) error {
	events, err := d.source.Poll(ctx)
	if err != nil {
		return fmt.Errorf("poll events: %w", err)
	}
	if len(events) == 0 {
		return nil
	}

	d.logger.Debug("poll cycle", "events", len(events))

	for _, ev := range events {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		dec, err := d.processEvent(ctx, st, ev)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.Error("event processing failed", "event_id", ev.ID, "error", err)
			continue
		}
		if !dec.Reply && dec.Scheduler != nil && dec.Scheduler.Reason == pacer.ReasonPacedWait {
			d.logger.Info("pacing wait, deferring remaining events",
				"event_id", ev.ID,
				"wait_seconds", dec.Scheduler.WaitSeconds,
				"deferred", len(events),
			)
			return nil
		}
	}
	return nil
}

// processEvent runs the decision pipeline for one event and, when allowed,
// performs the generation and delivery. State is committed only after a
// successful generation.
func (d *Daemon) processEvent(ctx context.Context, st *state.State, ev decision.Event) (decision.Decision, error) {
	d.stats.recordEvent()
	cfg := d.cfg.Load()

	dec, err := d.pipeline.Decide(st, ev, cfg, d.opts.DryRun)
	if err != nil {
		return decision.Decision{}, err
	}

	d.stats.WarnSoftCap(st.SpentUSD, cfg.Budget.DailyBudgetUSD, cfg.Budget.SoftCapRatio)

	if !dec.Reply {
		d.stats.recordDenial(dec.Reason)
		d.record(ctx, st, ev, dec, 0)
		return dec, nil
	}

	if d.opts.DryRun {
		d.logger.Info("dry run, reply allowed but not generated",
			"event_id", ev.ID,
			"priority", string(dec.Priority),
			"reason", dec.Reason,
		)
		d.record(ctx, st, ev, dec, 0)
		return dec, nil
	}

	if err := d.waitSpacing(ctx, st, cfg.Budget.MinCallSpacing); err != nil {
		return decision.Decision{}, err
	}

	res, err := retry.Execute(ctx, d.policy, ev.ID, func(ctx context.Context) (GenerationResult, error) {
		callCtx, cancel := context.WithTimeout(ctx, cfg.Daemon.CallTimeout)
		defer cancel()
		return d.gen.Generate(callCtx, ev, dec.Mode)
	})
	if err != nil {
		d.stats.recordCallError()
		d.record(ctx, st, ev, dec, 0)
		return dec, fmt.Errorf("generate reply: %w", err)
	}

	cost := estimateCallCost(ev.Text, res, cfg.Pricing)
	if err := decision.CommitSuccess(d.store, st, d.clock, ev.ID, cost); err != nil {
		return dec, fmt.Errorf("commit reply state: %w", err)
	}
	if dec.Priority == decision.P2 && dec.Mode == decision.ModeNormal {
		if err := decision.CommitP2Reply(d.store, st); err != nil {
			return dec, fmt.Errorf("commit hourly counter: %w", err)
		}
	}

	d.stats.recordReply(cost)
	d.record(ctx, st, ev, dec, cost)

	// Delivery failure after commit is drift, not a rollback: the call
	// was made and must stay charged.
	if d.sink != nil {
		if err := d.sink.Send(ctx, ev, res.Text); err != nil {
			d.stats.recordSinkError()
			d.logger.Error("reply delivery failed", "event_id", ev.ID, "error", err)
		}
	}

	d.logger.Info("reply sent",
		"event_id", ev.ID,
		"priority", string(dec.Priority),
		"mode", string(dec.Mode),
		"reason", dec.Reason,
		"cost_usd", cost,
		"calls_today", st.CallsToday,
		"spent_usd", st.SpentUSD,
	)
	return dec, nil
}

// waitSpacing sleeps until the minimum inter-call spacing since the last
// committed call has elapsed.
func (d *Daemon) waitSpacing(ctx context.Context, st *state.State, spacing time.Duration) error {
	if spacing <= 0 || st.LastCallTS == 0 {
		return nil
	}
	elapsed := time.Duration((float64(d.clock.Now().Unix()) - st.LastCallTS) * float64(time.Second))
	if elapsed >= spacing {
		return nil
	}
	remaining := spacing - elapsed
	d.logger.Debug("spacing wait", "remaining", remaining.String())
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(remaining):
		return nil
	}
}

// record appends the decision to the audit trail when one is configured.
func (d *Daemon) record(ctx context.Context, st *state.State, ev decision.Event, dec decision.Decision, costUSD float64) {
	if d.trail == nil {
		return
	}
	rec := audit.Record{
		RunID:      d.runID,
		EventID:    ev.ID,
		RecordedAt: d.clock.Now(),
		DayKey:     st.DayKey,
		Reply:      dec.Reply,
		Priority:   string(dec.Priority),
		Reason:     dec.Reason,
		Mode:       string(dec.Mode),
		SpentUSD:   st.SpentUSD,
		CallsToday: st.CallsToday,
		CostUSD:    costUSD,
		DryRun:     d.opts.DryRun,
	}
	if dec.Scheduler != nil {
		rec.WaitSeconds = dec.Scheduler.WaitSeconds
	}
	if err := d.trail.Append(ctx, rec); err != nil {
		d.logger.Error("audit append failed", "event_id", ev.ID, "error", err)
	}
}
