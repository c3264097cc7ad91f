package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"moltworks/replygate/pkg/state"
)

var statusFlags struct {
	jsonOut bool
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted governance counters",
	Long: `Print the durable state record: spend, call counts, pacing bursts, and
the deduplication set size for the current day.

The record is read after day/hour rollover, so the output reflects what
the daemon would see if it started now.

Examples:
  replygate status
  replygate status --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		clock := state.NewFixedOffsetClock(cfg.Daemon.TimezoneOffsetHours)
		store := state.NewStore(cfg.Daemon.StateFile, clock)
		st := store.Load()

		now := clock.Now()
		state.Rollover(st, state.DayKey(now), state.HourKey(now))

		if statusFlags.jsonOut {
			out := map[string]any{
				"day_key":              st.DayKey,
				"hour_key":             st.HourKey,
				"spent_usd":            st.SpentUSD,
				"daily_budget_usd":     cfg.Budget.DailyBudgetUSD,
				"calls_today":          st.CallsToday,
				"max_calls_per_day":    cfg.Budget.MaxCallsPerDay,
				"p2_replies_this_hour": st.P2RepliesThisHour,
				"burst_used_p0":        st.BurstUsedP0,
				"burst_used_p1":        st.BurstUsedP1,
				"replied_events":       len(st.RepliedEventIDs),
				"last_call_ts":         st.LastCallTS,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		fmt.Printf("State file: %s\n", store.Path())
		fmt.Printf("Day %s, hour %s\n", st.DayKey, st.HourKey)
		fmt.Printf("  spend:          $%.4f of $%.2f\n", st.SpentUSD, cfg.Budget.DailyBudgetUSD)
		fmt.Printf("  calls:          %d of %d\n", st.CallsToday, cfg.Budget.MaxCallsPerDay)
		fmt.Printf("  p2 this hour:   %d of %d\n", st.P2RepliesThisHour, cfg.Reply.MaxRepliesPerHourP2)
		fmt.Printf("  bursts used:    p0=%d/%d p1=%d/%d\n",
			st.BurstUsedP0, cfg.Scheduler.BurstP0, st.BurstUsedP1, cfg.Scheduler.BurstP1)
		fmt.Printf("  replied events: %d\n", len(st.RepliedEventIDs))
		if st.LastCallTS > 0 {
			fmt.Printf("  last call:      %s\n", time.Unix(int64(st.LastCallTS), 0).In(now.Location()).Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusFlags.jsonOut, "json", false, "emit machine-readable JSON")
}
