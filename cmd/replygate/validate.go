package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"moltworks/replygate/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Load and validate a configuration file without starting the daemon.

Defaults are applied before validation, so a file that only sets a few
fields validates the same way the daemon would see it.

Examples:
  replygate validate --config config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			var verr config.ValidationError
			if errors.As(err, &verr) {
				fmt.Printf("✗ %s is invalid\n", cfgFile)
				for _, fe := range verr.Errors {
					fmt.Printf("  - %s: %s\n", fe.Field, fe.Message)
				}
				return fmt.Errorf("%d validation error(s)", len(verr.Errors))
			}
			return err
		}

		fmt.Printf("✓ %s is valid\n", cfgFile)
		fmt.Printf("  daily budget:      $%.2f (%d calls)\n", cfg.Budget.DailyBudgetUSD, cfg.Budget.MaxCallsPerDay)
		fmt.Printf("  soft cap:          %.0f%%\n", cfg.Budget.SoftCapRatio*100)
		fmt.Printf("  pacing:            enabled=%t burst_p0=%d burst_p1=%d\n",
			cfg.Scheduler.IsEnabled(), cfg.Scheduler.BurstP0, cfg.Scheduler.BurstP1)
		fmt.Printf("  p2 hourly ceiling: %d\n", cfg.Reply.MaxRepliesPerHourP2)
		fmt.Printf("  state file:        %s\n", cfg.Daemon.StateFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
