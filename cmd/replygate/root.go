package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "replygate",
	Short: "Replygate - reply governance for automated feed agents",
	Long: `Replygate governs an automated social-feed reply agent. It decides,
for every incoming feed event, whether the agent may spend a model call
on a reply right now.

It provides:
  - Hard daily budget and call caps with a soft-cap brake for low tiers
  - Linear daily pacing with burst pools for mentions and on-topic questions
  - Event deduplication and keyword-based reply classification
  - Retry with capped exponential backoff around the model call
  - A durable flat-file state record that survives restarts`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
