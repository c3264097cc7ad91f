package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"moltworks/replygate/internal/adapters"
	"moltworks/replygate/pkg/audit"
	"moltworks/replygate/pkg/config"
	"moltworks/replygate/pkg/daemon"
	"moltworks/replygate/pkg/decision"
	"moltworks/replygate/pkg/state"
)

var runFlags struct {
	live     bool
	once     bool
	interval time.Duration
	logLevel string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the reply-governance daemon",
	Long: `Start the daemon poll loop with the specified configuration.

By default the daemon runs dry: every event is classified and checked
against budget and pacing, decisions are logged and audited, but no model
call is made and no state is written. Pass --live to generate and deliver
replies and commit spend to the durable state record.

Examples:
  # Dry run with default config
  replygate run

  # Live run
  replygate run --config /etc/replygate/config.yaml --live

  # Single poll cycle, then exit
  replygate run --once

  # Override the poll interval
  replygate run --interval 10s`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runFlags.live, "live", false, "generate replies and commit spend (default is dry run)")
	runCmd.Flags().BoolVar(&runFlags.once, "once", false, "process one poll cycle and exit")
	runCmd.Flags().DurationVar(&runFlags.interval, "interval", 0, "override poll interval")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	initLogging(cfg)

	// Shut down on SIGINT/SIGTERM; in-flight retries abort via context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clock := state.NewFixedOffsetClock(cfg.Daemon.TimezoneOffsetHours)
	store := state.NewStore(cfg.Daemon.StateFile, clock)
	metrics := decision.NewMetrics()
	pipeline := decision.New(store, clock, metrics)

	var trail *audit.Store
	if cfg.Audit.IsEnabled() {
		trail, err = audit.NewStore(audit.Config{
			Path:    cfg.Audit.Path,
			WALMode: cfg.Audit.UseWAL(),
		})
		if err != nil {
			return fmt.Errorf("open audit store: %w", err)
		}
		defer trail.Close()
	}

	source, gen, sink := buildAdapters()

	d := daemon.New(cfg, store, clock, pipeline, source, gen, sink, trail, daemon.Options{
		DryRun:       !runFlags.live,
		Once:         runFlags.once,
		PollInterval: runFlags.interval,
	})

	if cfg.Telemetry.Metrics.Enabled {
		go func() {
			if err := daemon.ServeMetrics(ctx, cfg.Telemetry.Metrics.ListenAddress); err != nil {
				slog.Error("metrics listener failed", "error", err)
			}
		}()
	}

	if cfg.Daemon.Watch {
		watcher := config.NewWatcher(cfgFile, 0)
		go func() {
			err := watcher.Watch(ctx, func() error {
				next, err := loadConfig()
				if err != nil {
					return err
				}
				d.Reload(next)
				return nil
			})
			if err != nil {
				slog.Error("config watcher failed", "error", err)
			}
		}()
	}

	return d.Run(ctx)
}

// buildAdapters wires the feed adapters. Only the in-process mock adapter
// ships today; a platform adapter plugs in through the same interfaces.
func buildAdapters() (daemon.EventSource, daemon.Generator, daemon.ReplySink) {
	source := adapters.NewMockSource()
	gen := &adapters.MockGenerator{}
	sink := &adapters.MockSink{}
	return source, gen, sink
}

// loadConfig reads the config file, or falls back to defaults when the
// default path does not exist and was not explicitly requested.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) && !rootCmd.PersistentFlags().Changed("config") {
		return config.Default(), nil
	}
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// initLogging installs the process-wide slog default from the telemetry
// configuration.
func initLogging(cfg *config.Config) {
	var level slog.Level
	switch cfg.Telemetry.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Telemetry.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
