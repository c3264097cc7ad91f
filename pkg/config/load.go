package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads a policy file from the given path, applies defaults, and
// validates the result. Any failure is fatal to startup: a partially applied
// configuration is never returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse policy file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads a policy file and applies environment variable
// overrides. Variables follow the naming convention REPLYGATE_SECTION_FIELD
// (e.g. REPLYGATE_BUDGET_DAILY_BUDGET_USD) and always take precedence over
// file values. The final configuration is re-validated.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration invalid after environment overrides: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every field at its default value.
// Used by tests and by the validate command's --print-defaults flag.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("REPLYGATE_BUDGET_DAILY_BUDGET_USD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Budget.DailyBudgetUSD = f
		}
	}
	if val := os.Getenv("REPLYGATE_BUDGET_MAX_CALLS_PER_DAY"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Budget.MaxCallsPerDay = n
		}
	}
	if val := os.Getenv("REPLYGATE_BUDGET_SOFT_CAP_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Budget.SoftCapRatio = f
		}
	}
	if val := os.Getenv("REPLYGATE_DAEMON_POLL_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Daemon.PollInterval = d
		}
	}
	if val := os.Getenv("REPLYGATE_DAEMON_STATE_FILE"); val != "" {
		cfg.Daemon.StateFile = val
	}
	if val := os.Getenv("REPLYGATE_AUDIT_PATH"); val != "" {
		cfg.Audit.Path = val
	}
	if val := os.Getenv("REPLYGATE_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("REPLYGATE_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
		cfg.Telemetry.Metrics.Enabled = true
	}
}
