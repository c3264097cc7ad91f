package config

import "time"

// Default values for configuration fields.
const (
	// Budget defaults
	DefaultDailyBudgetUSD = 1.00
	DefaultMaxCallsPerDay = 200
	DefaultSoftCapRatio   = 0.80
	DefaultMinCallSpacing = 1 * time.Second

	// Scheduler defaults
	DefaultSchedulerEnabled = true
	DefaultBurstP0          = 8
	DefaultBurstP1          = 4

	// Reply defaults
	DefaultMaxRepliesPerHourP2     = 2
	DefaultReplyToMentionsAlways   = true
	DefaultReplyToQuestionsAlways  = true
	DefaultOfftopicQuestionMode    = "redirect"

	// Retry defaults
	DefaultRetryMaxRetries = 3
	DefaultRetryBaseDelay  = 1 * time.Second
	DefaultRetryMaxDelay   = 30 * time.Second

	// Pricing defaults
	DefaultUSDPer1MInputTokens  = 1.50
	DefaultUSDPer1MOutputTokens = 6.00
	DefaultCharsPerToken        = 4.0

	// Daemon defaults
	DefaultPollInterval        = 60 * time.Second
	DefaultCallTimeout         = 30 * time.Second
	DefaultStateFile           = "agent_state.json"
	DefaultTimezoneOffsetHours = 1

	// Audit defaults
	DefaultAuditEnabled = true
	DefaultAuditPath    = "data/audit.db"
	DefaultAuditWALMode = true

	// Telemetry defaults
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "json"
	DefaultMetricsListenAddress = "127.0.0.1:9109"
)

// ApplyDefaults fills in default values for any unset configuration fields.
// It mutates the given config in place. Numeric and string fields use their
// zero value as the "unset" sentinel; default-true booleans are pointers and
// are filled when nil.
func ApplyDefaults(cfg *Config) {
	// Budget defaults
	if cfg.Budget.DailyBudgetUSD == 0 {
		cfg.Budget.DailyBudgetUSD = DefaultDailyBudgetUSD
	}
	if cfg.Budget.MaxCallsPerDay == 0 {
		cfg.Budget.MaxCallsPerDay = DefaultMaxCallsPerDay
	}
	if cfg.Budget.SoftCapRatio == 0 {
		cfg.Budget.SoftCapRatio = DefaultSoftCapRatio
	}
	if cfg.Budget.MinCallSpacing == 0 {
		cfg.Budget.MinCallSpacing = DefaultMinCallSpacing
	}

	// Scheduler defaults
	if cfg.Scheduler.Enabled == nil {
		cfg.Scheduler.Enabled = boolPtr(DefaultSchedulerEnabled)
	}
	if cfg.Scheduler.BurstP0 == 0 {
		cfg.Scheduler.BurstP0 = DefaultBurstP0
	}
	if cfg.Scheduler.BurstP1 == 0 {
		cfg.Scheduler.BurstP1 = DefaultBurstP1
	}

	// Reply defaults
	if cfg.Reply.MaxRepliesPerHourP2 == 0 {
		cfg.Reply.MaxRepliesPerHourP2 = DefaultMaxRepliesPerHourP2
	}
	if cfg.Reply.ReplyToMentionsAlways == nil {
		cfg.Reply.ReplyToMentionsAlways = boolPtr(DefaultReplyToMentionsAlways)
	}
	if cfg.Reply.ReplyToQuestionsAlways == nil {
		cfg.Reply.ReplyToQuestionsAlways = boolPtr(DefaultReplyToQuestionsAlways)
	}
	if cfg.Reply.OfftopicQuestionMode == "" {
		cfg.Reply.OfftopicQuestionMode = DefaultOfftopicQuestionMode
	}

	// Retry defaults
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry.MaxRetries = DefaultRetryMaxRetries
	}
	if cfg.Retry.BaseDelay == 0 {
		cfg.Retry.BaseDelay = DefaultRetryBaseDelay
	}
	if cfg.Retry.MaxDelay == 0 {
		cfg.Retry.MaxDelay = DefaultRetryMaxDelay
	}

	// Pricing defaults
	if cfg.Pricing.USDPer1MInputTokens == 0 {
		cfg.Pricing.USDPer1MInputTokens = DefaultUSDPer1MInputTokens
	}
	if cfg.Pricing.USDPer1MOutputTokens == 0 {
		cfg.Pricing.USDPer1MOutputTokens = DefaultUSDPer1MOutputTokens
	}
	if cfg.Pricing.CharsPerToken == 0 {
		cfg.Pricing.CharsPerToken = DefaultCharsPerToken
	}

	// Daemon defaults
	if cfg.Daemon.PollInterval == 0 {
		cfg.Daemon.PollInterval = DefaultPollInterval
	}
	if cfg.Daemon.CallTimeout == 0 {
		cfg.Daemon.CallTimeout = DefaultCallTimeout
	}
	if cfg.Daemon.StateFile == "" {
		cfg.Daemon.StateFile = DefaultStateFile
	}
	if cfg.Daemon.TimezoneOffsetHours == 0 {
		cfg.Daemon.TimezoneOffsetHours = DefaultTimezoneOffsetHours
	}

	// Audit defaults
	if cfg.Audit.Enabled == nil {
		cfg.Audit.Enabled = boolPtr(DefaultAuditEnabled)
	}
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = DefaultAuditPath
	}
	if cfg.Audit.WALMode == nil {
		cfg.Audit.WALMode = boolPtr(DefaultAuditWALMode)
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
}

func boolPtr(b bool) *bool { return &b }
