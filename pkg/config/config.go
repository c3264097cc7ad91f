package config

import "time"

// Config is the root configuration structure for replygate. It is the typed,
// validated form of the operator-edited policy file; every decision cycle
// reads it as an immutable value.
type Config struct {
	// Budget contains spend and call-count ceilings.
	Budget BudgetConfig `yaml:"budget"`

	// Scheduler contains Daily Pacer settings: the enable flag and the
	// per-priority burst allowances.
	Scheduler SchedulerConfig `yaml:"scheduler"`

	// Reply contains reply-policy settings: mention/question handling,
	// off-topic mode, and the hourly P2 ceiling.
	Reply ReplyConfig `yaml:"reply"`

	// Topics contains the allow/block keyword lists used for
	// classification.
	Topics TopicsConfig `yaml:"topics"`

	// Retry contains backoff settings for the external generation call.
	Retry RetryConfig `yaml:"retry"`

	// Pricing contains token cost estimation settings.
	Pricing PricingConfig `yaml:"pricing"`

	// Daemon contains polling-loop settings.
	Daemon DaemonConfig `yaml:"daemon"`

	// Audit contains decision audit-trail settings.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains logging and metrics settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// BudgetConfig contains the hard and soft financial ceilings.
type BudgetConfig struct {
	// DailyBudgetUSD is the hard daily spend ceiling. Once reached, all
	// priorities are denied until the next local day.
	// Default: 1.00
	DailyBudgetUSD float64 `yaml:"daily_budget_usd"`

	// MaxCallsPerDay is the hard daily ceiling on external calls.
	// Default: 200
	MaxCallsPerDay int `yaml:"max_calls_per_day"`

	// SoftCapRatio is the fraction of DailyBudgetUSD at which the lowest
	// priority tier (P2) stops being admitted. P0 and P1 bypass it.
	// Default: 0.80
	SoftCapRatio float64 `yaml:"soft_cap_ratio"`

	// MinCallSpacing is the minimum time between consecutive external
	// calls. Enforced by the daemon before issuing a call.
	// Default: 1s
	MinCallSpacing time.Duration `yaml:"min_call_spacing"`
}

// SchedulerConfig contains Daily Pacer settings.
type SchedulerConfig struct {
	// Enabled turns linear pacing on. When false every admission passes
	// the pacer unconditionally.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// BurstP0 is the number of extra calls per day P0 events may consume
	// beyond the earned pace.
	// Default: 8
	BurstP0 int `yaml:"burst_p0"`

	// BurstP1 is the burst pool for P1 events. P2 has no burst.
	// Default: 4
	BurstP1 int `yaml:"burst_p1"`
}

// ReplyConfig contains reply-policy settings.
type ReplyConfig struct {
	// MaxRepliesPerHourP2 caps normal-mode P2 replies per local hour.
	// Default: 2
	MaxRepliesPerHourP2 int `yaml:"max_replies_per_hour_p2"`

	// ReplyToMentionsAlways classifies events that mention the agent as P0.
	// Default: true
	ReplyToMentionsAlways *bool `yaml:"reply_to_mentions_always"`

	// ReplyToQuestionsAlways makes questions eligible for a reply even
	// when off-topic, subject to OfftopicQuestionMode.
	// Default: true
	ReplyToQuestionsAlways *bool `yaml:"reply_to_questions_always"`

	// OfftopicQuestionMode selects how off-topic questions are handled:
	// "redirect" replies with a P2 redirect, "skip" denies.
	// Default: "redirect"
	OfftopicQuestionMode string `yaml:"offtopic_question_mode"`
}

// TopicsConfig contains the keyword lists used for classification.
// Matching is case-insensitive substring containment.
type TopicsConfig struct {
	// AllowKeywords marks an event as on-topic.
	AllowKeywords []string `yaml:"allow_keywords"`

	// BlockKeywords marks an event as requiring a refusal reply.
	BlockKeywords []string `yaml:"block_keywords"`
}

// RetryConfig contains backoff settings for the external generation call.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`

	// BaseDelay is the first backoff delay; doubled per attempt.
	// Default: 1s
	BaseDelay time.Duration `yaml:"base_delay"`

	// MaxDelay caps the backoff delay, including server retry-after hints.
	// Default: 30s
	MaxDelay time.Duration `yaml:"max_delay"`
}

// PricingConfig contains token cost estimation settings.
type PricingConfig struct {
	// USDPer1MInputTokens is the input token price per million.
	// Default: 1.50
	USDPer1MInputTokens float64 `yaml:"usd_per_1m_input_tokens"`

	// USDPer1MOutputTokens is the output token price per million.
	// Default: 6.00
	USDPer1MOutputTokens float64 `yaml:"usd_per_1m_output_tokens"`

	// CharsPerToken is the rough characters-per-token estimate used for
	// dry-run cost projection.
	// Default: 4.0
	CharsPerToken float64 `yaml:"chars_per_token"`
}

// DaemonConfig contains polling-loop settings.
type DaemonConfig struct {
	// PollInterval is the delay between polling cycles. The inter-cycle
	// sleep is chunked so shutdown latency stays bounded.
	// Default: 60s
	PollInterval time.Duration `yaml:"poll_interval"`

	// CallTimeout bounds each external generation attempt.
	// Default: 30s
	CallTimeout time.Duration `yaml:"call_timeout"`

	// StateFile is the path of the durable state record.
	// Default: "agent_state.json"
	StateFile string `yaml:"state_file"`

	// TimezoneOffsetHours is the fixed local UTC offset used for day and
	// hour boundaries.
	// Default: 1
	TimezoneOffsetHours int `yaml:"timezone_offset_hours"`

	// Watch reloads the policy file on change while the daemon runs.
	// Default: false
	Watch bool `yaml:"watch"`
}

// AuditConfig contains decision audit-trail settings.
type AuditConfig struct {
	// Enabled turns the SQLite audit trail on.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Path is the audit database file path.
	// Default: "data/audit.db"
	Path string `yaml:"path"`

	// WALMode enables SQLite write-ahead logging.
	// Default: true
	WALMode *bool `yaml:"wal_mode"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	// Logging configures the slog handler.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the handler format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus metrics endpoint.
type MetricsConfig struct {
	// Enabled exposes /metrics on ListenAddress while the daemon runs.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the host:port for the metrics listener.
	// Default: "127.0.0.1:9109"
	ListenAddress string `yaml:"listen_address"`
}

// Default-true booleans are declared as *bool so an explicit `false` in the
// policy file is distinguishable from an absent field. ApplyDefaults fills
// nil pointers; the accessors below treat nil as the documented default so
// zero-value Config structs behave sensibly in tests.

// IsEnabled reports whether the Daily Pacer is enabled.
func (s SchedulerConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// MentionsAlways reports whether mentions are always answered.
func (r ReplyConfig) MentionsAlways() bool {
	return r.ReplyToMentionsAlways == nil || *r.ReplyToMentionsAlways
}

// QuestionsAlways reports whether questions are always eligible.
func (r ReplyConfig) QuestionsAlways() bool {
	return r.ReplyToQuestionsAlways == nil || *r.ReplyToQuestionsAlways
}

// IsEnabled reports whether the audit trail is enabled.
func (a AuditConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// UseWAL reports whether the audit database uses write-ahead logging.
func (a AuditConfig) UseWAL() bool {
	return a.WALMode == nil || *a.WALMode
}
