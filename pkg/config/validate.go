package config

import (
	"fmt"
	"strings"
	"time"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "budget.daily_budget_usd").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together so the operator
// can fix the policy file in one pass.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateBudget(&cfg.Budget)...)
	errs = append(errs, validateScheduler(&cfg.Scheduler)...)
	errs = append(errs, validateReply(&cfg.Reply)...)
	errs = append(errs, validateRetry(&cfg.Retry)...)
	errs = append(errs, validatePricing(&cfg.Pricing)...)
	errs = append(errs, validateDaemon(&cfg.Daemon)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateBudget(b *BudgetConfig) []FieldError {
	var errs []FieldError

	if b.DailyBudgetUSD < 0.01 || b.DailyBudgetUSD > 100.0 {
		errs = append(errs, FieldError{
			Field:   "budget.daily_budget_usd",
			Message: fmt.Sprintf("must be between 0.01 and 100.00, got %.4f", b.DailyBudgetUSD),
		})
	}
	if b.MaxCallsPerDay < 1 || b.MaxCallsPerDay > 1000 {
		errs = append(errs, FieldError{
			Field:   "budget.max_calls_per_day",
			Message: fmt.Sprintf("must be between 1 and 1000, got %d", b.MaxCallsPerDay),
		})
	}
	if b.SoftCapRatio <= 0 || b.SoftCapRatio > 1 {
		errs = append(errs, FieldError{
			Field:   "budget.soft_cap_ratio",
			Message: fmt.Sprintf("must be in (0, 1], got %.2f", b.SoftCapRatio),
		})
	}
	if b.MinCallSpacing < 0 || b.MinCallSpacing > time.Minute {
		errs = append(errs, FieldError{
			Field:   "budget.min_call_spacing",
			Message: fmt.Sprintf("must be between 0s and 60s, got %s", b.MinCallSpacing),
		})
	}

	return errs
}

func validateScheduler(s *SchedulerConfig) []FieldError {
	var errs []FieldError

	if s.BurstP0 < 0 || s.BurstP0 > 50 {
		errs = append(errs, FieldError{
			Field:   "scheduler.burst_p0",
			Message: fmt.Sprintf("must be between 0 and 50, got %d", s.BurstP0),
		})
	}
	if s.BurstP1 < 0 || s.BurstP1 > 50 {
		errs = append(errs, FieldError{
			Field:   "scheduler.burst_p1",
			Message: fmt.Sprintf("must be between 0 and 50, got %d", s.BurstP1),
		})
	}

	return errs
}

func validateReply(r *ReplyConfig) []FieldError {
	var errs []FieldError

	if r.MaxRepliesPerHourP2 < 0 || r.MaxRepliesPerHourP2 > 20 {
		errs = append(errs, FieldError{
			Field:   "reply.max_replies_per_hour_p2",
			Message: fmt.Sprintf("must be between 0 and 20, got %d", r.MaxRepliesPerHourP2),
		})
	}
	if r.OfftopicQuestionMode != "redirect" && r.OfftopicQuestionMode != "skip" {
		errs = append(errs, FieldError{
			Field:   "reply.offtopic_question_mode",
			Message: fmt.Sprintf("must be %q or %q, got %q", "redirect", "skip", r.OfftopicQuestionMode),
		})
	}

	return errs
}

func validateRetry(r *RetryConfig) []FieldError {
	var errs []FieldError

	if r.MaxRetries < 0 || r.MaxRetries > 10 {
		errs = append(errs, FieldError{
			Field:   "retry.max_retries",
			Message: fmt.Sprintf("must be between 0 and 10, got %d", r.MaxRetries),
		})
	}
	if r.BaseDelay <= 0 {
		errs = append(errs, FieldError{
			Field:   "retry.base_delay",
			Message: fmt.Sprintf("must be positive, got %s", r.BaseDelay),
		})
	}
	if r.MaxDelay < r.BaseDelay {
		errs = append(errs, FieldError{
			Field:   "retry.max_delay",
			Message: fmt.Sprintf("must be >= base_delay (%s), got %s", r.BaseDelay, r.MaxDelay),
		})
	}

	return errs
}

func validatePricing(p *PricingConfig) []FieldError {
	var errs []FieldError

	if p.USDPer1MInputTokens < 0 {
		errs = append(errs, FieldError{
			Field:   "pricing.usd_per_1m_input_tokens",
			Message: fmt.Sprintf("must be non-negative, got %.4f", p.USDPer1MInputTokens),
		})
	}
	if p.USDPer1MOutputTokens < 0 {
		errs = append(errs, FieldError{
			Field:   "pricing.usd_per_1m_output_tokens",
			Message: fmt.Sprintf("must be non-negative, got %.4f", p.USDPer1MOutputTokens),
		})
	}
	if p.CharsPerToken <= 0 {
		errs = append(errs, FieldError{
			Field:   "pricing.chars_per_token",
			Message: fmt.Sprintf("must be positive, got %.2f", p.CharsPerToken),
		})
	}

	return errs
}

func validateDaemon(d *DaemonConfig) []FieldError {
	var errs []FieldError

	if d.PollInterval <= 0 {
		errs = append(errs, FieldError{
			Field:   "daemon.poll_interval",
			Message: fmt.Sprintf("must be positive, got %s", d.PollInterval),
		})
	}
	if d.CallTimeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "daemon.call_timeout",
			Message: fmt.Sprintf("must be positive, got %s", d.CallTimeout),
		})
	}
	if d.StateFile == "" {
		errs = append(errs, FieldError{
			Field:   "daemon.state_file",
			Message: "must not be empty",
		})
	}
	if d.TimezoneOffsetHours < -12 || d.TimezoneOffsetHours > 14 {
		errs = append(errs, FieldError{
			Field:   "daemon.timezone_offset_hours",
			Message: fmt.Sprintf("must be between -12 and 14, got %d", d.TimezoneOffsetHours),
		})
	}

	return errs
}

func validateTelemetry(t *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch t.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error; got %q", t.Logging.Level),
		})
	}
	switch t.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be %q or %q, got %q", "json", "text", t.Logging.Format),
		})
	}
	if t.Metrics.Enabled && t.Metrics.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.listen_address",
			Message: "must not be empty when metrics are enabled",
		})
	}

	return errs
}
