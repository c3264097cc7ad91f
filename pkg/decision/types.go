package decision

import (
	"moltworks/replygate/pkg/decision/governor"
	"moltworks/replygate/pkg/decision/pacer"
)

// Priority is the admission tier assigned by classification.
type Priority string

// Priority tiers in descending order: P0 mentions/urgent, P1 on-topic
// questions, P2 everything else eligible.
const (
	P0 Priority = "P0"
	P1 Priority = "P1"
	P2 Priority = "P2"
)

// Mode is the reply mode assigned by classification.
type Mode string

const (
	// ModeNormal is an ordinary on-topic reply.
	ModeNormal Mode = "normal"

	// ModeRedirect acknowledges an off-topic question and steers back to
	// the configured domain.
	ModeRedirect Mode = "redirect"

	// ModeRefuse is a brief refusal for blocked-keyword events.
	ModeRefuse Mode = "refuse"
)

// Event is a normalized incoming feed event. Flags are resolved once at the
// platform boundary; the pipeline never re-derives them defensively.
type Event struct {
	// ID uniquely identifies the event for idempotency.
	ID string `json:"id"`

	// Type is the platform event kind (post, comment, ...).
	Type string `json:"type"`

	// Author is the event author's handle.
	Author string `json:"author"`

	// Text is the event body.
	Text string `json:"text"`

	// TS is the platform timestamp, unix seconds.
	TS float64 `json:"ts"`

	// MentionsMe is set when the event mentions the agent.
	MentionsMe bool `json:"mentions_me"`

	// IsQuestion is set when the platform flagged the event as a question.
	// The classifier additionally treats text ending in "?" as a question.
	IsQuestion bool `json:"is_question"`
}

// SchedulerInfo is the pacer context attached to a Decision for
// observability.
type SchedulerInfo struct {
	Reason      string  `json:"reason"`
	WaitSeconds float64 `json:"wait_seconds,omitempty"`
	UsedBurst   bool    `json:"used_burst,omitempty"`
	BurstType   string  `json:"burst_type,omitempty"`
	CallsToday  int     `json:"calls_today"`
	BurstUsedP0 int     `json:"burst_used_p0"`
	BurstUsedP1 int     `json:"burst_used_p1"`
}

// Decision is the pipeline's admission verdict for one event. Denials are
// ordinary Decision values with Reply=false; they are never errors.
type Decision struct {
	// Reply reports whether the agent may generate and send a reply.
	Reply bool `json:"reply"`

	// Priority is the classified tier. Denials that occur after
	// classification preserve it.
	Priority Priority `json:"priority"`

	// Reason explains the verdict.
	Reason string `json:"reason"`

	// Mode is set on allowed replies.
	Mode Mode `json:"mode,omitempty"`

	// OriginalEventID is set on duplicate-event denials.
	OriginalEventID string `json:"original_event_id,omitempty"`

	// Scheduler carries pacer context when the pacer participated.
	Scheduler *SchedulerInfo `json:"scheduler,omitempty"`

	// Budget carries budget context on budget denials.
	Budget *governor.Info `json:"budget,omitempty"`
}

// Pipeline decision reasons not owned by the governor or pacer.
const (
	// ReasonDuplicateEvent: the event ID is already in the dedup set.
	ReasonDuplicateEvent = "duplicate_event"

	// ReasonBlockedKeywordRefuse: the text matched a block keyword; the
	// agent replies with a brief refusal at P0.
	ReasonBlockedKeywordRefuse = "blocked_keyword_refuse"

	// ReasonMention: the event mentions the agent.
	ReasonMention = "mention"

	// ReasonRelevantQuestion: an on-topic question.
	ReasonRelevantQuestion = "relevant_question"

	// ReasonOfftopicQuestionRedirect: an off-topic question answered with
	// a redirect under the "redirect" policy.
	ReasonOfftopicQuestionRedirect = "offtopic_question_redirect"

	// ReasonOfftopicQuestionSkip: an off-topic question denied under the
	// "skip" policy.
	ReasonOfftopicQuestionSkip = "offtopic_question_skip"

	// ReasonRelevantStatement: an on-topic non-question.
	ReasonRelevantStatement = "relevant_statement"

	// ReasonNotRelevant: nothing in the event warrants a reply.
	ReasonNotRelevant = "not_relevant"

	// ReasonP2HourCap: the hourly ceiling for normal P2 replies is
	// reached.
	ReasonP2HourCap = "p2_hour_cap"
)

// tier maps a Priority to the pacer's tier type.
func tier(p Priority) pacer.Tier {
	switch p {
	case P0:
		return pacer.TierP0
	case P1:
		return pacer.TierP1
	default:
		return pacer.TierP2
	}
}
