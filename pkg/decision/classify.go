package decision

import (
	"strings"

	"moltworks/replygate/pkg/config"
)

// classify assigns priority, mode, and reason to an event, or terminates
// with a denial. Evaluation order matters: block keywords outrank mentions,
// mentions outrank questions, questions outrank plain relevance.
//
// Blocked-keyword events are answered with an explicit refusal at P0 rather
// than silently skipped, so the audience sees the agent decline instead of
// ignoring the bait.
func classify(ev Event, cfg *config.Config) Decision {
	text := strings.ToLower(ev.Text)
	isQuestion := ev.IsQuestion || strings.HasSuffix(strings.TrimSpace(ev.Text), "?")

	if keywordHit(text, cfg.Topics.BlockKeywords) {
		return Decision{
			Reply:    true,
			Priority: P0,
			Reason:   ReasonBlockedKeywordRefuse,
			Mode:     ModeRefuse,
		}
	}

	if ev.MentionsMe && cfg.Reply.MentionsAlways() {
		return Decision{
			Reply:    true,
			Priority: P0,
			Reason:   ReasonMention,
			Mode:     ModeNormal,
		}
	}

	if isQuestion && cfg.Reply.QuestionsAlways() {
		if keywordHit(text, cfg.Topics.AllowKeywords) {
			return Decision{
				Reply:    true,
				Priority: P1,
				Reason:   ReasonRelevantQuestion,
				Mode:     ModeNormal,
			}
		}
		if cfg.Reply.OfftopicQuestionMode == "redirect" {
			return Decision{
				Reply:    true,
				Priority: P2,
				Reason:   ReasonOfftopicQuestionRedirect,
				Mode:     ModeRedirect,
			}
		}
		return Decision{
			Reply:    false,
			Priority: P2,
			Reason:   ReasonOfftopicQuestionSkip,
		}
	}

	if keywordHit(text, cfg.Topics.AllowKeywords) {
		return Decision{
			Reply:    true,
			Priority: P2,
			Reason:   ReasonRelevantStatement,
			Mode:     ModeNormal,
		}
	}

	return Decision{Reply: false, Priority: P2, Reason: ReasonNotRelevant}
}

// keywordHit reports whether textLower contains any of the keywords,
// case-insensitively.
func keywordHit(textLower string, keywords []string) bool {
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(textLower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
