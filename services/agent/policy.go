package agent

import "strings"

// ClarifyPolicy decides whether a turn should flow through conversation
// (clarifying questions, free chat) instead of direct action execution.
// It is a heuristic gate, not a strict state machine; implementations are
// swappable so the threshold can be tuned without touching the dispatcher.
type ClarifyPolicy interface {
	NeedsClarification(utterance string, missing []string) bool
}

// conversationalMarkers are punctuation and politeness/query words that
// suggest the user is conversing rather than issuing a complete command.
var conversationalMarkers = []string{
	"?", "can you", "could you", "please", "help",
	"what", "when", "how", "which", "where",
}

// KeywordClarifyPolicy routes to clarification when required slots are
// missing or the utterance reads conversational.
type KeywordClarifyPolicy struct{}

func (KeywordClarifyPolicy) NeedsClarification(utterance string, missing []string) bool {
	if len(missing) > 0 {
		return true
	}
	lower := strings.ToLower(utterance)
	return containsAny(lower, conversationalMarkers)
}

// affirmations are the confirmations accepted while a completed booking
// awaits the user's go-ahead.
var affirmations = []string{
	"yes", "yep", "yeah", "sure", "confirm", "go ahead", "book it", "do it", "ok", "okay",
}

// isAffirmative reports whether the utterance confirms a pending booking.
func isAffirmative(utterance string) bool {
	lower := strings.TrimSpace(strings.ToLower(utterance))
	for _, word := range affirmations {
		if lower == word || strings.HasPrefix(lower, word+" ") || strings.HasPrefix(lower, word+",") {
			return true
		}
	}
	return false
}
