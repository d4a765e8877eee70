// Package agent holds the conversation pipeline: extraction, session merge,
// clarification policy and dispatch of resolved intents to the booking API.
package agent

import (
	"context"
	"fmt"
	"time"

	"tablebooker/config"
	catalogRepo "tablebooker/database/repository/catalog"
	"tablebooker/models"
	"tablebooker/services/ai"
	"tablebooker/services/session"

	"go.uber.org/zap"
)

// historyCap triggers pruning; historyHead and historyTail are what survives.
// The head keeps the opening exchange (names, preferences stated up front),
// the tail keeps the recent context.
const (
	historyCap  = 60
	historyHead = 6
	historyTail = 50
)

// Service runs one conversation turn end to end. All mutation of a session
// happens under its per-session lock, so concurrent turns for the same
// session serialize.
type Service struct {
	Store      session.Store
	Extractor  Extractor
	Dispatcher *Dispatcher
	Catalog    catalogRepo.CatalogRepository
	Backend    ai.CompletionBackend
	Policy     ClarifyPolicy
	Logger     *zap.Logger
}

// TurnResult is the outcome of a single user turn.
type TurnResult struct {
	Message      string
	SessionID    string
	Suggestions  []string
	State        models.ConversationState
	Booking      *models.BookingData
	Availability *models.AvailabilityData
	AIMode       string
	Intent       *models.Intent
}

// HandleTurn processes one user message: extract an intent, fold its slots
// into the session, then either dispatch a booking action or reply
// conversationally. A panic anywhere in the turn degrades to an apology with
// the pre-turn session state preserved.
func (s *Service) HandleTurn(ctx context.Context, sessionID, message string) (result *TurnResult, err error) {
	unlock := s.Store.Lock(sessionID)
	defer unlock()

	timeout := config.TurnTimeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	snapshot := *sess

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("Turn panicked",
				zap.String("session_id", sessionID), zap.Any("panic", r))
			// Locally merged slots survive; anything a half-finished
			// dispatch may have written does not.
			restored := snapshot
			restored.Slots = sess.Slots
			if putErr := s.Store.Put(context.Background(), &restored); putErr != nil {
				s.Logger.Error("Failed to restore session after panic", zap.Error(putErr))
			}
			result = &TurnResult{
				Message:     "I'm sorry, something went wrong on my end. Your booking details are safe, please try that again.",
				SessionID:   sessionID,
				Suggestions: []string{"Check availability", "Check my booking"},
				State:       conversationState(&restored, nil),
				AIMode:      "fallback",
			}
			err = nil
		}
	}()

	intent, extractErr := s.Extractor.Extract(ctx, message, sess.Slots)
	if extractErr != nil {
		s.Logger.Warn("Intent extraction failed, continuing with empty intent",
			zap.String("session_id", sessionID), zap.Error(extractErr))
		intent = models.Intent{}
	}

	// A bare "yes" after the agent proposed a booking is an explicit book.
	if sess.AwaitingConfirmation && intent.Action == models.ActionNone && isAffirmative(message) {
		intent.Action = models.ActionBook
	}

	// Slots merge locally before any outbound call is attempted. Relative
	// values resolve against the turn they were said in; a session that
	// outlives midnight must not shift "tomorrow" to a different day.
	sess.Slots.Merge(intent)
	canonicalizeSlots(&sess.Slots, s.Dispatcher.now())
	sess.LastIntent = &intent
	if intent.Restaurant != "" {
		sess.CurrentRestaurant = intent.Restaurant
	}

	var dispatched *DispatchResult
	aiMode := "rules"

	switch {
	case intent.Action != models.ActionNone && intent.Action != models.ActionInfo:
		sess.AwaitingConfirmation = false
		effective := effectiveIntent(intent.Action, sess.Slots)
		dispatched, err = s.Dispatcher.Dispatch(ctx, effective, sess)
		if err != nil {
			s.Logger.Error("Dispatch failed",
				zap.String("session_id", sessionID),
				zap.String("action", string(intent.Action)), zap.Error(err))
			dispatched = &DispatchResult{
				Message: "I'm sorry, I ran into a problem handling that. Please try again in a moment.",
			}
			err = nil
		}

	case !sess.AwaitingConfirmation && len(sess.Slots.MissingForBooking()) == 0:
		// Everything needed is on file but no action was asked for this
		// turn; propose the booking instead of placing it.
		sess.AwaitingConfirmation = true
		dispatched = &DispatchResult{Message: confirmationPrompt(sess.Slots)}

	default:
		missing := sess.Slots.MissingForBooking()
		if s.Policy != nil && !s.Policy.NeedsClarification(message, missing) {
			// Complete, command-like turn with no action word; no need to
			// spend a model call on it.
			dispatched = &DispatchResult{Message: FallbackReply(sess)}
			aiMode = "fallback"
		} else {
			reply, mode := s.converse(ctx, sess, message)
			aiMode = mode
			dispatched = &DispatchResult{Message: reply}
		}
	}

	sess.History = append(sess.History,
		models.ChatMessage{Role: "user", Content: message},
		models.ChatMessage{Role: "assistant", Content: dispatched.Message},
	)
	pruneHistory(sess)

	if putErr := s.Store.Put(ctx, sess); putErr != nil {
		s.Logger.Error("Failed to persist session",
			zap.String("session_id", sessionID), zap.Error(putErr))
	}

	return &TurnResult{
		Message:      dispatched.Message,
		SessionID:    sessionID,
		Suggestions:  BuildSuggestions(sess, dispatched),
		State:        conversationState(sess, dispatched),
		Booking:      dispatched.Booking,
		Availability: dispatched.Availability,
		AIMode:       aiMode,
		Intent:       &intent,
	}, nil
}

// converse handles the non-action path through the completion backend,
// degrading to a deterministic reply when no backend is reachable.
func (s *Service) converse(ctx context.Context, sess *models.Session, message string) (string, string) {
	if s.Backend == nil || !s.Backend.Available(ctx) {
		return FallbackReply(sess), "fallback"
	}

	reply, err := s.Backend.Complete(ctx,
		BuildConversationContext(s.Catalog, sess), chatHistory(sess), message)
	if err != nil || reply == "" {
		s.Logger.Warn("Completion backend failed, using fallback",
			zap.String("session_id", sess.ID), zap.Error(err))
		return FallbackReply(sess), "fallback"
	}
	return reply, s.Backend.Name()
}

// effectiveIntent pairs this turn's action with the full merged slot set, so
// details given in earlier turns carry into the dispatched operation.
func effectiveIntent(action models.Action, slots models.BookingSlots) models.Intent {
	return models.Intent{
		Action:           action,
		Restaurant:       slots.Restaurant,
		Date:             slots.Date,
		Time:             slots.Time,
		PartySize:        slots.PartySize,
		Name:             slots.Name,
		Email:            slots.Email,
		Phone:            slots.Phone,
		SpecialRequests:  slots.SpecialRequests,
		BookingReference: slots.BookingReference,
	}
}

// canonicalizeSlots rewrites date and time slots into their canonical forms.
// Values that don't normalize are kept raw so the dispatcher can ask about
// them on the turn that uses them.
func canonicalizeSlots(slots *models.BookingSlots, now time.Time) {
	if slots.Date != "" {
		if normalized, ok := NormalizeDate(slots.Date, now); ok {
			slots.Date = normalized
		}
	}
	if slots.Time != "" {
		if normalized, ok := NormalizeTime(slots.Time); ok {
			slots.Time = normalized
		}
	}
}

func confirmationPrompt(slots models.BookingSlots) string {
	return fmt.Sprintf(
		"Just to confirm: a table for %d at %s on %s at %s, under %s (%s). Shall I book it?",
		slots.PartySize, slots.Restaurant, slots.Date, slots.Time, slots.Name, slots.Email)
}

func chatHistory(sess *models.Session) []ai.Message {
	history := make([]ai.Message, 0, len(sess.History))
	for _, msg := range sess.History {
		history = append(history, ai.Message{Role: msg.Role, Content: msg.Content})
	}
	return history
}

// pruneHistory bounds session growth while keeping the opening exchange and
// the recent tail.
func pruneHistory(sess *models.Session) {
	if len(sess.History) <= historyCap {
		return
	}
	pruned := make([]models.ChatMessage, 0, historyHead+historyTail)
	pruned = append(pruned, sess.History[:historyHead]...)
	pruned = append(pruned, sess.History[len(sess.History)-historyTail:]...)
	sess.History = pruned
	sess.Summarized = true
}

func conversationState(sess *models.Session, result *DispatchResult) models.ConversationState {
	state := models.ConversationState{
		CurrentRestaurant: sess.CurrentRestaurant,
		MessageCount:      len(sess.History),
	}
	if result != nil {
		state.HasBookingData = result.Booking != nil
		state.HasAvailabilityData = result.Availability != nil
	}
	return state
}
