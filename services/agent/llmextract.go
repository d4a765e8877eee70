package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"tablebooker/models"
	"tablebooker/services/ai"

	"go.uber.org/zap"
)

const extractionSystemPrompt = "You are an intent extraction assistant for a restaurant booking agent. " +
	"Extract the user's intent and details from the message. " +
	"Always respond with a single JSON object only, no prose. Keys: " +
	"action (one of: check_availability, book, get_booking, update_booking, cancel_booking, info), " +
	"restaurant, date, time, party_size (number), name, email, phone, special_requests, " +
	"booking_reference (7 uppercase alphanumeric with at least 1 digit if present). " +
	"If the user asks general info (policies, hours), set action to \"info\". " +
	"If not sure about a field, leave it null."

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// LLMExtractor asks a text-completion backend to emit the intent as JSON.
// Every field the model returns is validated and coerced before it is
// trusted; anything malformed is dropped rather than propagated.
type LLMExtractor struct {
	Backend ai.CompletionBackend
	Logger  *zap.Logger
}

// Extract prompts the backend and parses its reply. An error (or an empty
// result) signals the caller to fall back to the rule-based extractor.
func (e *LLMExtractor) Extract(ctx context.Context, utterance string, slots models.BookingSlots) (models.Intent, error) {
	userPrompt := "Conversation context: " + slotContext(slots) + "\n" +
		"User message: " + utterance + "\n" +
		"Return JSON only."

	raw, err := e.Backend.Complete(ctx, extractionSystemPrompt, nil, userPrompt)
	if err != nil {
		return models.Intent{}, fmt.Errorf("llm intent extraction failed: %w", err)
	}

	intent, err := parseLLMIntent(raw)
	if err != nil {
		e.Logger.Debug("Discarding unparseable LLM intent", zap.Error(err))
		return models.Intent{}, err
	}
	return intent, nil
}

// slotContext summarizes the already-known slots for the model.
func slotContext(slots models.BookingSlots) string {
	var parts []string
	add := func(key, value string) {
		if value != "" {
			parts = append(parts, key+"="+value)
		}
	}
	add("restaurant", slots.Restaurant)
	add("date", slots.Date)
	add("time", slots.Time)
	if slots.PartySize > 0 {
		parts = append(parts, "party_size="+strconv.Itoa(slots.PartySize))
	}
	add("name", slots.Name)
	add("email", slots.Email)
	add("booking_reference", slots.BookingReference)
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

type llmIntentPayload struct {
	Action           string          `json:"action"`
	Restaurant       string          `json:"restaurant"`
	Date             string          `json:"date"`
	Time             string          `json:"time"`
	PartySize        json.RawMessage `json:"party_size"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	SpecialRequests  string          `json:"special_requests"`
	BookingReference string          `json:"booking_reference"`
}

// parseLLMIntent locates the JSON object in the model's reply and coerces it
// into a validated Intent.
func parseLLMIntent(raw string) (models.Intent, error) {
	blob := jsonObjectRe.FindString(raw)
	if blob == "" {
		return models.Intent{}, fmt.Errorf("no JSON object in completion")
	}

	var payload llmIntentPayload
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return models.Intent{}, fmt.Errorf("failed to decode completion JSON: %w", err)
	}

	intent := models.Intent{
		Restaurant:      strings.TrimSpace(payload.Restaurant),
		Date:            strings.TrimSpace(payload.Date),
		Time:            strings.TrimSpace(payload.Time),
		Name:            strings.TrimSpace(payload.Name),
		Email:           strings.TrimSpace(payload.Email),
		Phone:           strings.TrimSpace(payload.Phone),
		SpecialRequests: strings.TrimSpace(payload.SpecialRequests),
	}

	if action := models.Action(strings.TrimSpace(payload.Action)); models.KnownAction(action) {
		intent.Action = action
	}
	intent.PartySize = coercePartySize(payload.PartySize)
	intent.BookingReference = CanonicalReference(payload.BookingReference)

	if intent.Empty() {
		return models.Intent{}, fmt.Errorf("completion carried no usable fields")
	}
	return intent, nil
}

// coercePartySize accepts a JSON number or a numeric string; anything else
// collapses to zero (absent).
func coercePartySize(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// ChainExtractor tries a primary extractor and falls back to a secondary one
// when the primary errors out or produces nothing. The LLM-first, rules-second
// chain is the resilience property that keeps the agent working when the
// completion backend is down.
type ChainExtractor struct {
	Primary  Extractor
	Fallback Extractor
}

func (c *ChainExtractor) Extract(ctx context.Context, utterance string, slots models.BookingSlots) (models.Intent, error) {
	intent, err := c.Primary.Extract(ctx, utterance, slots)
	if err == nil && !intent.Empty() {
		return intent, nil
	}
	return c.Fallback.Extract(ctx, utterance, slots)
}
