package agent

import (
	"testing"

	"tablebooker/models"
)

func TestParseLLMIntent(t *testing.T) {
	raw := "Here is the extraction:\n```json\n" +
		`{"action":"book","restaurant":"PizzaPalace","date":"2026-09-15","time":"19:00","party_size":"4","name":"Jane Smith","booking_reference":"tonight"}` +
		"\n```"
	intent, err := parseLLMIntent(raw)
	if err != nil {
		t.Fatalf("parseLLMIntent returned error: %v", err)
	}

	if intent.Action != models.ActionBook {
		t.Errorf("Action = %q, want book", intent.Action)
	}
	if intent.PartySize != 4 {
		t.Errorf("PartySize = %d, want 4 (numeric string coerced)", intent.PartySize)
	}
	if intent.BookingReference != "" {
		t.Errorf("BookingReference = %q, want dropped (excluded word)", intent.BookingReference)
	}
}

func TestParseLLMIntentRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"Sorry, I can't help with that.",
		`{"action":"teleport"}`,
		`{"action":null,"restaurant":null}`,
	} {
		if _, err := parseLLMIntent(raw); err == nil {
			t.Errorf("parseLLMIntent(%q) = nil error, want rejection", raw)
		}
	}
}

func TestCoercePartySize(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`4`, 4},
		{`"4"`, 4},
		{`" 6 "`, 6},
		{`0`, 0},
		{`-2`, 0},
		{`"four"`, 0},
		{`null`, 0},
	}
	for _, tt := range tests {
		if got := coercePartySize([]byte(tt.raw)); got != tt.want {
			t.Errorf("coercePartySize(%s) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
