package agent

import (
	"context"
	"testing"

	catalogRepo "tablebooker/database/repository/catalog"
	"tablebooker/models"
)

func newRuleExtractor() *RuleExtractor {
	return &RuleExtractor{Catalog: catalogRepo.NewStaticCatalogRepo()}
}

func TestRuleExtractorActionPriority(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      models.Action
	}{
		{"plain booking", "I'd like to book a table", models.ActionBook},
		{"availability", "Do you have availability on Friday?", models.ActionCheckAvailability},
		{"lookup", "Can you check my booking?", models.ActionGetBooking},
		{"update", "I need to change my reservation", models.ActionUpdateBooking},
		{"cancel", "Please cancel my booking", models.ActionCancelBooking},
		{"cancel wins over book", "Cancel my booking and book a new table", models.ActionCancelBooking},
		{"update wins over lookup", "Change my booking to 8pm", models.ActionUpdateBooking},
		{"no action", "Hello there", models.ActionNone},
	}
	extractor := newRuleExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := extractor.Extract(context.Background(), tt.utterance, models.BookingSlots{})
			if err != nil {
				t.Fatalf("Extract(%q) returned error: %v", tt.utterance, err)
			}
			if intent.Action != tt.want {
				t.Errorf("Extract(%q).Action = %q, want %q", tt.utterance, intent.Action, tt.want)
			}
		})
	}
}

func TestRuleExtractorSlots(t *testing.T) {
	extractor := newRuleExtractor()
	intent, err := extractor.Extract(context.Background(),
		"Book a table at Pizza Palace for 4 people tomorrow at 7pm", models.BookingSlots{})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if intent.Action != models.ActionBook {
		t.Errorf("Action = %q, want %q", intent.Action, models.ActionBook)
	}
	if intent.Restaurant != "PizzaPalace" {
		t.Errorf("Restaurant = %q, want PizzaPalace", intent.Restaurant)
	}
	if intent.Date != "tomorrow" {
		t.Errorf("Date = %q, want tomorrow", intent.Date)
	}
	if intent.Time != "7pm" {
		t.Errorf("Time = %q, want 7pm", intent.Time)
	}
	if intent.PartySize != 4 {
		t.Errorf("PartySize = %d, want 4", intent.PartySize)
	}
	if intent.Name != "" {
		t.Errorf("Name = %q, want empty (restaurant name is not a customer)", intent.Name)
	}
}

func TestRuleExtractorContactDetails(t *testing.T) {
	extractor := newRuleExtractor()
	intent, err := extractor.Extract(context.Background(),
		"My name is Jane Smith, email jane.smith@example.com, phone is 07700 900123", models.BookingSlots{})
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	if intent.Name != "Jane Smith" {
		t.Errorf("Name = %q, want Jane Smith", intent.Name)
	}
	if intent.Email != "jane.smith@example.com" {
		t.Errorf("Email = %q, want jane.smith@example.com", intent.Email)
	}
	if intent.Phone == "" {
		t.Errorf("Phone = %q, want non-empty", intent.Phone)
	}
}

func TestRuleExtractorBookingReference(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		want      string
	}{
		{"labelled reference", "My booking reference is ABC1234", "ABC1234"},
		{"bare reference", "Check XYZ9876 please", "XYZ9876"},
		{"lowercase input", "reference is abc1234", "ABC1234"},
		{"hash prefix", "Cancel #DEF4567", "DEF4567"},
		{"common word excluded", "I will be there TONIGHT", ""},
		{"all letters excluded", "Meet at ABCDEFG", ""},
	}
	extractor := newRuleExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := extractor.Extract(context.Background(), tt.utterance, models.BookingSlots{})
			if err != nil {
				t.Fatalf("Extract(%q) returned error: %v", tt.utterance, err)
			}
			if intent.BookingReference != tt.want {
				t.Errorf("Extract(%q).BookingReference = %q, want %q", tt.utterance, intent.BookingReference, tt.want)
			}
		})
	}
}

func TestCanonicalReference(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ABC1234", "ABC1234"},
		{"abc1234", "ABC1234"},
		{" abc1234 ", "ABC1234"},
		{"1234567", "1234567"},
		{"ABCDEFG", ""}, // no digit
		{"TONIGHT", ""}, // excluded word
		{"AB12", ""},    // too short
		{"ABC12345", ""},
	}
	for _, tt := range tests {
		if got := CanonicalReference(tt.input); got != tt.want {
			t.Errorf("CanonicalReference(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRuleExtractorRestaurantByKeyword(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{"Any tables at the unicorn place?", "TheHungryUnicorn"},
		{"Somewhere with sushi tonight", "SushiZen"},
		{"A nice italian dinner", "PizzaPalace"},
		{"Just a table anywhere", ""},
	}
	extractor := newRuleExtractor()
	for _, tt := range tests {
		intent, err := extractor.Extract(context.Background(), tt.utterance, models.BookingSlots{})
		if err != nil {
			t.Fatalf("Extract(%q) returned error: %v", tt.utterance, err)
		}
		if intent.Restaurant != tt.want {
			t.Errorf("Extract(%q).Restaurant = %q, want %q", tt.utterance, intent.Restaurant, tt.want)
		}
	}
}
