package agent

import (
	"fmt"
	"strings"

	catalogRepo "tablebooker/database/repository/catalog"
	"tablebooker/models"
)

// conversationSystemPrompt frames the free-chat completion backend. Booking
// actions never go through the model; it only handles the conversational path.
const conversationSystemPrompt = `You are TableBooker, a friendly and professional restaurant booking assistant.

You help customers check availability, make reservations, and manage their bookings across our partner restaurants.

Guidelines:
- Be warm, concise and helpful. Keep replies to a few sentences.
- When the customer wants to book, ask for any missing detail: restaurant, date, time, party size, name and email.
- Never invent booking references, availability or confirmation details. All real booking actions happen outside this conversation.
- If the customer asks about something unrelated to dining or reservations, gently steer them back to how you can help with their booking.`

// BuildConversationContext augments the system prompt with the catalog and
// what the session already knows, so the model does not re-ask for known slots.
func BuildConversationContext(catalog catalogRepo.CatalogRepository, sess *models.Session) string {
	var b strings.Builder
	b.WriteString(conversationSystemPrompt)

	if restaurants, err := catalog.List(); err == nil && len(restaurants) > 0 {
		b.WriteString("\n\nPartner restaurants:\n")
		for _, rest := range restaurants {
			b.WriteString("- " + rest.Name)
			if rest.Cuisine != "" {
				b.WriteString(" (" + rest.Cuisine)
				if rest.PriceRange != "" {
					b.WriteString(", " + rest.PriceRange)
				}
				b.WriteString(")")
			}
			if rest.Description != "" {
				b.WriteString(": " + rest.Description)
			}
			b.WriteString("\n")
		}
	}

	if known := knownSlotLines(sess.Slots); len(known) > 0 {
		b.WriteString("\nAlready known for this conversation (do not ask again):\n")
		b.WriteString(strings.Join(known, "\n"))
	}

	return b.String()
}

func knownSlotLines(slots models.BookingSlots) []string {
	var lines []string
	if slots.Restaurant != "" {
		lines = append(lines, "- Restaurant: "+slots.Restaurant)
	}
	if slots.Date != "" {
		lines = append(lines, "- Date: "+slots.Date)
	}
	if slots.Time != "" {
		lines = append(lines, "- Time: "+slots.Time)
	}
	if slots.PartySize > 0 {
		lines = append(lines, fmt.Sprintf("- Party size: %d", slots.PartySize))
	}
	if slots.Name != "" {
		lines = append(lines, "- Name: "+slots.Name)
	}
	if slots.Email != "" {
		lines = append(lines, "- Email: "+slots.Email)
	}
	if slots.BookingReference != "" {
		lines = append(lines, "- Booking reference: "+slots.BookingReference)
	}
	return lines
}

// FallbackReply is the deterministic conversational reply used when no
// completion backend is reachable.
func FallbackReply(sess *models.Session) string {
	missing := sess.Slots.MissingForBooking()
	if len(missing) > 0 && len(missing) < len(models.BookingRequiredSlots) {
		switch missing[0] {
		case "restaurant":
			return "Which restaurant would you like to book?"
		case "date":
			return "What date would you like to dine?"
		case "party_size":
			return "How many people will be dining?"
		case "time":
			return "What time would you like?"
		case "name":
			return "What name should I put the booking under?"
		default:
			return "What's the best email for your confirmation?"
		}
	}
	return "I can help you check availability, make a reservation, or look up, change or cancel an existing booking. What would you like to do?"
}
