package agent

import "tablebooker/models"

// BuildSuggestions returns up to three quick-reply chips matching where the
// conversation stands.
func BuildSuggestions(sess *models.Session, result *DispatchResult) []string {
	if result != nil && result.Booking != nil {
		switch result.Booking.Status {
		case "cancelled":
			return []string{"Make a new booking", "Check availability", "Browse restaurants"}
		case "updated":
			return []string{"Check my booking", "Cancel my booking"}
		default:
			return []string{"Check my booking", "Change my booking", "Cancel my booking"}
		}
	}

	if result != nil && result.Availability != nil {
		if len(result.Availability.Restaurants) > 1 {
			return []string{"Book the first one", "Try another date"}
		}
		return []string{"Book a table", "Try another date", "Try another restaurant"}
	}

	missing := sess.Slots.MissingForBooking()
	if len(missing) > 0 && len(missing) < len(models.BookingRequiredSlots) {
		switch missing[0] {
		case "date":
			return []string{"Tonight", "Tomorrow", "This Friday"}
		case "party_size":
			return []string{"2 people", "4 people", "6 people"}
		case "time":
			return []string{"7pm", "7:30pm", "8pm"}
		}
		return nil
	}

	return []string{"Check availability", "Book a table", "Check my booking"}
}
