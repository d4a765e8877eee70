package models

import "time"

// BookingSlots is the accumulated slot set for a booking in progress.
// Slots fill monotonically: a later turn's non-empty value overwrites an
// earlier one, empty values never erase existing ones.
type BookingSlots struct {
	Restaurant       string `json:"restaurant,omitempty"`
	Date             string `json:"date,omitempty"`
	Time             string `json:"time,omitempty"`
	PartySize        int    `json:"party_size,omitempty"`
	Name             string `json:"name,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	SpecialRequests  string `json:"special_requests,omitempty"`
	BookingReference string `json:"booking_reference,omitempty"`
}

// Merge folds a freshly extracted intent into the slot set, right-biased:
// present values win, absent values leave the session untouched.
func (s *BookingSlots) Merge(intent Intent) {
	if intent.Restaurant != "" {
		s.Restaurant = intent.Restaurant
	}
	if intent.Date != "" {
		s.Date = intent.Date
	}
	if intent.Time != "" {
		s.Time = intent.Time
	}
	if intent.PartySize > 0 {
		s.PartySize = intent.PartySize
	}
	if intent.Name != "" {
		s.Name = intent.Name
	}
	if intent.Email != "" {
		s.Email = intent.Email
	}
	if intent.Phone != "" {
		s.Phone = intent.Phone
	}
	if intent.SpecialRequests != "" {
		s.SpecialRequests = intent.SpecialRequests
	}
	if intent.BookingReference != "" {
		s.BookingReference = intent.BookingReference
	}
}

// BookingRequiredSlots lists the slots a booking cannot be placed without.
var BookingRequiredSlots = []string{"restaurant", "date", "time", "party_size", "name", "email"}

// MissingForBooking returns the required slots not yet populated, in the
// order the agent asks for them.
func (s BookingSlots) MissingForBooking() []string {
	var missing []string
	if s.Restaurant == "" {
		missing = append(missing, "restaurant")
	}
	if s.Date == "" {
		missing = append(missing, "date")
	}
	if s.PartySize == 0 {
		missing = append(missing, "party_size")
	}
	if s.Time == "" {
		missing = append(missing, "time")
	}
	if s.Name == "" {
		missing = append(missing, "name")
	}
	if s.Email == "" {
		missing = append(missing, "email")
	}
	return missing
}

// ActionResult records the most recent dispatcher outcome, kept for
// idempotency checks such as "already cancelled".
type ActionResult struct {
	Action    Action    `json:"action"`
	Reference string    `json:"reference,omitempty"`
	Status    string    `json:"status,omitempty"`
	At        time.Time `json:"at"`
}

// Session is the durable per-conversation state.
type Session struct {
	ID                   string        `json:"id"`
	CreatedAt            time.Time     `json:"created_at"`
	Slots                BookingSlots  `json:"slots"`
	AwaitingConfirmation bool          `json:"awaiting_confirmation"`
	LastActionResult     *ActionResult `json:"last_action_result,omitempty"`
	LastIntent           *Intent       `json:"last_intent,omitempty"`
	CurrentRestaurant    string        `json:"current_restaurant,omitempty"`
	History              []ChatMessage `json:"history,omitempty"`
	Summarized           bool          `json:"summarized,omitempty"`
}

// NewSession creates a fresh session for the given id.
func NewSession(id string) *Session {
	return &Session{ID: id, CreatedAt: time.Now()}
}

// ReferenceCancelled reports whether the given reference is already known to
// be cancelled from a previous dispatcher outcome. Cancelled bookings are
// terminal: further update/cancel requests are answered locally.
func (s *Session) ReferenceCancelled(reference string) bool {
	return s.LastActionResult != nil &&
		s.LastActionResult.Reference == reference &&
		s.LastActionResult.Status == "cancelled"
}
