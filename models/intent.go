package models

// Action is the extracted per-turn booking action.
type Action string

const (
	ActionNone              Action = ""
	ActionCheckAvailability Action = "check_availability"
	ActionBook              Action = "book"
	ActionGetBooking        Action = "get_booking"
	ActionUpdateBooking     Action = "update_booking"
	ActionCancelBooking     Action = "cancel_booking"
	ActionInfo              Action = "info"
)

// KnownAction reports whether a is one of the recognized booking actions.
func KnownAction(a Action) bool {
	switch a {
	case ActionCheckAvailability, ActionBook, ActionGetBooking,
		ActionUpdateBooking, ActionCancelBooking, ActionInfo:
		return true
	}
	return false
}

// Mutating reports whether dispatching a reaches out to the booking API.
func (a Action) Mutating() bool {
	switch a {
	case ActionBook, ActionUpdateBooking, ActionCancelBooking:
		return true
	}
	return false
}

// Intent is the structured extraction result for a single utterance.
// It is created fresh each turn and read-only after creation; the session
// merge policy folds it into the accumulated booking slots.
type Intent struct {
	Action           Action `json:"action,omitempty"`
	Restaurant       string `json:"restaurant,omitempty"`
	Date             string `json:"date,omitempty"` // raw text, pre-normalization
	Time             string `json:"time,omitempty"` // raw text, pre-normalization
	PartySize        int    `json:"party_size,omitempty"`
	Name             string `json:"name,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	SpecialRequests  string `json:"special_requests,omitempty"`
	BookingReference string `json:"booking_reference,omitempty"`
}

// Empty reports whether the intent carries neither an action nor any slot.
func (i Intent) Empty() bool {
	return i.Action == ActionNone && i.Restaurant == "" && i.Date == "" &&
		i.Time == "" && i.PartySize == 0 && i.Name == "" && i.Email == "" &&
		i.Phone == "" && i.SpecialRequests == "" && i.BookingReference == ""
}
