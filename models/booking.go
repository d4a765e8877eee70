package models

// TimeSlot is a single bookable slot as reported by the availability search.
type TimeSlot struct {
	Time      string `json:"time"` // HH:MM:SS
	Available bool   `json:"available"`
}

// AvailabilityResult is the booking API's answer to an availability search.
type AvailabilityResult struct {
	Restaurant     string     `json:"restaurant"`
	VisitDate      string     `json:"visit_date"`
	PartySize      int        `json:"party_size"`
	AvailableSlots []TimeSlot `json:"available_slots"`
}

// OpenTimes returns the times of the slots that are actually available.
func (a AvailabilityResult) OpenTimes() []string {
	var times []string
	for _, slot := range a.AvailableSlots {
		if slot.Available {
			times = append(times, slot.Time)
		}
	}
	return times
}

// HasTime reports whether the given canonical time is open.
func (a AvailabilityResult) HasTime(t string) bool {
	for _, slot := range a.AvailableSlots {
		if slot.Available && slot.Time == t {
			return true
		}
	}
	return false
}

// Customer carries the contact details attached to a booking.
type Customer struct {
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
}

// FullName joins first name and surname for display.
func (c Customer) FullName() string {
	if c.Surname == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.Surname
}

// BookingRecord is a booking as owned by the remote booking API. The agent
// never persists it; it is read back to verify side effects and to block
// redundant operations on terminal-state bookings.
type BookingRecord struct {
	Reference          string   `json:"booking_reference"`
	Status             string   `json:"status"` // confirmed | cancelled | updated
	VisitDate          string   `json:"visit_date"`
	VisitTime          string   `json:"visit_time"`
	PartySize          int      `json:"party_size"`
	Customer           Customer `json:"customer"`
	SpecialRequests    string   `json:"special_requests,omitempty"`
	CancelledAt        string   `json:"cancelled_at,omitempty"`
	CancellationReason string   `json:"cancellation_reason,omitempty"`
	UpdatedAt          string   `json:"updated_at,omitempty"`
}

// Cancelled reports whether the record is in its terminal state.
func (r BookingRecord) Cancelled() bool {
	return r.Status == "cancelled"
}

// BookingChanges is the set of mutable fields for an update operation.
type BookingChanges struct {
	Date            string `json:"date,omitempty"` // canonical YYYY-MM-DD
	Time            string `json:"time,omitempty"` // canonical HH:MM:SS
	PartySize       int    `json:"party_size,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

// Empty reports whether no change was requested.
func (c BookingChanges) Empty() bool {
	return c.Date == "" && c.Time == "" && c.PartySize == 0 && c.SpecialRequests == ""
}

// BookingData is the dispatcher outcome surfaced to the caller alongside the
// natural-language reply.
type BookingData struct {
	Reference    string            `json:"reference"`
	Status       string            `json:"status"`
	Restaurant   string            `json:"restaurant"`
	Date         string            `json:"date,omitempty"`
	Time         string            `json:"time,omitempty"`
	PartySize    int               `json:"party_size,omitempty"`
	CustomerName string            `json:"customer_name,omitempty"`
	Changes      map[string]string `json:"changes,omitempty"`
	Verified     bool              `json:"verified,omitempty"`
}

// RestaurantAvailability pairs a catalog restaurant with its open times.
type RestaurantAvailability struct {
	Restaurant     Restaurant `json:"restaurant"`
	AvailableTimes []string   `json:"available_times"`
}

// AvailabilityData is the availability outcome surfaced to the caller.
type AvailabilityData struct {
	Date           string                            `json:"date"`
	PartySize      int                               `json:"party_size"`
	Restaurant     string                            `json:"restaurant,omitempty"`
	AvailableTimes []string                          `json:"available_times,omitempty"`
	Restaurants    map[string]RestaurantAvailability `json:"available_restaurants,omitempty"`
}
