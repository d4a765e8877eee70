package models

// ReminderPayload is the task payload for a pre-visit booking reminder. It
// carries enough to re-fetch the booking at fire time, so a reminder for a
// booking that was cancelled in the meantime is dropped silently.
type ReminderPayload struct {
	Microsite     string `json:"microsite"`
	Reference     string `json:"reference"`
	VisitDate     string `json:"visit_date"` // YYYY-MM-DD
	VisitTime     string `json:"visit_time"` // HH:MM:SS
	PartySize     int    `json:"party_size"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}
