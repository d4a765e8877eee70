package models

// ChatRequest is the payload coming from the frontend into /api/chat.
type ChatRequest struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// ConversationState is the lightweight session snapshot returned with every reply.
type ConversationState struct {
	CurrentRestaurant   string `json:"current_restaurant,omitempty"`
	MessageCount        int    `json:"message_count"`
	HasBookingData      bool   `json:"has_booking_data"`
	HasAvailabilityData bool   `json:"has_availability_data"`
}

// ChatResponse is what the chat handler returns to the frontend.
type ChatResponse struct {
	Message           string             `json:"message"`
	SessionID         string             `json:"session_id"`
	Suggestions       []string           `json:"suggestions"`
	ConversationState ConversationState  `json:"conversation_state"`
	BookingData       *BookingData       `json:"booking_data,omitempty"`
	AvailabilityData  *AvailabilityData  `json:"availability_data,omitempty"`
	AIMode            string             `json:"ai_mode"`
	Intent            *Intent            `json:"intent,omitempty"`
}

// ChatMessage is a single entry in the per-session conversation history.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}
