// Package resdiary is the client for the external restaurant booking API.
// The API is partitioned per restaurant microsite; every operation names the
// microsite it runs against. Errors coming back from the remote side are
// returned as *APIError values carrying the human-readable message, never as
// panics or swallowed statuses.
package resdiary

import (
	"context"
	"fmt"

	"tablebooker/models"
)

// Client defines the operations the agent needs from the booking API.
type Client interface {
	CheckAvailability(ctx context.Context, restaurant, visitDate string, partySize int) (*models.AvailabilityResult, error)
	CreateBooking(ctx context.Context, restaurant string, req BookingRequest) (*models.BookingRecord, error)
	GetBooking(ctx context.Context, restaurant, reference string) (*models.BookingRecord, error)
	UpdateBooking(ctx context.Context, restaurant, reference string, changes models.BookingChanges) (*models.BookingRecord, error)
	CancelBooking(ctx context.Context, restaurant, reference string, reasonID int) (*models.BookingRecord, error)
}

// BookingRequest is the input for creating a booking.
type BookingRequest struct {
	VisitDate       string // YYYY-MM-DD
	VisitTime       string // HH:MM:SS
	PartySize       int
	Name            string
	Email           string
	Phone           string
	SpecialRequests string
}

// APIError is a non-success response from the booking API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking API error (%d): %s", e.StatusCode, e.Message)
}

// ErrMissingReference marks a remote payload that reported success but carried
// no booking reference. Treated as fatal: partial success with no reference is
// unrecoverable without manual intervention.
type ErrMissingReference struct {
	Operation string
}

func (e *ErrMissingReference) Error() string {
	return fmt.Sprintf("booking API returned no reference for %s", e.Operation)
}
