package resdiary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tablebooker/config"
	"tablebooker/models"
	"tablebooker/utils"

	"go.uber.org/zap"
)

const consumerAPIPrefix = "/api/ConsumerApi/v1/Restaurant"

// HTTPClient talks to the consumer booking API over HTTP with the
// form-encoded wire contract the API expects.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewHTTPClient creates a booking API client from the loaded configuration.
func NewHTTPClient(logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: config.AppConfig.BookingAPIBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build booking API request: %w", err)
	}

	token, err := utils.BookingAPIToken()
	if err != nil {
		return fmt.Errorf("failed to obtain booking API token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("booking API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read booking API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Warn("Booking API returned non-OK status",
			zap.Int("status", resp.StatusCode), zap.String("path", path))
		return &APIError{StatusCode: resp.StatusCode, Message: remoteMessage(raw, resp.StatusCode)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode booking API response: %w", err)
	}
	return nil
}

// remoteMessage pulls a human-readable message out of an error payload,
// falling back to the raw body or the status code.
func remoteMessage(raw []byte, status int) string {
	var payload struct {
		Detail  string `json:"detail"`
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		for _, msg := range []string{payload.Detail, payload.Error, payload.Message} {
			if msg != "" {
				return msg
			}
		}
	}
	if trimmed := strings.TrimSpace(string(raw)); trimmed != "" && len(trimmed) < 300 {
		return trimmed
	}
	return fmt.Sprintf("API error: %d", status)
}

// CheckAvailability searches open slots for a date and party size.
func (c *HTTPClient) CheckAvailability(ctx context.Context, restaurant, visitDate string, partySize int) (*models.AvailabilityResult, error) {
	form := url.Values{}
	form.Set("VisitDate", visitDate)
	form.Set("PartySize", strconv.Itoa(partySize))
	form.Set("ChannelCode", "ONLINE")

	var result models.AvailabilityResult
	path := fmt.Sprintf("%s/%s/AvailabilitySearch", consumerAPIPrefix, restaurant)
	if err := c.do(ctx, http.MethodPost, path, form, &result); err != nil {
		return nil, err
	}
	result.Restaurant = restaurant
	result.VisitDate = visitDate
	result.PartySize = partySize
	return &result, nil
}

// CreateBooking places a new booking.
func (c *HTTPClient) CreateBooking(ctx context.Context, restaurant string, req BookingRequest) (*models.BookingRecord, error) {
	form := url.Values{}
	form.Set("VisitDate", req.VisitDate)
	form.Set("VisitTime", req.VisitTime)
	form.Set("PartySize", strconv.Itoa(req.PartySize))
	form.Set("ChannelCode", "ONLINE")

	if req.Name != "" {
		first, surname := splitName(req.Name)
		form.Set("Customer[FirstName]", first)
		form.Set("Customer[Surname]", surname)
	}
	if req.Email != "" {
		form.Set("Customer[Email]", req.Email)
	}
	if req.Phone != "" {
		form.Set("Customer[Mobile]", req.Phone)
	}
	if req.SpecialRequests != "" {
		form.Set("SpecialRequests", req.SpecialRequests)
	}

	var record models.BookingRecord
	path := fmt.Sprintf("%s/%s/BookingWithStripeToken", consumerAPIPrefix, restaurant)
	if err := c.do(ctx, http.MethodPost, path, form, &record); err != nil {
		return nil, err
	}
	if record.Reference == "" {
		return nil, &ErrMissingReference{Operation: "create_booking"}
	}
	return &record, nil
}

// GetBooking fetches a booking by reference.
func (c *HTTPClient) GetBooking(ctx context.Context, restaurant, reference string) (*models.BookingRecord, error) {
	var record models.BookingRecord
	path := fmt.Sprintf("%s/%s/Booking/%s", consumerAPIPrefix, restaurant, reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &record); err != nil {
		return nil, err
	}
	if record.Reference == "" {
		return nil, &ErrMissingReference{Operation: "get_booking"}
	}
	return &record, nil
}

// UpdateBooking applies the given changes to an existing booking.
func (c *HTTPClient) UpdateBooking(ctx context.Context, restaurant, reference string, changes models.BookingChanges) (*models.BookingRecord, error) {
	form := url.Values{}
	if changes.Date != "" {
		form.Set("VisitDate", changes.Date)
	}
	if changes.Time != "" {
		form.Set("VisitTime", changes.Time)
	}
	if changes.PartySize > 0 {
		form.Set("PartySize", strconv.Itoa(changes.PartySize))
	}
	if changes.SpecialRequests != "" {
		form.Set("SpecialRequests", changes.SpecialRequests)
	}

	var record models.BookingRecord
	path := fmt.Sprintf("%s/%s/Booking/%s", consumerAPIPrefix, restaurant, reference)
	if err := c.do(ctx, http.MethodPatch, path, form, &record); err != nil {
		return nil, err
	}
	if record.Reference == "" {
		return nil, &ErrMissingReference{Operation: "update_booking"}
	}
	return &record, nil
}

// CancelBooking cancels an existing booking.
func (c *HTTPClient) CancelBooking(ctx context.Context, restaurant, reference string, reasonID int) (*models.BookingRecord, error) {
	form := url.Values{}
	form.Set("micrositeName", restaurant)
	form.Set("bookingReference", reference)
	form.Set("cancellationReasonId", strconv.Itoa(reasonID))

	var record models.BookingRecord
	path := fmt.Sprintf("%s/%s/Booking/%s/Cancel", consumerAPIPrefix, restaurant, reference)
	if err := c.do(ctx, http.MethodPost, path, form, &record); err != nil {
		return nil, err
	}
	if record.Reference == "" {
		return nil, &ErrMissingReference{Operation: "cancel_booking"}
	}
	return &record, nil
}

// splitName splits a free-form name into first name and surname.
func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
