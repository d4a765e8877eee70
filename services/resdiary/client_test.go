package resdiary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(srv *httptest.Server) *HTTPClient {
	return &HTTPClient{
		baseURL: srv.URL,
		http:    &http.Client{Timeout: 5 * time.Second},
		logger:  zap.NewNop(),
	}
}

func TestCreateBookingWireFormat(t *testing.T) {
	var gotPath, gotAuth string
	var gotForm map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm failed: %v", err)
		}
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"booking_reference":"ABC1234","status":"confirmed","visit_date":"2026-09-15","visit_time":"19:00:00","party_size":4}`))
	}))
	defer srv.Close()

	client := newTestClient(srv)
	record, err := client.CreateBooking(context.Background(), "TheHungryUnicorn", BookingRequest{
		VisitDate: "2026-09-15",
		VisitTime: "19:00:00",
		PartySize: 4,
		Name:      "Jane Smith",
		Email:     "jane@example.com",
	})
	if err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}

	if gotPath != "/api/ConsumerApi/v1/Restaurant/TheHungryUnicorn/BookingWithStripeToken" {
		t.Errorf("path = %q", gotPath)
	}
	if !strings.HasPrefix(gotAuth, "Bearer ") {
		t.Errorf("Authorization = %q, want a bearer token", gotAuth)
	}
	wantFields := map[string]string{
		"VisitDate":           "2026-09-15",
		"VisitTime":           "19:00:00",
		"PartySize":           "4",
		"ChannelCode":         "ONLINE",
		"Customer[FirstName]": "Jane",
		"Customer[Surname]":   "Smith",
		"Customer[Email]":     "jane@example.com",
	}
	for field, want := range wantFields {
		if got := gotForm[field]; len(got) != 1 || got[0] != want {
			t.Errorf("form[%s] = %v, want %q", field, got, want)
		}
	}
	if record.Reference != "ABC1234" {
		t.Errorf("reference = %q, want ABC1234", record.Reference)
	}
}

func TestCreateBookingMissingReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"confirmed"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CreateBooking(context.Background(), "PizzaPalace", BookingRequest{
		VisitDate: "2026-09-15", VisitTime: "19:00:00", PartySize: 2,
	})
	var missing *ErrMissingReference
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want ErrMissingReference", err)
	}
}

func TestRemoteErrorSurfacedVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"No availability for the requested slot"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).CheckAvailability(context.Background(), "SushiZen", "2026-09-15", 2)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message != "No availability for the requested slot" {
		t.Errorf("message = %q, want the remote detail verbatim", apiErr.Message)
	}
}

func TestCancelBookingWireFormat(t *testing.T) {
	var gotPath string
	var gotForm map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseForm()
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"booking_reference":"ABC1234","status":"cancelled"}`))
	}))
	defer srv.Close()

	record, err := newTestClient(srv).CancelBooking(context.Background(), "CafeBistro", "ABC1234", 1)
	if err != nil {
		t.Fatalf("CancelBooking returned error: %v", err)
	}
	if gotPath != "/api/ConsumerApi/v1/Restaurant/CafeBistro/Booking/ABC1234/Cancel" {
		t.Errorf("path = %q", gotPath)
	}
	if got := gotForm["cancellationReasonId"]; len(got) != 1 || got[0] != "1" {
		t.Errorf("form[cancellationReasonId] = %v, want 1", got)
	}
	if !record.Cancelled() {
		t.Errorf("record status = %q, want cancelled", record.Status)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Booking not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetBooking(context.Background(), "PizzaPalace", "ZZZ9999")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
}
