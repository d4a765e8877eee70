package models

import (
	"reflect"
	"testing"
)

func TestBookingSlotsMerge(t *testing.T) {
	slots := BookingSlots{
		Restaurant: "PizzaPalace",
		Date:       "2026-09-15",
		PartySize:  4,
		Name:       "Jane Smith",
	}

	// Present values overwrite, absent values leave existing slots alone.
	slots.Merge(Intent{Date: "2026-09-16", Time: "19:00:00"})

	if slots.Restaurant != "PizzaPalace" {
		t.Errorf("Restaurant = %q, want PizzaPalace (absent value must not erase)", slots.Restaurant)
	}
	if slots.Date != "2026-09-16" {
		t.Errorf("Date = %q, want 2026-09-16 (present value must overwrite)", slots.Date)
	}
	if slots.Time != "19:00:00" {
		t.Errorf("Time = %q, want 19:00:00", slots.Time)
	}
	if slots.PartySize != 4 || slots.Name != "Jane Smith" {
		t.Errorf("untouched slots changed: PartySize=%d Name=%q", slots.PartySize, slots.Name)
	}
}

func TestBookingSlotsMergeEmptyIntent(t *testing.T) {
	slots := BookingSlots{Restaurant: "SushiZen", Email: "jane@example.com"}
	before := slots
	slots.Merge(Intent{})
	if slots != before {
		t.Errorf("empty intent changed slots: %+v -> %+v", before, slots)
	}
}

func TestMissingForBooking(t *testing.T) {
	tests := []struct {
		name  string
		slots BookingSlots
		want  []string
	}{
		{
			"nothing filled",
			BookingSlots{},
			[]string{"restaurant", "date", "party_size", "time", "name", "email"},
		},
		{
			"partially filled",
			BookingSlots{Restaurant: "PizzaPalace", Date: "2026-09-15", PartySize: 2},
			[]string{"time", "name", "email"},
		},
		{
			"complete",
			BookingSlots{
				Restaurant: "PizzaPalace", Date: "2026-09-15", Time: "19:00:00",
				PartySize: 2, Name: "Jane Smith", Email: "jane@example.com",
			},
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.slots.MissingForBooking()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MissingForBooking() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReferenceCancelled(t *testing.T) {
	sess := NewSession("s1")
	if sess.ReferenceCancelled("ABC1234") {
		t.Error("fresh session must not report any reference as cancelled")
	}

	sess.LastActionResult = &ActionResult{
		Action: ActionCancelBooking, Reference: "ABC1234", Status: "cancelled",
	}
	if !sess.ReferenceCancelled("ABC1234") {
		t.Error("reference with a cancelled outcome must report terminal")
	}
	if sess.ReferenceCancelled("XYZ9876") {
		t.Error("other references must not be affected")
	}

	sess.LastActionResult.Status = "confirmed"
	if sess.ReferenceCancelled("ABC1234") {
		t.Error("non-cancelled outcome must not report terminal")
	}
}
