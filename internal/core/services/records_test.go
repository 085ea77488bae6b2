package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHandleBooking(t *testing.T) {
	f := newAssistantFixture(time.Second)
	_ = f.tenants.SetTenant(context.Background(), "wa:1001", "acme")
	now := time.Now()

	reply := f.svc.HandleBooking(context.Background(), "wa:1001", now)
	if reply != f.replies.BookingSaved {
		t.Errorf("expected booking confirmation, got %q", reply)
	}

	bookings := f.records.Bookings()
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking record, got %d", len(bookings))
	}
	rec := bookings[0]
	if rec.SenderID != "wa:1001" {
		t.Errorf("expected sender wa:1001, got %q", rec.SenderID)
	}
	if rec.Tenant != "acme" {
		t.Errorf("expected tenant acme, got %q", rec.Tenant)
	}
	if rec.Intent != "booking_request" {
		t.Errorf("expected intent booking_request, got %q", rec.Intent)
	}
	if !rec.Timestamp.Equal(now) {
		t.Errorf("expected timestamp %v, got %v", now, rec.Timestamp)
	}
	if rec.ID == "" {
		t.Error("expected a record ID")
	}
}

func TestHandleBookingStoreFailureStillConfirms(t *testing.T) {
	f := newAssistantFixture(time.Second)
	f.records.SetError(errors.New("redis down"))

	reply := f.svc.HandleBooking(context.Background(), "wa:1001", time.Now())
	if reply != f.replies.BookingSaved {
		t.Errorf("best-effort write must not change the reply, got %q", reply)
	}
}

func TestHandlePricing(t *testing.T) {
	f := newAssistantFixture(time.Second)

	reply := f.svc.HandlePricing(context.Background(), "wa:1001")
	if reply != f.replies.Pricing {
		t.Errorf("expected fixed pricing reply, got %q", reply)
	}
}

func TestHandleUrgent(t *testing.T) {
	f := newAssistantFixture(time.Second)
	now := time.Now()

	reply := f.svc.HandleUrgent(context.Background(), "wa:1001", "the bot is down!", now)
	if reply != f.replies.UrgentSaved {
		t.Errorf("expected urgent confirmation, got %q", reply)
	}

	urgents := f.records.Urgents()
	if len(urgents) != 1 {
		t.Fatalf("expected 1 urgent record, got %d", len(urgents))
	}
	rec := urgents[0]
	if rec.Priority != "urgent" {
		t.Errorf("expected priority urgent, got %q", rec.Priority)
	}
	if rec.Message != "the bot is down!" {
		t.Errorf("expected message preserved, got %q", rec.Message)
	}
	if rec.Tenant != "default" {
		t.Errorf("expected default tenant for unmapped sender, got %q", rec.Tenant)
	}
}

func TestHandleUrgentStoreFailureStillConfirms(t *testing.T) {
	f := newAssistantFixture(time.Second)
	f.records.SetError(errors.New("redis down"))

	reply := f.svc.HandleUrgent(context.Background(), "wa:1001", "help", time.Now())
	if reply != f.replies.UrgentSaved {
		t.Errorf("best-effort write must not change the reply, got %q", reply)
	}
}
