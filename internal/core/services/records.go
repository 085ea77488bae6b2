package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// HandleBooking records a booking request for human follow-up and confirms
// it. The write is best-effort: a store failure is logged and the user
// still gets the confirmation with the support contact.
func (s *assistantService) HandleBooking(ctx context.Context, senderID string, now time.Time) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in booking handler", "panic", r)
			reply = s.replies.Fallback
		}
	}()

	tenant := s.resolver.Resolve(ctx, senderID)

	rec := &domain.BookingRecord{
		ID:        uuid.New().String(),
		SenderID:  senderID,
		Tenant:    tenant,
		Timestamp: now,
		Intent:    "booking_request",
	}
	if s.records != nil {
		if err := s.records.SaveBooking(ctx, rec); err != nil {
			s.logger.Error("booking save failed", "tenant", tenant, "error", err)
		}
	}

	return s.replies.BookingSaved
}

// HandlePricing returns the fixed pricing breakdown.
func (s *assistantService) HandlePricing(_ context.Context, _ string) string {
	return s.replies.Pricing
}

// HandleUrgent records an urgent-support request and confirms it.
// Best-effort like bookings.
func (s *assistantService) HandleUrgent(ctx context.Context, senderID, message string, now time.Time) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in urgent handler", "panic", r)
			reply = s.replies.Fallback
		}
	}()

	tenant := s.resolver.Resolve(ctx, senderID)

	rec := &domain.UrgentRecord{
		ID:        uuid.New().String(),
		SenderID:  senderID,
		Tenant:    tenant,
		Timestamp: now,
		Priority:  "urgent",
		Message:   message,
	}
	if s.records != nil {
		if err := s.records.SaveUrgent(ctx, rec); err != nil {
			s.logger.Error("urgent save failed", "tenant", tenant, "error", err)
		}
	}

	return s.replies.UrgentSaved
}
