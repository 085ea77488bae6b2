package driving

import (
	"context"
	"time"
)

// AssistantService is the inbound contract for the dialogue-management
// runtime. Every method returns the reply text to show the end user and
// never returns an error: all failures degrade to a fixed reply.
type AssistantService interface {
	// Handle answers a user utterance with tenant-scoped retrieval and
	// bounded generation.
	Handle(ctx context.Context, senderID, query string, now time.Time) string

	// HandleBooking records a booking request and confirms it.
	HandleBooking(ctx context.Context, senderID string, now time.Time) string

	// HandlePricing returns the fixed pricing breakdown.
	HandlePricing(ctx context.Context, senderID string) string

	// HandleUrgent records an urgent-support request and confirms it.
	HandleUrgent(ctx context.Context, senderID, message string, now time.Time) string
}
