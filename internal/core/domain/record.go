package domain

import "time"

// Record retention windows. Records are follow-up signals, not durable
// bookkeeping, so they expire.
const (
	BookingTTL = 1 * time.Hour
	UrgentTTL  = 30 * time.Minute
)

// BookingRecord captures a booking request for human follow-up.
// Writes are best-effort: losing one degrades service but never fails
// the user-facing reply.
type BookingRecord struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Tenant    string    `json:"tenant"`
	Timestamp time.Time `json:"timestamp"`
	Intent    string    `json:"intent"`
}

// UrgentRecord captures an urgent-support request.
type UrgentRecord struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Tenant    string    `json:"tenant"`
	Timestamp time.Time `json:"timestamp"`
	Priority  string    `json:"priority"`
	Message   string    `json:"message"`
}
