package driven

import (
	"context"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// RecordStore persists booking and urgent-support records for follow-up.
// Records expire on their own (see domain TTLs); implementations choose the
// expiry mechanism.
type RecordStore interface {
	// SaveBooking stores a booking record with the booking TTL.
	SaveBooking(ctx context.Context, rec *domain.BookingRecord) error

	// SaveUrgent stores an urgent-support record with the urgent TTL.
	SaveUrgent(ctx context.Context, rec *domain.UrgentRecord) error
}
