package postgres

import (
	"context"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore implements driven.RecordStore using PostgreSQL. Unlike the
// Redis backend there is no server-side expiry; expired rows are filtered
// out by expires_at and can be cleaned up out of band.
type RecordStore struct {
	db *DB
}

// NewRecordStore creates a new RecordStore
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

// SaveBooking stores a booking record
func (s *RecordStore) SaveBooking(ctx context.Context, rec *domain.BookingRecord) error {
	query := `
		INSERT INTO bookings (id, sender_id, tenant, intent, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.SenderID,
		rec.Tenant,
		rec.Intent,
		rec.Timestamp,
		rec.Timestamp.Add(domain.BookingTTL),
	)
	return err
}

// SaveUrgent stores an urgent-support record
func (s *RecordStore) SaveUrgent(ctx context.Context, rec *domain.UrgentRecord) error {
	query := `
		INSERT INTO urgent_requests (id, sender_id, tenant, priority, message, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := s.db.ExecContext(ctx, query,
		rec.ID,
		rec.SenderID,
		rec.Tenant,
		rec.Priority,
		rec.Message,
		rec.Timestamp,
		rec.Timestamp.Add(domain.UrgentTTL),
	)
	return err
}
