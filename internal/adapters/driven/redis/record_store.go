package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RecordStore = (*RecordStore)(nil)

const (
	bookingPrefix = "booking:"
	urgentPrefix  = "urgent:"
)

// RecordStore implements driven.RecordStore using Redis. Records are
// written with SETEX so expiry happens server side, no sweeper needed.
type RecordStore struct {
	client *redis.Client
}

// NewRecordStore creates a new Redis-backed RecordStore
func NewRecordStore(client *redis.Client) *RecordStore {
	return &RecordStore{client: client}
}

// SaveBooking stores a booking record under booking:<sender>:<unix-ts>
func (s *RecordStore) SaveBooking(ctx context.Context, rec *domain.BookingRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal booking record: %w", err)
	}

	key := fmt.Sprintf("%s%s:%d", bookingPrefix, rec.SenderID, rec.Timestamp.Unix())
	if err := s.client.SetEx(ctx, key, data, domain.BookingTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking record: %w", err)
	}
	return nil
}

// SaveUrgent stores an urgent-support record under urgent:<sender>:<unix-ts>
func (s *RecordStore) SaveUrgent(ctx context.Context, rec *domain.UrgentRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal urgent record: %w", err)
	}

	key := fmt.Sprintf("%s%s:%d", urgentPrefix, rec.SenderID, rec.Timestamp.Unix())
	if err := s.client.SetEx(ctx, key, data, domain.UrgentTTL).Err(); err != nil {
		return fmt.Errorf("failed to store urgent record: %w", err)
	}
	return nil
}
