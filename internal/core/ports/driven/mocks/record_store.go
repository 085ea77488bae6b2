package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// MockRecordStore is an in-memory mock of RecordStore for testing.
type MockRecordStore struct {
	mu       sync.Mutex
	bookings []*domain.BookingRecord
	urgents  []*domain.UrgentRecord
	err      error
}

// NewMockRecordStore creates a new MockRecordStore
func NewMockRecordStore() *MockRecordStore {
	return &MockRecordStore{}
}

func (m *MockRecordStore) SaveBooking(ctx context.Context, rec *domain.BookingRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.bookings = append(m.bookings, rec)
	return nil
}

func (m *MockRecordStore) SaveUrgent(ctx context.Context, rec *domain.UrgentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.urgents = append(m.urgents, rec)
	return nil
}

// Helper methods for testing

// SetError makes every save fail with err until cleared.
func (m *MockRecordStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Bookings returns the saved booking records.
func (m *MockRecordStore) Bookings() []*domain.BookingRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.BookingRecord(nil), m.bookings...)
}

// Urgents returns the saved urgent records.
func (m *MockRecordStore) Urgents() []*domain.UrgentRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.UrgentRecord(nil), m.urgents...)
}
