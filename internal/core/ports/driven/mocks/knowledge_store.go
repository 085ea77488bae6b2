package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// MockKnowledgeStore is an in-memory mock of KnowledgeStore for testing.
type MockKnowledgeStore struct {
	mu    sync.Mutex
	units map[string][]domain.TextUnit
	err   error
}

// NewMockKnowledgeStore creates a new MockKnowledgeStore
func NewMockKnowledgeStore() *MockKnowledgeStore {
	return &MockKnowledgeStore{
		units: make(map[string][]domain.TextUnit),
	}
}

func (m *MockKnowledgeStore) Units(ctx context.Context, tenant string) ([]domain.TextUnit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.TextUnit(nil), m.units[tenant]...), nil
}

func (m *MockKnowledgeStore) Append(ctx context.Context, tenant string, units []domain.TextUnit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.units[tenant] = append(m.units[tenant], units...)
	return nil
}

// Helper methods for testing

// SetError makes every operation fail with err until cleared.
func (m *MockKnowledgeStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
