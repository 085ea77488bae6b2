package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// MockTenantStore is an in-memory mock of TenantStore for testing.
type MockTenantStore struct {
	mu       sync.Mutex
	mappings map[string]string
	err      error
}

// NewMockTenantStore creates a new MockTenantStore
func NewMockTenantStore() *MockTenantStore {
	return &MockTenantStore{
		mappings: make(map[string]string),
	}
}

func (m *MockTenantStore) Tenant(ctx context.Context, senderID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	tenant, ok := m.mappings[senderID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return tenant, nil
}

func (m *MockTenantStore) SetTenant(ctx context.Context, senderID, tenant string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.mappings[senderID] = tenant
	return nil
}

func (m *MockTenantStore) DeleteTenant(ctx context.Context, senderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.mappings, senderID)
	return nil
}

// Helper methods for testing

// SetError makes every operation fail with err until cleared.
func (m *MockTenantStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
