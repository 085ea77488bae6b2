package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TenantStore = (*TenantStore)(nil)

// senderPrefix namespaces sender-to-tenant mapping keys.
const senderPrefix = "sender:"

// TenantStore implements driven.TenantStore using Redis.
// Mappings are plain string keys with no TTL: a sender belongs to a tenant
// until an operator changes the mapping.
type TenantStore struct {
	client *redis.Client
}

// NewTenantStore creates a new Redis-backed TenantStore
func NewTenantStore(client *redis.Client) *TenantStore {
	return &TenantStore{client: client}
}

// Tenant returns the tenant mapped to senderID
func (s *TenantStore) Tenant(ctx context.Context, senderID string) (string, error) {
	tenant, err := s.client.Get(ctx, senderPrefix+senderID).Result()
	if err == redis.Nil {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get tenant mapping: %w", err)
	}
	return tenant, nil
}

// SetTenant creates or replaces the mapping for senderID
func (s *TenantStore) SetTenant(ctx context.Context, senderID, tenant string) error {
	if err := s.client.Set(ctx, senderPrefix+senderID, tenant, 0).Err(); err != nil {
		return fmt.Errorf("failed to set tenant mapping: %w", err)
	}
	return nil
}

// DeleteTenant removes the mapping for senderID
func (s *TenantStore) DeleteTenant(ctx context.Context, senderID string) error {
	if err := s.client.Del(ctx, senderPrefix+senderID).Err(); err != nil {
		return fmt.Errorf("failed to delete tenant mapping: %w", err)
	}
	return nil
}

// Ping checks if the Redis backend is healthy
func (s *TenantStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
