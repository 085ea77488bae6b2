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
var _ driven.KnowledgeStore = (*KnowledgeStore)(nil)

// kbPrefix namespaces per-tenant knowledge base lists.
const kbPrefix = "kb:"

// KnowledgeStore implements driven.KnowledgeStore using Redis. Each tenant's
// units live in a list so insertion order is preserved.
type KnowledgeStore struct {
	client *redis.Client
}

// NewKnowledgeStore creates a new Redis-backed KnowledgeStore
func NewKnowledgeStore(client *redis.Client) *KnowledgeStore {
	return &KnowledgeStore{client: client}
}

// Units returns every text unit for the tenant, in insertion order
func (s *KnowledgeStore) Units(ctx context.Context, tenant string) ([]domain.TextUnit, error) {
	entries, err := s.client.LRange(ctx, kbPrefix+tenant, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}

	units := make([]domain.TextUnit, 0, len(entries))
	for _, entry := range entries {
		var unit domain.TextUnit
		if err := json.Unmarshal([]byte(entry), &unit); err != nil {
			return nil, fmt.Errorf("failed to unmarshal text unit: %w", err)
		}
		units = append(units, unit)
	}
	return units, nil
}

// Append adds units to the end of the tenant's knowledge base
func (s *KnowledgeStore) Append(ctx context.Context, tenant string, units []domain.TextUnit) error {
	if len(units) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(units))
	for _, unit := range units {
		data, err := json.Marshal(unit)
		if err != nil {
			return fmt.Errorf("failed to marshal text unit: %w", err)
		}
		values = append(values, data)
	}

	if err := s.client.RPush(ctx, kbPrefix+tenant, values...).Err(); err != nil {
		return fmt.Errorf("failed to append to knowledge base: %w", err)
	}
	return nil
}
