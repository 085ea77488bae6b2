package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.KnowledgeStore = (*KnowledgeStore)(nil)

// KnowledgeStore implements driven.KnowledgeStore using PostgreSQL
type KnowledgeStore struct {
	db *DB
}

// NewKnowledgeStore creates a new KnowledgeStore
func NewKnowledgeStore(db *DB) *KnowledgeStore {
	return &KnowledgeStore{db: db}
}

// Units returns every text unit for the tenant, in insertion order
func (s *KnowledgeStore) Units(ctx context.Context, tenant string) ([]domain.TextUnit, error) {
	query := `
		SELECT content, metadata
		FROM knowledge_units
		WHERE tenant = $1
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge units: %w", err)
	}
	defer rows.Close()

	var units []domain.TextUnit
	for rows.Next() {
		var unit domain.TextUnit
		var metadata []byte
		if err := rows.Scan(&unit.Content, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge unit: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &unit.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal unit metadata: %w", err)
			}
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return units, nil
}

// Append adds units to the tenant's knowledge base
func (s *KnowledgeStore) Append(ctx context.Context, tenant string, units []domain.TextUnit) error {
	if len(units) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO knowledge_units (tenant, content, metadata) VALUES ($1, $2, $3)`
	for _, unit := range units {
		metadata := unit.Metadata
		if metadata == nil {
			metadata = map[string]string{}
		}
		data, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal unit metadata: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, tenant, unit.Content, data); err != nil {
			return fmt.Errorf("failed to insert knowledge unit: %w", err)
		}
	}

	return tx.Commit()
}
