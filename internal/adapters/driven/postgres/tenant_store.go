package postgres

import (
	"context"
	"database/sql"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TenantStore = (*TenantStore)(nil)

// TenantStore implements driven.TenantStore using PostgreSQL
type TenantStore struct {
	db *DB
}

// NewTenantStore creates a new TenantStore
func NewTenantStore(db *DB) *TenantStore {
	return &TenantStore{db: db}
}

// Tenant returns the tenant mapped to senderID
func (s *TenantStore) Tenant(ctx context.Context, senderID string) (string, error) {
	query := `SELECT tenant FROM sender_tenants WHERE sender_id = $1`

	var tenant string
	err := s.db.QueryRowContext(ctx, query, senderID).Scan(&tenant)
	if err == sql.ErrNoRows {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	return tenant, nil
}

// SetTenant creates or replaces the mapping for senderID
func (s *TenantStore) SetTenant(ctx context.Context, senderID, tenant string) error {
	query := `
		INSERT INTO sender_tenants (sender_id, tenant, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (sender_id) DO UPDATE SET
			tenant = EXCLUDED.tenant,
			updated_at = now()
	`

	_, err := s.db.ExecContext(ctx, query, senderID, tenant)
	return err
}

// DeleteTenant removes the mapping for senderID
func (s *TenantStore) DeleteTenant(ctx context.Context, senderID string) error {
	query := `DELETE FROM sender_tenants WHERE sender_id = $1`

	_, err := s.db.ExecContext(ctx, query, senderID)
	return err
}
