package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
)

// TenantResolver maps opaque sender identifiers to validated tenant
// identifiers. Resolution is read-only and never fails: a store miss, a
// store error and an invalid stored value all degrade to the default
// tenant. The fallback policy lives here, not in the store adapters.
type TenantResolver struct {
	store         driven.TenantStore
	defaultTenant string
	logger        *slog.Logger
}

// NewTenantResolver creates a resolver around the given store.
// A defaultTenant that fails validation itself is replaced by the built-in
// default so the fallback is always a usable namespace key.
func NewTenantResolver(store driven.TenantStore, defaultTenant string, logger *slog.Logger) *TenantResolver {
	if logger == nil {
		logger = slog.Default()
	}
	if !domain.ValidTenant(defaultTenant) {
		defaultTenant = domain.DefaultTenant
	}
	return &TenantResolver{
		store:         store,
		defaultTenant: defaultTenant,
		logger:        logger,
	}
}

// Resolve returns the tenant that owns senderID's conversation.
func (r *TenantResolver) Resolve(ctx context.Context, senderID string) string {
	if r.store == nil {
		return r.defaultTenant
	}

	tenant, err := r.store.Tenant(ctx, senderID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Warn("tenant lookup failed, using default", "error", err)
		}
		return r.defaultTenant
	}

	if !domain.ValidTenant(tenant) {
		r.logger.Warn("stored tenant failed validation, using default")
		return r.defaultTenant
	}

	return tenant
}

// DefaultTenant returns the configured fallback tenant.
func (r *TenantResolver) DefaultTenant() string {
	return r.defaultTenant
}
