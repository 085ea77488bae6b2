package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
	"github.com/custodia-labs/converse-core/internal/core/ports/driving"
	"github.com/custodia-labs/converse-core/internal/index"
	"github.com/custodia-labs/converse-core/internal/runtime"
)

// Ensure adminService implements AdminService
var _ driving.AdminService = (*adminService)(nil)

// adminService manages sender mappings and tenant knowledge.
type adminService struct {
	tenants   driven.TenantStore
	knowledge driven.KnowledgeStore
	cache     *index.Cache
	services  *runtime.Services
	logger    *slog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	tenants driven.TenantStore,
	knowledge driven.KnowledgeStore,
	cache *index.Cache,
	services *runtime.Services,
	logger *slog.Logger,
) driving.AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &adminService{
		tenants:   tenants,
		knowledge: knowledge,
		cache:     cache,
		services:  services,
		logger:    logger,
	}
}

// SetMapping maps a sender to a tenant. The tenant is validated before it
// is ever written so a bad value cannot enter the store.
func (s *adminService) SetMapping(ctx context.Context, senderID, tenant string) error {
	if senderID == "" {
		return fmt.Errorf("%w: empty sender id", domain.ErrInvalidInput)
	}
	if !domain.ValidTenant(tenant) {
		return fmt.Errorf("%w: tenant %q", domain.ErrInvalidInput, tenant)
	}
	if err := s.tenants.SetTenant(ctx, senderID, tenant); err != nil {
		return fmt.Errorf("set mapping: %w", err)
	}
	s.logger.Info("sender mapping set", "tenant", tenant)
	return nil
}

// DeleteMapping removes a sender's tenant mapping.
func (s *adminService) DeleteMapping(ctx context.Context, senderID string) error {
	if senderID == "" {
		return fmt.Errorf("%w: empty sender id", domain.ErrInvalidInput)
	}
	if err := s.tenants.DeleteTenant(ctx, senderID); err != nil {
		return fmt.Errorf("delete mapping: %w", err)
	}
	return nil
}

// AppendKnowledge adds text units to the tenant's knowledge base and drops
// the cached index so the next query rebuilds against current content.
func (s *adminService) AppendKnowledge(ctx context.Context, tenant string, units []domain.TextUnit) error {
	if !domain.ValidTenant(tenant) {
		return fmt.Errorf("%w: tenant %q", domain.ErrInvalidInput, tenant)
	}
	if len(units) == 0 {
		return fmt.Errorf("%w: no units", domain.ErrInvalidInput)
	}
	for _, u := range units {
		if u.Content == "" {
			return fmt.Errorf("%w: unit with empty content", domain.ErrInvalidInput)
		}
	}

	if err := s.knowledge.Append(ctx, tenant, units); err != nil {
		return fmt.Errorf("append knowledge: %w", err)
	}

	s.cache.Invalidate(tenant)
	s.logger.Info("knowledge appended", "tenant", tenant, "units", len(units))
	return nil
}

// AIStatus reports current AI capability flags.
func (s *adminService) AIStatus(_ context.Context) *domain.RuntimeConfig {
	return s.services.Config()
}
