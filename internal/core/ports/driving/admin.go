package driving

import (
	"context"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// AdminService manages tenant mappings and knowledge content.
type AdminService interface {
	// SetMapping maps a sender to a tenant. Returns domain.ErrInvalidInput
	// for tenants that fail validation.
	SetMapping(ctx context.Context, senderID, tenant string) error

	// DeleteMapping removes a sender's tenant mapping.
	DeleteMapping(ctx context.Context, senderID string) error

	// AppendKnowledge adds text units to a tenant's knowledge base and
	// invalidates that tenant's cached index so the next query rebuilds.
	AppendKnowledge(ctx context.Context, tenant string, units []domain.TextUnit) error

	// AIStatus reports current AI capability flags.
	AIStatus(ctx context.Context) *domain.RuntimeConfig
}
