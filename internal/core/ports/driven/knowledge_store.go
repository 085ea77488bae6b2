package driven

import (
	"context"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// KnowledgeStore holds the parsed text units that make up a tenant's
// knowledge base. Ingestion and parsing happen upstream; this port only
// reads and appends already-parsed units.
type KnowledgeStore interface {
	// Units returns every text unit for the tenant, in insertion order.
	// An unknown tenant yields an empty slice, not an error.
	Units(ctx context.Context, tenant string) ([]domain.TextUnit, error)

	// Append adds units to the tenant's knowledge base.
	Append(ctx context.Context, tenant string, units []domain.TextUnit) error
}
