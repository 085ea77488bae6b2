package driven

import "context"

// TenantStore maps opaque sender identifiers to tenant identifiers.
// The backing store is best-effort: callers must treat every error as a
// soft failure and fall back to the default tenant (that policy lives in
// the resolver service, not here).
type TenantStore interface {
	// Tenant returns the tenant mapped to senderID.
	// Returns domain.ErrNotFound when no mapping exists.
	Tenant(ctx context.Context, senderID string) (string, error)

	// SetTenant creates or replaces the mapping for senderID.
	SetTenant(ctx context.Context, senderID, tenant string) error

	// DeleteTenant removes the mapping for senderID. Deleting a missing
	// mapping is not an error.
	DeleteTenant(ctx context.Context, senderID string) error
}
