package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/converse-core/internal/core/ports/driven/mocks"
)

func TestResolverReturnsMappedTenant(t *testing.T) {
	store := mocks.NewMockTenantStore()
	_ = store.SetTenant(context.Background(), "wa:1001", "acme")

	resolver := NewTenantResolver(store, "default", nil)

	if got := resolver.Resolve(context.Background(), "wa:1001"); got != "acme" {
		t.Errorf("expected acme, got %q", got)
	}
}

func TestResolverMissFallsBackToDefault(t *testing.T) {
	store := mocks.NewMockTenantStore()
	resolver := NewTenantResolver(store, "default", nil)

	if got := resolver.Resolve(context.Background(), "unknown-sender"); got != "default" {
		t.Errorf("expected default, got %q", got)
	}
}

func TestResolverStoreErrorFallsBackToDefault(t *testing.T) {
	store := mocks.NewMockTenantStore()
	store.SetError(errors.New("connection refused"))
	resolver := NewTenantResolver(store, "default", nil)

	if got := resolver.Resolve(context.Background(), "wa:1001"); got != "default" {
		t.Errorf("expected default on store failure, got %q", got)
	}
}

func TestResolverInvalidStoredValueFallsBackToDefault(t *testing.T) {
	store := mocks.NewMockTenantStore()
	_ = store.SetTenant(context.Background(), "wa:1001", "not/a/tenant")
	resolver := NewTenantResolver(store, "default", nil)

	if got := resolver.Resolve(context.Background(), "wa:1001"); got != "default" {
		t.Errorf("expected default for invalid stored tenant, got %q", got)
	}
}

func TestResolverOverlongStoredValueFallsBackToDefault(t *testing.T) {
	store := mocks.NewMockTenantStore()
	_ = store.SetTenant(context.Background(), "wa:1001", strings.Repeat("a", 51))
	resolver := NewTenantResolver(store, "default", nil)

	if got := resolver.Resolve(context.Background(), "wa:1001"); got != "default" {
		t.Errorf("expected default for overlong stored tenant, got %q", got)
	}
}

func TestResolverNilStoreFallsBackToDefault(t *testing.T) {
	resolver := NewTenantResolver(nil, "default", nil)

	if got := resolver.Resolve(context.Background(), "wa:1001"); got != "default" {
		t.Errorf("expected default with nil store, got %q", got)
	}
}

func TestResolverSanitizesDefaultTenant(t *testing.T) {
	resolver := NewTenantResolver(mocks.NewMockTenantStore(), "bad default!", nil)

	if got := resolver.DefaultTenant(); got != "default" {
		t.Errorf("expected built-in default for invalid configured default, got %q", got)
	}
}
