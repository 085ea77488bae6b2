package domain

import (
	"unicode"
	"unicode/utf8"
)

// DefaultTenant is the fallback namespace used whenever a sender cannot be
// mapped to a tenant, or when a mapped value fails validation. Deployments
// can override it via configuration.
const DefaultTenant = "default"

// maxTenantLen bounds tenant identifiers so they stay usable as cache and
// storage namespace keys.
const maxTenantLen = 50

// ValidTenant reports whether t is safe to use as a namespace key.
// A tenant is valid when it is non-empty, at most 50 characters, and
// contains only letters, digits and the separators '_' and '-'.
// Tenant identifiers come from an external store, so this is defense in
// depth against corrupted or attacker-influenced values.
func ValidTenant(t string) bool {
	if t == "" || utf8.RuneCountInString(t) > maxTenantLen {
		return false
	}
	// A tenant made of separators only has no usable identity.
	hasAlnum := false
	for _, r := range t {
		if r == '_' || r == '-' {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		hasAlnum = true
	}
	return hasAlnum
}
