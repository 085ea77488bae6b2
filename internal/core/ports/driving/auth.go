package driving

import (
	"context"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// AuthService authenticates the operator and validates access tokens.
type AuthService interface {
	// Authenticate verifies credentials and issues an access token
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken validates an access token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)
}
