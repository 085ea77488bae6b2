package services

import (
	"context"
	"time"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
	"github.com/custodia-labs/converse-core/internal/core/ports/driving"
)

// tokenTTL is how long an issued operator token stays valid.
const tokenTTL = 24 * time.Hour

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService authenticates the single configured operator. There is no
// user database: the admin credential comes from configuration, which is
// all a single-operator deployment needs.
type authService struct {
	adminEmail   string
	passwordHash string
	auth         driven.AuthAdapter
}

// NewAuthService creates a new AuthService for the configured operator
// credential.
func NewAuthService(adminEmail, passwordHash string, auth driven.AuthAdapter) driving.AuthService {
	return &authService{
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		auth:         auth,
	}
}

// Authenticate verifies the operator credential and issues a token.
func (s *authService) Authenticate(_ context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if s.adminEmail == "" || s.passwordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if req.Email != s.adminEmail || !s.auth.VerifyPassword(req.Password, s.passwordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	expiresAt := now.Add(tokenTTL)
	token, err := s.auth.GenerateToken(&domain.TokenClaims{
		Email:     req.Email,
		Role:      domain.RoleAdmin,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	})
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken validates an access token and returns the auth context.
func (s *authService) ValidateToken(_ context.Context, token string) (*domain.AuthContext, error) {
	claims, err := s.auth.ParseToken(token)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if time.Now().Unix() >= claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}
	return &domain.AuthContext{
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
