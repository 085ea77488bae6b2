package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/converse-core/internal/core/domain"
)

// stubAuthAdapter implements driven.AuthAdapter without real crypto so the
// service logic is tested in isolation.
type stubAuthAdapter struct{}

func (stubAuthAdapter) HashPassword(password string) (string, error) {
	return "hash:" + password, nil
}

func (stubAuthAdapter) VerifyPassword(password, hash string) bool {
	return hash == "hash:"+password
}

func (stubAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	return fmt.Sprintf("token:%s:%d", claims.Email, claims.ExpiresAt), nil
}

func (stubAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	if !strings.HasPrefix(token, "token:") {
		return nil, errors.New("malformed token")
	}
	expiresAt := time.Now().Add(time.Hour).Unix()
	if token == "token:expired" {
		expiresAt = time.Now().Add(-time.Hour).Unix()
	}
	return &domain.TokenClaims{
		Email:     "ops@example.com",
		Role:      domain.RoleAdmin,
		ExpiresAt: expiresAt,
	}, nil
}

func TestAuthenticateSuccess(t *testing.T) {
	svc := NewAuthService("ops@example.com", "hash:s3cret", stubAuthAdapter{})

	resp, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "ops@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if !resp.ExpiresAt.After(time.Now()) {
		t.Error("expected future expiry")
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := NewAuthService("ops@example.com", "hash:s3cret", stubAuthAdapter{})

	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "ops@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateWrongEmail(t *testing.T) {
	svc := NewAuthService("ops@example.com", "hash:s3cret", stubAuthAdapter{})

	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "intruder@example.com",
		Password: "s3cret",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnconfigured(t *testing.T) {
	svc := NewAuthService("", "", stubAuthAdapter{})

	_, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "ops@example.com",
		Password: "s3cret",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials when unconfigured, got %v", err)
	}
}

func TestValidateToken(t *testing.T) {
	svc := NewAuthService("ops@example.com", "hash:s3cret", stubAuthAdapter{})

	authCtx, err := svc.ValidateToken(context.Background(), "token:ops@example.com:123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authCtx.Email != "ops@example.com" {
		t.Errorf("expected operator email, got %q", authCtx.Email)
	}
	if !authCtx.IsAdmin() {
		t.Error("expected admin context")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewAuthService("ops@example.com", "hash:s3cret", stubAuthAdapter{})

	_, err := svc.ValidateToken(context.Background(), "token:expired")
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	svc := NewAuthService("ops@example.com", "hash:s3cret", stubAuthAdapter{})

	_, err := svc.ValidateToken(context.Background(), "garbage")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
