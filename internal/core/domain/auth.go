package domain

import "time"

// Role defines operator permission level
type Role string

const (
	RoleAdmin Role = "admin" // manage tenant mappings, knowledge, AI settings
)

// TokenClaims carries the identity encoded in an access token.
type TokenClaims struct {
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}

// AuthContext is the validated identity attached to a request.
type AuthContext struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin checks if the context has admin privileges
func (a *AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// LoginRequest is the payload for operator login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
