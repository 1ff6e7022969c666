// Package auth provides JWT bearer-token issuing and validation.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Role values recognized by the API. The delete endpoint requires RoleAdmin.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT containing the subject's identity
	// and role. Used by the tokengen tool and by tests; production tokens
	// may equally come from any issuer sharing the signing key.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, subject uuid.UUID, role string) (string, error)

	// ValidateToken validates the provided token string and extracts the claims.
	// All of signature, lifetime, issuer and audience must validate.
	// Returns the claims if the token is valid, or an error if validation
	// fails (expired, invalid signature, wrong issuer/audience, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated claims extracted from a JWT token.
type Claims struct {
	// Subject is the unique identifier of the caller the token was issued for.
	Subject uuid.UUID `json:"sub,omitempty"`

	// Role is the caller's role claim ("user" or "admin").
	Role string `json:"role,omitempty"`

	// Standard registered JWT claims
	Issuer    string    `json:"iss,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
