// Package auth provides token issuing/verification and password hashing.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token embedding the user's ID.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken verifies the token's signature and expiry and extracts
	// the claims. Returns ErrExpiredToken or ErrInvalidToken on failure;
	// the caller decides how much of that distinction to expose.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a valid token.
type Claims struct {
	// UserID is the user the token was issued for.
	UserID int64 `json:"userId"`

	// Standard registered JWT claims.
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
