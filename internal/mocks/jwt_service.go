// Package mocks provides hand-written test doubles for service interfaces.
package mocks

import (
	"context"

	"github.com/rsoares/taskhub-api/internal/service/auth"
)

// MockJWTService is a configurable auth.JWTService double.
type MockJWTService struct {
	Token       string
	GenerateErr error
	Claims      *auth.Claims
	ValidateErr error
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken returns the configured token and error.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID int64) (string, error) {
	if m.GenerateErr != nil {
		return "", m.GenerateErr
	}
	if m.Token != "" {
		return m.Token, nil
	}
	return "mock-token", nil
}

// ValidateToken returns the configured claims and error.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}
	return m.Claims, nil
}
