package ports

import (
	"context"
	"time"

	"github.com/goodplates/recipes-api/internal/core/domain"
)

// AuthService handles registration, credential verification, and token
// lifecycle.
type AuthService interface {
	// Register creates a plain-user account. Role escalation goes through
	// UserService under admin policy instead.
	Register(ctx context.Context, username, name, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes the token identified by jti until it would have
	// expired anyway.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
}

// TokenDenylist stores revoked token ids until their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
