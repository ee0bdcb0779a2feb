package ports

import (
	"context"

	"github.com/goodplates/recipes-api/internal/core/domain"
)

// CreateUserInput carries the fields of an admin-created account.
type CreateUserInput struct {
	Username string
	Name     string
	Password string
	Role     string
}

// UpdateUserInput is a partial profile update. Nil means unchanged; a
// non-nil Password is re-hashed before persisting.
type UpdateUserInput struct {
	Username *string
	Name     *string
	Password *string
}

// UserService defines account management operations.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, input ListInput) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// EnsureDefaultAdmin creates the bootstrap admin account when no user
	// with the default admin username exists yet.
	EnsureDefaultAdmin(ctx context.Context, password string) error
}
