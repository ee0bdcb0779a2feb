package ports

import (
	"context"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

// UserDelta carries the fields of a user profile update. Nil means
// unchanged.
type UserDelta struct {
	Username     *string
	Name         *string
	PasswordHash *string
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, window paginate.Window) ([]*domain.User, error)
	Update(ctx context.Context, id string, delta UserDelta) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// PushRecipe / PullRecipe maintain the recipes back-reference array.
	PushRecipe(ctx context.Context, userID, recipeID string) error
	PullRecipe(ctx context.Context, userID, recipeID string) error
}
