package ports

import (
	"context"

	"github.com/goodplates/recipes-api/internal/core/domain"
)

// ListInput carries plain pagination parameters.
type ListInput struct {
	Page    int
	Results int
}

// TagService defines use-case operations for tags. Delete refuses to
// remove a tag that is still referenced by recipes.
type TagService interface {
	Create(ctx context.Context, name string) (*domain.Tag, error)
	Get(ctx context.Context, id string) (*domain.Tag, error)
	List(ctx context.Context, input ListInput) ([]*domain.Tag, error)
	Delete(ctx context.Context, id string) error
}

// IngredientService mirrors TagService for ingredients, including the
// delete guard.
type IngredientService interface {
	Create(ctx context.Context, name string) (*domain.Ingredient, error)
	Get(ctx context.Context, id string) (*domain.Ingredient, error)
	List(ctx context.Context, input ListInput) ([]*domain.Ingredient, error)
	Delete(ctx context.Context, id string) error
}
