package ports

import (
	"context"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

// TagRepository defines persistence operations for tags.
// PushRecipe appends a recipe id to the tag's back-reference array and bumps
// its popularity; PullRecipe is the exact inverse.
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) (*domain.Tag, error)
	FindByID(ctx context.Context, id string) (*domain.Tag, error)
	List(ctx context.Context, window paginate.Window) ([]*domain.Tag, error)
	Delete(ctx context.Context, id string) error
	PushRecipe(ctx context.Context, tagID, recipeID string) error
	PullRecipe(ctx context.Context, tagID, recipeID string) error
}

// IngredientRepository mirrors TagRepository for ingredients.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *domain.Ingredient) (*domain.Ingredient, error)
	FindByID(ctx context.Context, id string) (*domain.Ingredient, error)
	List(ctx context.Context, window paginate.Window) ([]*domain.Ingredient, error)
	Delete(ctx context.Context, id string) error
	PushRecipe(ctx context.Context, ingredientID, recipeID string) error
	PullRecipe(ctx context.Context, ingredientID, recipeID string) error
}
