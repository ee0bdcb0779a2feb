package ports

import (
	"context"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

// ListRecipesFilter carries all query parameters for listing recipes.
type ListRecipesFilter struct {
	OwnerID      string // non-empty = scoped to one owner
	TagID        string // non-empty = recipes referencing this tag
	IngredientID string // non-empty = recipes using this ingredient
	Window       paginate.Window
}

// RecipeDelta carries a partial recipe update. Nil fields are unchanged;
// a non-nil pointer to an empty slice clears the relation.
type RecipeDelta struct {
	Title            *string
	Portions         *int
	Description      *string
	PreparationTime  *int
	CookingTime      *int
	PreparationSteps *[]string
	Tags             *[]domain.TagRef
	Ingredients      *[]domain.RecipeIngredient
	Owner            *domain.UserRef
}

// Empty reports whether the delta changes nothing.
func (d RecipeDelta) Empty() bool {
	return d.Title == nil && d.Portions == nil && d.Description == nil &&
		d.PreparationTime == nil && d.CookingTime == nil &&
		d.PreparationSteps == nil && d.Tags == nil && d.Ingredients == nil &&
		d.Owner == nil
}

// RecipeRepository defines persistence operations for recipe documents.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error)
	FindByID(ctx context.Context, id string) (*domain.Recipe, error)
	List(ctx context.Context, filter ListRecipesFilter) ([]*domain.Recipe, error)
	Update(ctx context.Context, id string, delta RecipeDelta) (*domain.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// AuditRepository persists recipe lifecycle events to the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
