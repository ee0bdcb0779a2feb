package ports

import (
	"context"

	"github.com/goodplates/recipes-api/internal/core/domain"
)

// RecipeIngredientInput is one ingredient line as submitted by a client.
type RecipeIngredientInput struct {
	Quantity      string
	IngredientID  string
	Specification string
}

// CreateRecipeInput carries all data needed to create a recipe. The owner
// is resolved separately by the transport layer's ownership rules.
type CreateRecipeInput struct {
	Title            string
	Portions         int
	Description      string
	TagIDs           []string
	PreparationTime  int
	CookingTime      int
	Ingredients      []RecipeIngredientInput
	PreparationSteps []string
}

// UpdateRecipeInput is a partial recipe update. Nil pointers mean
// unchanged; a pointer to an empty slice clears the relation. OwnerID
// empty means the owner stays.
type UpdateRecipeInput struct {
	Title            *string
	Portions         *int
	Description      *string
	TagIDs           *[]string
	PreparationTime  *int
	CookingTime      *int
	Ingredients      *[]RecipeIngredientInput
	PreparationSteps *[]string
	OwnerID          string
}

// ListRecipesInput carries the query parameters of the list endpoint.
type ListRecipesInput struct {
	UserID       string
	TagID        string
	IngredientID string
	Page         int
	Results      int
}

// RecipeService defines the aggregate write and read operations for
// recipes. All reference resolution and back-reference maintenance happens
// behind this interface.
type RecipeService interface {
	Create(ctx context.Context, ownerID string, input CreateRecipeInput) (*domain.Recipe, error)
	Get(ctx context.Context, id string) (*domain.Recipe, error)
	List(ctx context.Context, input ListRecipesInput) ([]*domain.Recipe, error)
	Update(ctx context.Context, id string, input UpdateRecipeInput) (*domain.Recipe, error)
	Delete(ctx context.Context, id string) error
}

// AuditRecorder accepts lifecycle events for asynchronous persistence.
// Recording never blocks the request path and never fails it.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}
