package domain

import "time"

const (
	MinIngredients      = 2
	MinPreparationSteps = 2
)

// TagRef is the tag view embedded in a recipe document.
type TagRef struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// IngredientRef is the ingredient view embedded in a recipe ingredient line.
type IngredientRef struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

// UserRef is the owner view embedded in a recipe document.
type UserRef struct {
	ID       string `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
}

// RecipeIngredient is one ingredient line of a recipe: a quantity, the
// referenced ingredient, and an optional preparation note.
type RecipeIngredient struct {
	Quantity      string        `json:"quantity" bson:"quantity"`
	Ingredient    IngredientRef `json:"ingredient" bson:"ingredient"`
	Specification string        `json:"specification,omitempty" bson:"specification,omitempty"`
}

// Recipe is the aggregate root. Every tag, ingredient, and owner it
// references must list this recipe's id in its own back-reference array —
// that bidirectional invariant must hold after every create/update/delete.
type Recipe struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Portions         int                `json:"portions,omitempty"`
	Description      string             `json:"description,omitempty"`
	Tags             []TagRef           `json:"tags"`
	PreparationTime  int                `json:"preparation_time,omitempty"`
	CookingTime      int                `json:"cooking_time,omitempty"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	PreparationSteps []string           `json:"preparation_steps"`
	Owner            UserRef            `json:"owner"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// TagIDs returns the ids of all referenced tags, in document order.
func (r *Recipe) TagIDs() []string {
	ids := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		ids[i] = t.ID
	}
	return ids
}

// IngredientIDs returns the distinct ids of all referenced ingredients.
// A recipe may list the same ingredient twice (e.g. in two preparations);
// back-references are maintained once per distinct id.
func (r *Recipe) IngredientIDs() []string {
	seen := make(map[string]struct{}, len(r.Ingredients))
	var ids []string
	for _, line := range r.Ingredients {
		if _, ok := seen[line.Ingredient.ID]; ok {
			continue
		}
		seen[line.Ingredient.ID] = struct{}{}
		ids = append(ids, line.Ingredient.ID)
	}
	return ids
}
