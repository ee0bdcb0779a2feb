package handler

import "time"

// --- Request types ---

type recipeIngredientRequest struct {
	Quantity      string `json:"quantity"       validate:"required"`
	IngredientID  string `json:"ingredient_id"  validate:"required"`
	Specification string `json:"specification,omitempty"`
}

type createRecipeRequest struct {
	Title            string                    `json:"title"             validate:"required,min=3,max=100"`
	Portions         int                       `json:"portions"          validate:"omitempty,gt=0"`
	Description      string                    `json:"description"`
	Tags             []string                  `json:"tags"`
	PreparationTime  int                       `json:"preparation_time"  validate:"omitempty,gt=0"`
	CookingTime      int                       `json:"cooking_time"      validate:"omitempty,gt=0"`
	Ingredients      []recipeIngredientRequest `json:"ingredients"       validate:"required,min=2,dive"`
	PreparationSteps []string                  `json:"preparation_steps" validate:"required,min=2,dive,required"`
	Owner            string                    `json:"owner"`
}

// updateRecipeRequest is a partial update. Absent fields stay unchanged; an
// explicit empty array clears the relation (subject to the recipe's minimum
// ingredient and step counts, enforced by the service).
type updateRecipeRequest struct {
	Title            *string                    `json:"title"             validate:"omitempty,min=3,max=100"`
	Portions         *int                       `json:"portions"          validate:"omitempty,gt=0"`
	Description      *string                    `json:"description"`
	Tags             *[]string                  `json:"tags"`
	PreparationTime  *int                       `json:"preparation_time"  validate:"omitempty,gt=0"`
	CookingTime      *int                       `json:"cooking_time"      validate:"omitempty,gt=0"`
	Ingredients      *[]recipeIngredientRequest `json:"ingredients"       validate:"omitempty,dive"`
	PreparationSteps *[]string                  `json:"preparation_steps"`
	Owner            string                     `json:"owner"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type tagRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ingredientRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ownerRefResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

type recipeIngredientResponse struct {
	Quantity      string                `json:"quantity"`
	Ingredient    ingredientRefResponse `json:"ingredient"`
	Specification string                `json:"specification,omitempty"`
}

type recipeResponse struct {
	ID               string                     `json:"id"`
	Title            string                     `json:"title"`
	Portions         int                        `json:"portions,omitempty"`
	Description      string                     `json:"description,omitempty"`
	Tags             []tagRefResponse           `json:"tags"`
	PreparationTime  int                        `json:"preparation_time,omitempty"`
	CookingTime      int                        `json:"cooking_time,omitempty"`
	Ingredients      []recipeIngredientResponse `json:"ingredients"`
	PreparationSteps []string                   `json:"preparation_steps"`
	Owner            ownerRefResponse           `json:"owner"`
	CreatedAt        time.Time                  `json:"created_at"`
	UpdatedAt        time.Time                  `json:"updated_at"`
}

type listRecipesResponse struct {
	Data []recipeResponse `json:"data"`
}
