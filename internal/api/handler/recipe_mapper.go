package handler

import (
	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateRecipeInput(req createRecipeRequest) ports.CreateRecipeInput {
	return ports.CreateRecipeInput{
		Title:            req.Title,
		Portions:         req.Portions,
		Description:      req.Description,
		TagIDs:           req.Tags,
		PreparationTime:  req.PreparationTime,
		CookingTime:      req.CookingTime,
		Ingredients:      toIngredientInputs(req.Ingredients),
		PreparationSteps: req.PreparationSteps,
	}
}

func toUpdateRecipeInput(req updateRecipeRequest, ownerID string) ports.UpdateRecipeInput {
	input := ports.UpdateRecipeInput{
		Title:            req.Title,
		Portions:         req.Portions,
		Description:      req.Description,
		TagIDs:           req.Tags,
		PreparationTime:  req.PreparationTime,
		CookingTime:      req.CookingTime,
		PreparationSteps: req.PreparationSteps,
		OwnerID:          ownerID,
	}
	if req.Ingredients != nil {
		lines := toIngredientInputs(*req.Ingredients)
		input.Ingredients = &lines
	}
	return input
}

func toIngredientInputs(reqs []recipeIngredientRequest) []ports.RecipeIngredientInput {
	out := make([]ports.RecipeIngredientInput, len(reqs))
	for i, r := range reqs {
		out[i] = ports.RecipeIngredientInput{
			Quantity:      r.Quantity,
			IngredientID:  r.IngredientID,
			Specification: r.Specification,
		}
	}
	return out
}

// --- Domain → HTTP response ---

func toRecipeResponse(r *domain.Recipe) recipeResponse {
	tags := make([]tagRefResponse, len(r.Tags))
	for i, t := range r.Tags {
		tags[i] = tagRefResponse{ID: t.ID, Name: t.Name}
	}
	ingredients := make([]recipeIngredientResponse, len(r.Ingredients))
	for i, line := range r.Ingredients {
		ingredients[i] = recipeIngredientResponse{
			Quantity: line.Quantity,
			Ingredient: ingredientRefResponse{
				ID:   line.Ingredient.ID,
				Name: line.Ingredient.Name,
			},
			Specification: line.Specification,
		}
	}

	return recipeResponse{
		ID:               r.ID,
		Title:            r.Title,
		Portions:         r.Portions,
		Description:      r.Description,
		Tags:             tags,
		PreparationTime:  r.PreparationTime,
		CookingTime:      r.CookingTime,
		Ingredients:      ingredients,
		PreparationSteps: r.PreparationSteps,
		Owner: ownerRefResponse{
			ID:       r.Owner.ID,
			Username: r.Owner.Username,
			Name:     r.Owner.Name,
		},
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toListRecipesResponse(recipes []*domain.Recipe) listRecipesResponse {
	data := make([]recipeResponse, len(recipes))
	for i, r := range recipes {
		data[i] = toRecipeResponse(r)
	}
	return listRecipesResponse{Data: data}
}
