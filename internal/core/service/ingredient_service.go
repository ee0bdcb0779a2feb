package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

// IngredientService implements ingredient management with the same delete
// guard as tags.
type IngredientService struct {
	ingredients ports.IngredientRepository
	logger      zerolog.Logger
}

func NewIngredientService(ingredients ports.IngredientRepository, logger zerolog.Logger) *IngredientService {
	return &IngredientService{ingredients: ingredients, logger: logger}
}

func (s *IngredientService) Create(ctx context.Context, name string) (*domain.Ingredient, error) {
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	return s.ingredients.Create(ctx, &domain.Ingredient{
		Name:      name,
		Recipes:   []string{},
		CreatedAt: time.Now().UTC(),
	})
}

func (s *IngredientService) Get(ctx context.Context, id string) (*domain.Ingredient, error) {
	return s.ingredients.FindByID(ctx, id)
}

func (s *IngredientService) List(ctx context.Context, input ports.ListInput) ([]*domain.Ingredient, error) {
	return s.ingredients.List(ctx, paginate.FromQuery(input.Page, input.Results))
}

func (s *IngredientService) Delete(ctx context.Context, id string) error {
	ingredient, err := s.ingredients.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if len(ingredient.Recipes) > 0 {
		return fmt.Errorf("cannot delete ingredients that are used in recipes: %w", domain.ErrInUse)
	}
	if err := s.ingredients.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("ingredient_id", id).Str("name", ingredient.Name).Msg("ingredient deleted")
	return nil
}
