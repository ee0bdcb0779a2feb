package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
	"github.com/goodplates/recipes-api/internal/pkg/paginate"
)

// RecipeService owns the recipe aggregate: it resolves every foreign
// reference before writing, and keeps the back-reference arrays on tags,
// ingredients, and owners consistent with the recipe inside one
// transactional scope per operation.
type RecipeService struct {
	recipes     ports.RecipeRepository
	tags        ports.TagRepository
	ingredients ports.IngredientRepository
	users       ports.UserRepository
	tx          ports.TxRunner
	audit       ports.AuditRecorder
	logger      zerolog.Logger
}

func NewRecipeService(
	recipes ports.RecipeRepository,
	tags ports.TagRepository,
	ingredients ports.IngredientRepository,
	users ports.UserRepository,
	tx ports.TxRunner,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *RecipeService {
	return &RecipeService{
		recipes:     recipes,
		tags:        tags,
		ingredients: ingredients,
		users:       users,
		tx:          tx,
		audit:       audit,
		logger:      logger,
	}
}

// Create builds a recipe for ownerID from input.
//
// 1. Validate the input shape (no persistence happens on failure).
// 2. Resolve every ingredient, tag, and the owner in parallel; any single
//    miss aborts the whole operation with a NotFoundError.
// 3. Inside one transaction: insert the recipe, then push its id onto each
//    tag's, each ingredient's, and the owner's back-reference array.
func (s *RecipeService) Create(ctx context.Context, ownerID string, input ports.CreateRecipeInput) (*domain.Recipe, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	lines, tagRefs, owner, err := s.resolveReferences(ctx, input.Ingredients, input.TagIDs, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	recipe := &domain.Recipe{
		Title:            input.Title,
		Portions:         input.Portions,
		Description:      input.Description,
		Tags:             tagRefs,
		PreparationTime:  input.PreparationTime,
		CookingTime:      input.CookingTime,
		Ingredients:      lines,
		PreparationSteps: input.PreparationSteps,
		Owner:            *owner,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var created *domain.Recipe
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		c, err := s.recipes.Create(txCtx, recipe)
		if err != nil {
			return err
		}
		for _, tag := range c.Tags {
			if err := s.tags.PushRecipe(txCtx, tag.ID, c.ID); err != nil {
				return err
			}
		}
		for _, ingredientID := range c.IngredientIDs() {
			if err := s.ingredients.PushRecipe(txCtx, ingredientID, c.ID); err != nil {
				return err
			}
		}
		if err := s.users.PushRecipe(txCtx, c.Owner.ID, c.ID); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create recipe")
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		Action:    "created",
		RecipeID:  created.ID,
		OwnerID:   created.Owner.ID,
		Title:     created.Title,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Str("recipe_id", created.ID).Str("owner_id", created.Owner.ID).Msg("recipe created")
	return created, nil
}

// Get returns a recipe by id.
func (s *RecipeService) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	return s.recipes.FindByID(ctx, id)
}

// List returns recipes matching the filter, sorted by title. A userId
// filter must name an existing user.
func (s *RecipeService) List(ctx context.Context, input ports.ListRecipesInput) ([]*domain.Recipe, error) {
	if input.UserID != "" {
		if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
			return nil, err
		}
	}
	return s.recipes.List(ctx, ports.ListRecipesFilter{
		OwnerID:      input.UserID,
		TagID:        input.TagID,
		IngredientID: input.IngredientID,
		Window:       paginate.FromQuery(input.Page, input.Results),
	})
}

// Update applies a partial update to a recipe.
//
// The owner, tag set, and ingredient set are diffed structurally against
// the stored document. Changed references are resolved up front, then one
// transaction moves every back-reference (pull from dropped entities, push
// onto added ones) and applies the field delta. A failure anywhere rolls
// the whole operation back so no dangling reference survives in either
// direction.
func (s *RecipeService) Update(ctx context.Context, id string, input ports.UpdateRecipeInput) (*domain.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	delta := ports.RecipeDelta{
		Title:            input.Title,
		Portions:         input.Portions,
		Description:      input.Description,
		PreparationTime:  input.PreparationTime,
		CookingTime:      input.CookingTime,
		PreparationSteps: input.PreparationSteps,
	}

	// Owner diff.
	var newOwner *domain.User
	if input.OwnerID != "" && input.OwnerID != recipe.Owner.ID {
		newOwner, err = s.users.FindByID(ctx, input.OwnerID)
		if err != nil {
			return nil, err
		}
	}

	// Tag set diff.
	var addedTags, removedTags []string
	if input.TagIDs != nil {
		newTagIDs := uniqueStrings(*input.TagIDs)
		oldTagIDs := recipe.TagIDs()
		if !sameStringSet(newTagIDs, oldTagIDs) {
			tagRefs, err := s.resolveTags(ctx, newTagIDs)
			if err != nil {
				return nil, err
			}
			delta.Tags = &tagRefs
			addedTags = diffStrings(newTagIDs, oldTagIDs)
			removedTags = diffStrings(oldTagIDs, newTagIDs)
		}
	}

	// Ingredient set diff.
	var addedIngredients, removedIngredients []string
	if input.Ingredients != nil {
		lines, err := s.resolveIngredients(ctx, *input.Ingredients)
		if err != nil {
			return nil, err
		}
		if !sameIngredientLines(lines, recipe.Ingredients) {
			delta.Ingredients = &lines
			newIDs := ingredientIDsOf(lines)
			oldIDs := recipe.IngredientIDs()
			addedIngredients = diffStrings(newIDs, oldIDs)
			removedIngredients = diffStrings(oldIDs, newIDs)
		}
	}

	if newOwner != nil {
		delta.Owner = &domain.UserRef{ID: newOwner.ID, Username: newOwner.Username, Name: newOwner.Name}
	}
	if delta.Empty() {
		return recipe, nil
	}

	var updated *domain.Recipe
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if newOwner != nil {
			if err := s.users.PullRecipe(txCtx, recipe.Owner.ID, recipe.ID); err != nil {
				return err
			}
			if err := s.users.PushRecipe(txCtx, newOwner.ID, recipe.ID); err != nil {
				return err
			}
		}
		for _, tagID := range removedTags {
			if err := s.tags.PullRecipe(txCtx, tagID, recipe.ID); err != nil {
				return err
			}
		}
		for _, tagID := range addedTags {
			if err := s.tags.PushRecipe(txCtx, tagID, recipe.ID); err != nil {
				return err
			}
		}
		for _, ingredientID := range removedIngredients {
			if err := s.ingredients.PullRecipe(txCtx, ingredientID, recipe.ID); err != nil {
				return err
			}
		}
		for _, ingredientID := range addedIngredients {
			if err := s.ingredients.PushRecipe(txCtx, ingredientID, recipe.ID); err != nil {
				return err
			}
		}
		u, err := s.recipes.Update(txCtx, recipe.ID, delta)
		if err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to update recipe")
		return nil, err
	}

	s.audit.Record(domain.AuditEvent{
		Action:    "updated",
		RecipeID:  updated.ID,
		OwnerID:   updated.Owner.ID,
		Title:     updated.Title,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Str("recipe_id", updated.ID).Msg("recipe updated")
	return updated, nil
}

// Delete removes a recipe and pulls its id from every tag, ingredient, and
// the owner inside one transaction.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, tag := range recipe.Tags {
			if err := s.tags.PullRecipe(txCtx, tag.ID, recipe.ID); err != nil {
				return err
			}
		}
		for _, ingredientID := range recipe.IngredientIDs() {
			if err := s.ingredients.PullRecipe(txCtx, ingredientID, recipe.ID); err != nil {
				return err
			}
		}
		if err := s.users.PullRecipe(txCtx, recipe.Owner.ID, recipe.ID); err != nil {
			return err
		}
		return s.recipes.Delete(txCtx, recipe.ID)
	})
	if err != nil {
		s.logger.Error().Err(err).Str("recipe_id", id).Msg("failed to delete recipe")
		return err
	}

	s.audit.Record(domain.AuditEvent{
		Action:    "deleted",
		RecipeID:  recipe.ID,
		OwnerID:   recipe.Owner.ID,
		Title:     recipe.Title,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info().Str("recipe_id", recipe.ID).Msg("recipe deleted")
	return nil
}

// resolveReferences resolves all ingredient lines, tag ids, and the owner
// concurrently. The first failure cancels the remaining lookups.
func (s *RecipeService) resolveReferences(
	ctx context.Context,
	ingredients []ports.RecipeIngredientInput,
	tagIDs []string,
	ownerID string,
) ([]domain.RecipeIngredient, []domain.TagRef, *domain.UserRef, error) {
	lines := make([]domain.RecipeIngredient, len(ingredients))
	uniqueTagIDs := uniqueStrings(tagIDs)
	tagRefs := make([]domain.TagRef, len(uniqueTagIDs))
	var owner domain.UserRef

	g, gctx := errgroup.WithContext(ctx)
	for i, line := range ingredients {
		g.Go(func() error {
			found, err := s.ingredients.FindByID(gctx, line.IngredientID)
			if err != nil {
				return err
			}
			lines[i] = domain.RecipeIngredient{
				Quantity:      line.Quantity,
				Ingredient:    domain.IngredientRef{ID: found.ID, Name: found.Name},
				Specification: line.Specification,
			}
			return nil
		})
	}
	for i, tagID := range uniqueTagIDs {
		g.Go(func() error {
			found, err := s.tags.FindByID(gctx, tagID)
			if err != nil {
				return err
			}
			tagRefs[i] = domain.TagRef{ID: found.ID, Name: found.Name}
			return nil
		})
	}
	g.Go(func() error {
		found, err := s.users.FindByID(gctx, ownerID)
		if err != nil {
			return err
		}
		owner = domain.UserRef{ID: found.ID, Username: found.Username, Name: found.Name}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return lines, tagRefs, &owner, nil
}

func (s *RecipeService) resolveTags(ctx context.Context, tagIDs []string) ([]domain.TagRef, error) {
	refs := make([]domain.TagRef, len(tagIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, tagID := range tagIDs {
		g.Go(func() error {
			found, err := s.tags.FindByID(gctx, tagID)
			if err != nil {
				return err
			}
			refs[i] = domain.TagRef{ID: found.ID, Name: found.Name}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

func (s *RecipeService) resolveIngredients(ctx context.Context, inputs []ports.RecipeIngredientInput) ([]domain.RecipeIngredient, error) {
	lines := make([]domain.RecipeIngredient, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, line := range inputs {
		g.Go(func() error {
			found, err := s.ingredients.FindByID(gctx, line.IngredientID)
			if err != nil {
				return err
			}
			lines[i] = domain.RecipeIngredient{
				Quantity:      line.Quantity,
				Ingredient:    domain.IngredientRef{ID: found.ID, Name: found.Name},
				Specification: line.Specification,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

func validateCreateInput(input ports.CreateRecipeInput) error {
	if input.Title == "" {
		return domain.Invalid("title is required")
	}
	if len(input.Ingredients) < domain.MinIngredients {
		return domain.Invalid("a recipe needs at least %d ingredients", domain.MinIngredients)
	}
	if len(input.PreparationSteps) < domain.MinPreparationSteps {
		return domain.Invalid("a recipe needs at least %d preparation steps", domain.MinPreparationSteps)
	}
	return nil
}

func validateUpdateInput(input ports.UpdateRecipeInput) error {
	if input.Title != nil && *input.Title == "" {
		return domain.Invalid("title cannot be empty")
	}
	if input.Ingredients != nil && len(*input.Ingredients) < domain.MinIngredients {
		return domain.Invalid("a recipe needs at least %d ingredients", domain.MinIngredients)
	}
	if input.PreparationSteps != nil && len(*input.PreparationSteps) < domain.MinPreparationSteps {
		return domain.Invalid("a recipe needs at least %d preparation steps", domain.MinPreparationSteps)
	}
	return nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// sameStringSet compares two id slices ignoring order.
func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}

// diffStrings returns the elements of a that are not in b.
func diffStrings(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := set[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func ingredientIDsOf(lines []domain.RecipeIngredient) []string {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.Ingredient.ID)
	}
	return uniqueStrings(ids)
}

// sameIngredientLines compares resolved ingredient lines field by field,
// in order. Reordering lines counts as a change (the stored order is part
// of the recipe).
func sameIngredientLines(a, b []domain.RecipeIngredient) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Quantity != b[i].Quantity ||
			a[i].Ingredient.ID != b[i].Ingredient.ID ||
			a[i].Specification != b[i].Specification {
			return false
		}
	}
	return true
}
