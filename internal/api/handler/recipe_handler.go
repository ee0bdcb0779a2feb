package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/goodplates/recipes-api/internal/api/metrics"
	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
)

// RecipeHandler handles HTTP requests for recipe operations. Ownership
// checks run here, between the policy guard and the service call.
type RecipeHandler struct {
	service ports.RecipeService
}

func NewRecipeHandler(service ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// Create handles POST /recipes.
//
// @Summary      Create a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRecipeRequest  true  "Recipe details"
// @Success      201   {object}  recipeResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createRecipeRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ownerID, err := domain.ResolveOwner(principal, req.Owner)
	if err != nil {
		return err
	}

	recipe, err := h.service.Create(c.Request().Context(), ownerID, toCreateRecipeInput(req))
	if err != nil {
		return err
	}
	metrics.RecipeWritesTotal.WithLabelValues("created").Inc()

	return c.JSON(http.StatusCreated, toRecipeResponse(recipe))
}

// Get handles GET /recipes/:id.
//
// @Summary      Get a recipe by id
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Recipe id"
// @Success      200  {object}  recipeResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	recipe, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if err := domain.CheckRecipeAccess(principal, recipe.Owner.ID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toRecipeResponse(recipe))
}

// List handles GET /recipes. Plain users must filter by their own user id;
// admins may combine any filters or none.
//
// @Summary      List recipes
// @Tags         recipes
// @Produce      json
// @Security     BearerAuth
// @Param        user        query     string  false  "Filter by owner user id"
// @Param        tag         query     string  false  "Filter by tag id"
// @Param        ingredient  query     string  false  "Filter by ingredient id"
// @Param        page        query     int     false  "Page number (1-based)"
// @Param        results     query     int     false  "Results per page"
// @Success      200  {object}  listRecipesResponse
// @Failure      403  {object}  map[string]string
// @Router       /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	userID := c.QueryParam("user")
	if err := domain.CheckListAccess(principal, userID); err != nil {
		return err
	}

	page, results, err := queryWindow(c)
	if err != nil {
		return err
	}

	recipes, err := h.service.List(c.Request().Context(), ports.ListRecipesInput{
		UserID:       userID,
		TagID:        c.QueryParam("tag"),
		IngredientID: c.QueryParam("ingredient"),
		Page:         page,
		Results:      results,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListRecipesResponse(recipes))
}

// Update handles PATCH /recipes/:id.
//
// @Summary      Update a recipe
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Recipe id"
// @Param        body  body      updateRecipeRequest  true  "Fields to update"
// @Success      200   {object}  recipeResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /recipes/{id} [patch]
func (h *RecipeHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	recipe, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := domain.CheckRecipeAccess(principal, recipe.Owner.ID); err != nil {
		return err
	}

	var req updateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Reassigning to a different owner is itself an ownership decision.
	ownerID := ""
	if req.Owner != "" && req.Owner != recipe.Owner.ID {
		ownerID, err = domain.ResolveOwner(principal, req.Owner)
		if err != nil {
			return err
		}
	}

	updated, err := h.service.Update(c.Request().Context(), id, toUpdateRecipeInput(req, ownerID))
	if err != nil {
		return err
	}
	metrics.RecipeWritesTotal.WithLabelValues("updated").Inc()

	return c.JSON(http.StatusOK, toRecipeResponse(updated))
}

// Delete handles DELETE /recipes/:id.
//
// @Summary      Delete a recipe
// @Tags         recipes
// @Security     BearerAuth
// @Param        id  path  string  true  "Recipe id"
// @Success      204  "recipe deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	recipe, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if err := domain.CheckRecipeAccess(principal, recipe.Owner.ID); err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.RecipeWritesTotal.WithLabelValues("deleted").Inc()

	return c.NoContent(http.StatusNoContent)
}

// queryInt parses an integer query parameter. Absent means 0 (no
// constraint); a malformed or non-positive value is a validation error.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, domain.Invalid("%s must be a positive integer", name)
	}
	return n, nil
}

// queryWindow parses the shared page/results pagination parameters.
func queryWindow(c echo.Context) (page, results int, err error) {
	if page, err = queryInt(c, "page"); err != nil {
		return 0, 0, err
	}
	if results, err = queryInt(c, "results"); err != nil {
		return 0, 0, err
	}
	return page, results, nil
}
