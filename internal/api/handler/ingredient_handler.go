package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
)

// IngredientHandler handles HTTP requests for ingredient operations.
type IngredientHandler struct {
	service ports.IngredientService
}

func NewIngredientHandler(service ports.IngredientService) *IngredientHandler {
	return &IngredientHandler{service: service}
}

type createIngredientRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type ingredientResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Popularity int       `json:"popularity"`
	Recipes    []string  `json:"recipes"`
	CreatedAt  time.Time `json:"created_at"`
}

type listIngredientsResponse struct {
	Data []ingredientResponse `json:"data"`
}

func toIngredientResponse(ing *domain.Ingredient) ingredientResponse {
	recipes := ing.Recipes
	if recipes == nil {
		recipes = []string{}
	}
	return ingredientResponse{
		ID:         ing.ID,
		Name:       ing.Name,
		Popularity: ing.Popularity,
		Recipes:    recipes,
		CreatedAt:  ing.CreatedAt,
	}
}

// Create handles POST /ingredients.
//
// @Summary      Create an ingredient
// @Tags         ingredients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIngredientRequest  true  "Ingredient details"
// @Success      201   {object}  ingredientResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /ingredients [post]
func (h *IngredientHandler) Create(c echo.Context) error {
	var req createIngredientRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ingredient, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toIngredientResponse(ingredient))
}

// Get handles GET /ingredients/:id.
//
// @Summary      Get an ingredient by id
// @Tags         ingredients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Ingredient id"
// @Success      200  {object}  ingredientResponse
// @Failure      404  {object}  map[string]string
// @Router       /ingredients/{id} [get]
func (h *IngredientHandler) Get(c echo.Context) error {
	ingredient, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIngredientResponse(ingredient))
}

// List handles GET /ingredients, sorted by popularity.
//
// @Summary      List ingredients
// @Tags         ingredients
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int  false  "Page number (1-based)"
// @Param        results  query     int  false  "Results per page"
// @Success      200  {object}  listIngredientsResponse
// @Router       /ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	page, results, err := queryWindow(c)
	if err != nil {
		return err
	}

	ingredients, err := h.service.List(c.Request().Context(), ports.ListInput{
		Page:    page,
		Results: results,
	})
	if err != nil {
		return err
	}

	data := make([]ingredientResponse, len(ingredients))
	for i, ing := range ingredients {
		data[i] = toIngredientResponse(ing)
	}
	return c.JSON(http.StatusOK, listIngredientsResponse{Data: data})
}

// Delete handles DELETE /ingredients/:id. An ingredient still referenced by
// recipes cannot be deleted.
//
// @Summary      Delete an ingredient
// @Tags         ingredients
// @Security     BearerAuth
// @Param        id  path  string  true  "Ingredient id"
// @Success      204  "ingredient deleted"
// @Failure      404  {object}  map[string]string
// @Failure      405  {object}  map[string]string
// @Router       /ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
