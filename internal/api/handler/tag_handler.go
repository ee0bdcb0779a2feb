package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/goodplates/recipes-api/internal/core/domain"
	"github.com/goodplates/recipes-api/internal/core/ports"
)

// TagHandler handles HTTP requests for tag operations.
type TagHandler struct {
	service ports.TagService
}

func NewTagHandler(service ports.TagService) *TagHandler {
	return &TagHandler{service: service}
}

type createTagRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type tagResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Popularity int       `json:"popularity"`
	Recipes    []string  `json:"recipes"`
	CreatedAt  time.Time `json:"created_at"`
}

type listTagsResponse struct {
	Data []tagResponse `json:"data"`
}

func toTagResponse(t *domain.Tag) tagResponse {
	recipes := t.Recipes
	if recipes == nil {
		recipes = []string{}
	}
	return tagResponse{
		ID:         t.ID,
		Name:       t.Name,
		Popularity: t.Popularity,
		Recipes:    recipes,
		CreatedAt:  t.CreatedAt,
	}
}

// Create handles POST /tags.
//
// @Summary      Create a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTagRequest  true  "Tag details"
// @Success      201   {object}  tagResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	var req createTagRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	tag, err := h.service.Create(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTagResponse(tag))
}

// Get handles GET /tags/:id.
//
// @Summary      Get a tag by id
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tag id"
// @Success      200  {object}  tagResponse
// @Failure      404  {object}  map[string]string
// @Router       /tags/{id} [get]
func (h *TagHandler) Get(c echo.Context) error {
	tag, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTagResponse(tag))
}

// List handles GET /tags, sorted by popularity.
//
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Security     BearerAuth
// @Param        page     query     int  false  "Page number (1-based)"
// @Param        results  query     int  false  "Results per page"
// @Success      200  {object}  listTagsResponse
// @Router       /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	page, results, err := queryWindow(c)
	if err != nil {
		return err
	}

	tags, err := h.service.List(c.Request().Context(), ports.ListInput{
		Page:    page,
		Results: results,
	})
	if err != nil {
		return err
	}

	data := make([]tagResponse, len(tags))
	for i, t := range tags {
		data[i] = toTagResponse(t)
	}
	return c.JSON(http.StatusOK, listTagsResponse{Data: data})
}

// Delete handles DELETE /tags/:id. A tag still referenced by recipes cannot
// be deleted.
//
// @Summary      Delete a tag
// @Tags         tags
// @Security     BearerAuth
// @Param        id  path  string  true  "Tag id"
// @Success      204  "tag deleted"
// @Failure      404  {object}  map[string]string
// @Failure      405  {object}  map[string]string
// @Router       /tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
