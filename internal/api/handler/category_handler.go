package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List returns every category.
//
// @Summary      List categories
// @Tags         category
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /v1/api/category [get]
func (h *CategoryHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns one category.
//
// @Summary      Get a category
// @Tags         category
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  domain.Category
// @Failure      404  {object}  map[string]string
// @Router       /v1/api/category/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := pathID(c, domain.ErrCategoryNotFound)
	if err != nil {
		return err
	}
	category, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Create adds a category.
//
// @Summary      Create a category
// @Tags         category
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/api/category [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.service.Create(c.Request().Context(), toCategoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// Update renames a category.
//
// @Summary      Update a category
// @Tags         category
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Category ID"
// @Param        body  body      categoryRequest  true  "Category"
// @Success      200   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/api/category/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := pathID(c, domain.ErrCategoryNotFound)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	category, err := h.service.Update(c.Request().Context(), id, toCategoryInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category.
//
// @Summary      Delete a category
// @Tags         category
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/api/category/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := pathID(c, domain.ErrCategoryNotFound)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "category removed"})
}
