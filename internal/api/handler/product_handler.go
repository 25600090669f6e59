package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns every product with its category.
//
// @Summary      List products
// @Tags         product
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /v1/api/product [get]
func (h *ProductHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns one product.
//
// @Summary      Get a product
// @Tags         product
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /v1/api/product/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, domain.ErrProductNotFound)
	if err != nil {
		return err
	}
	product, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// ListByCategory returns the products of one category. An unknown category
// yields an empty list.
//
// @Summary      List products of a category
// @Tags         product
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {array}   domain.Product
// @Router       /v1/api/product/categories/{id} [get]
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	id, err := pathID(c, domain.ErrCategoryNotFound)
	if err != nil {
		return err
	}
	list, err := h.service.ListByCategory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Create adds a product.
//
// @Summary      Create a product
// @Tags         product
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/api/product [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	product, err := h.service.Create(c.Request().Context(), toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// Update overwrites a product.
//
// @Summary      Update a product
// @Tags         product
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product ID"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/api/product/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, domain.ErrProductNotFound)
	if err != nil {
		return err
	}

	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	product, err := h.service.Update(c.Request().Context(), id, toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Delete removes a product.
//
// @Summary      Delete a product
// @Tags         product
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/api/product/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, domain.ErrProductNotFound)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "product removed"})
}
