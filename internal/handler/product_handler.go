package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "stockroom/internal/errors"
	"stockroom/internal/service"
)

// ProductHandler handles inventory endpoints. All of them sit behind the
// bearer-token middleware; no product record is touched without a valid
// token.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest represents a create or update request.
type ProductRequest struct {
	Name     string          `json:"name" validate:"required"`
	Quantity int             `json:"quantity" validate:"gte=0"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category" validate:"required"`
}


// List godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Product
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	fields, ok := h.bindProduct(c)
	if !ok {
		return nil
	}

	product, err := h.productService.Create(c.Request().Context(), fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.ErrProductNotFound)
	}

	fields, ok := h.bindProduct(c)
	if !ok {
		return nil
	}

	product, err := h.productService.Update(c.Request().Context(), id, fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, apperrors.ErrProductNotFound)
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"msg": "Product deleted."})
}

// bindProduct binds and validates the request body, writing the 400
// response itself when something is off.
func (h *ProductHandler) bindProduct(c echo.Context) (service.ProductFields, bool) {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Msg: "Invalid product data."})
		return service.ProductFields{}, false
	}
	if err := c.Validate(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Msg: "Invalid product data."})
		return service.ProductFields{}, false
	}
	// validator has no tag support for decimal.Decimal
	if req.Price.IsNegative() {
		_ = c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Msg: "Invalid product data."})
		return service.ProductFields{}, false
	}
	return service.ProductFields{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Category: req.Category,
	}, true
}
