package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"catalog/internal/errors"
	"catalog/internal/repository"
	"catalog/internal/service"
	"catalog/internal/validation"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @Summary List products with optional filters
// @Tags products
// @Produce json
// @Param category query string false "Category id (exact match)"
// @Param price_min query number false "Lower price bound (applied with price_max)"
// @Param price_max query number false "Upper price bound (applied with price_min)"
// @Param name query string false "Substring match on name"
// @Success 200 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filters := parseFilters(c)

	products, err := h.productService.List(c.Request().Context(), filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.OK("Success get all products", products))
}

// Get godoc
// @Summary Get a single product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.OK("Successfully Get Single Product", product))
}

// Create godoc
// @Summary Create a product with an image attachment
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Name"
// @Param id_category formData int true "Category id"
// @Param description formData string true "Description"
// @Param price formData number true "Price"
// @Param image formData file true "Image, max 2048 KB"
// @Success 201 {object} errors.Response
// @Failure 422 {object} errors.Response
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var input service.ProductCreateInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("Invalid request body"))
	}

	upload, err := formUpload(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("Invalid image upload"))
	}
	input.Image = upload

	product, err := h.productService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, errors.OK("Product Created Successfully", product))
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param name formData string false "Name"
// @Param id_category formData int false "Category id"
// @Param description formData string false "Description"
// @Param price formData number false "Price"
// @Param image formData file false "Replacement image, max 2048 KB"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 422 {object} errors.Response
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	nulls := explicitNulls(c, "name")

	var input service.ProductUpdateInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("Invalid request body"))
	}
	input.NameExplicitNull = nulls["name"]

	upload, err := formUpload(c, "image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("Invalid image upload"))
	}
	input.Image = upload

	product, err := h.productService.Update(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.OK("Product Updated Successfully", product))
}

// Delete godoc
// @Summary Delete a product and its image
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.OK("Product Deleted Successfully", nil))
}

// parseFilters resolves the listing filters from the query string. Bounds
// that do not parse are treated as absent.
func parseFilters(c echo.Context) repository.ProductFilters {
	filters := repository.ProductFilters{
		Category: c.QueryParam("category"),
		Name:     c.QueryParam("name"),
	}
	if raw := c.QueryParam("price_min"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filters.PriceMin = &v
		}
	}
	if raw := c.QueryParam("price_max"); raw != "" {
		if v, err := decimal.NewFromString(raw); err == nil {
			filters.PriceMax = &v
		}
	}
	return filters
}

// formUpload reads an optional multipart file part. A missing part yields a
// nil upload, not an error.
func formUpload(c echo.Context, field string) (*validation.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return validation.UploadFromFileHeader(fh)
}
