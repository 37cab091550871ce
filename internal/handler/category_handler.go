package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"catalog/internal/errors"
	"catalog/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List godoc
// @Summary List all categories
// @Tags category
// @Produce json
// @Success 200 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /category [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.OK("Success get all category", categories))
}

// Get godoc
// @Summary Get a single category
// @Tags category
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Router /category/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.OK("Success get single category", category))
}

// Create godoc
// @Summary Create a category
// @Tags category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CategoryCreateInput true "Category data"
// @Success 200 {object} errors.Response
// @Failure 422 {object} errors.Response
// @Router /category [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var input service.CategoryCreateInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("Invalid request body"))
	}

	category, err := h.categoryService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.OK("Category Created Successfully", category))
}

// Update godoc
// @Summary Update a category
// @Tags category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Param request body service.CategoryUpdateInput true "Fields to update"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 422 {object} errors.Response
// @Router /category/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	// An explicit "name": null counts as present, so the required rule
	// still applies to it.
	nulls := explicitNulls(c, "name")

	var input service.CategoryUpdateInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("Invalid request body"))
	}
	if nulls["name"] {
		empty := ""
		input.Name = &empty
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.OK("Category Updated Successfully", category))
}

// Delete godoc
// @Summary Delete a category
// @Tags category
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 404 {object} errors.Response
// @Failure 422 {object} errors.Response
// @Router /category/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, errors.OK("Category Deleted Successfully", nil))
}
