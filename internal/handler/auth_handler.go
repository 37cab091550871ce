package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"catalog/internal/errors"
	"catalog/internal/model"
	"catalog/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "Registration data"
// @Success 201 {object} errors.Response
// @Failure 422 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var input service.RegisterInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("Invalid request body"))
	}

	user, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, errors.OK("User registered successfully", user))
}

// Login godoc
// @Summary Login and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Credentials"
// @Success 200 {object} errors.Response
// @Failure 400 {object} errors.Response
// @Failure 500 {object} errors.Response
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var input service.LoginInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errors.Fail("Invalid request body"))
	}

	token, err := h.authService.Login(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, errors.OK("Login successful", echo.Map{"token": token}))
}

// Me godoc
// @Summary Current authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Response
// @Failure 401 {object} errors.Response
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := c.Get(PrincipalKey).(*model.User)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errors.Fail("Unauthenticated"))
	}
	return c.JSON(http.StatusOK, errors.OK("User information retrieved successfully", user))
}
