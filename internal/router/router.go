package router

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"catalog/internal/auth"
	"catalog/internal/config"
	"catalog/internal/errors"
	"catalog/internal/handler"
	"catalog/internal/model"
	"catalog/internal/repository"
)

// Register wires routes and middleware. Reads on categories and products are
// public; mutations sit behind the two-tier gate (valid token, admin role).
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users repository.UserRepository,
	tokens auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
	productHandler *handler.ProductHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "welcome my api")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/category", categoryHandler.List)
	e.GET("/category/:id", categoryHandler.Get)
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, errors.Fail("Unauthenticated"))
		},
	})

	// Authenticated routes
	authed := e.Group("", jwtMiddleware, ResolvePrincipal(users, tokens))
	authed.GET("/me", authHandler.Me)

	// Admin-only mutations
	admin := e.Group("", jwtMiddleware, ResolvePrincipal(users, tokens), RequireAdmin)
	admin.POST("/category", categoryHandler.Create)
	admin.PUT("/category/:id", categoryHandler.Update)
	admin.DELETE("/category/:id", categoryHandler.Delete)
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)
}

// ResolvePrincipal turns validated token claims into the request principal.
// The token must still be on record in the token store and resolve to an
// existing user.
func ResolvePrincipal(users repository.UserRepository, tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errors.Fail("Unauthenticated"))
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errors.Fail("Unauthenticated"))
			}

			ctx := c.Request().Context()
			if _, err := tokens.GetToken(ctx, claims.ID); err != nil {
				return c.JSON(http.StatusUnauthorized, errors.Fail("Token expired or revoked"))
			}
			user, err := users.FindByID(ctx, claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errors.Fail("Unauthenticated"))
			}

			c.Set(handler.PrincipalKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects principals without the admin role.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get(handler.PrincipalKey).(*model.User)
		if !ok || !user.IsAdmin() {
			return c.JSON(http.StatusForbidden, errors.Fail("Forbidden: admin access required"))
		}
		return next(c)
	}
}
