package main

import (
	"net/http"
	"os"

	_ "catalog/docs" // swagger registration

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"catalog/internal/auth"
	"catalog/internal/cache"
	"catalog/internal/config"
	"catalog/internal/db"
	"catalog/internal/handler"
	"catalog/internal/model"
	"catalog/internal/repository"
	"catalog/internal/router"
	"catalog/internal/service"
	"catalog/internal/storage"
)

// @title Catalog Management API
// @version 1.0
// @description Catalog management API with bearer-token authentication, role-gated category and product CRUD, and image attachments.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	blobStore := storage.NewDiskStore(cfg.StoragePath)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, log)
	categoryService := service.NewCategoryService(categoryRepo, productRepo, cacheClient, log)
	productService := service.NewProductService(productRepo, categoryRepo, blobStore, cacheClient, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)

	router.Register(e, cfg, userRepo, tokenStore, authHandler, categoryHandler, productHandler)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
