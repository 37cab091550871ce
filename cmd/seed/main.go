package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"catalog/internal/config"
	"catalog/internal/db"
	"catalog/internal/model"
	"catalog/internal/repository"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

type seedProduct struct {
	name        string
	category    string
	description string
	price       string
}

var users = []seedUser{
	{name: "Admin", email: "admin@example.com", password: "password123", role: model.RoleAdmin},
	{name: "User", email: "user@example.com", password: "password123", role: model.RoleUser},
}

var products = []seedProduct{
	{name: "Wireless Mouse", category: "Electronics", description: "2.4 GHz wireless mouse", price: "19.99"},
	{name: "Mechanical Keyboard", category: "Electronics", description: "Tenkeyless mechanical keyboard", price: "89.90"},
	{name: "Office Chair", category: "Furniture", description: "Ergonomic office chair", price: "149.00"},
	{name: "Standing Desk", category: "Furniture", description: "Height adjustable desk", price: "299.00"},
	{name: "Notebook", category: "Stationery", description: "A5 dotted notebook", price: "4.50"},
}

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Info().Msg("starting seed")

	cfg := config.Load()
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Product{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	for _, u := range users {
		exists, err := userRepo.ExistsByEmail(ctx, u.email)
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("check user")
		}
		if exists {
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), 10)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}
		user := &model.User{Name: u.name, Email: u.email, PasswordHash: string(hashed), Role: u.role}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("create user")
		}
		log.Info().Str("email", u.email).Str("role", u.role).Msg("user seeded")
	}

	categoryIDs := map[string]uint{}
	for _, p := range products {
		if _, ok := categoryIDs[p.category]; ok {
			continue
		}
		id, err := ensureCategory(ctx, gormDB, categoryRepo, p.category)
		if err != nil {
			log.Fatal().Err(err).Str("name", p.category).Msg("seed category")
		}
		categoryIDs[p.category] = id
	}

	seeded := 0
	for _, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			log.Fatal().Err(err).Str("name", p.name).Msg("parse price")
		}
		product := &model.Product{
			Name:        p.name,
			IDCategory:  categoryIDs[p.category],
			Description: p.description,
			Price:       price,
			Image:       "products/seed-placeholder.png",
		}
		if err := productRepo.Create(ctx, product); err != nil {
			log.Fatal().Err(err).Str("name", p.name).Msg("create product")
		}
		seeded++
	}

	log.Info().Int("products", seeded).Int("categories", len(categoryIDs)).Msg("seed complete")
}

// ensureCategory creates the category unless one with the name exists.
func ensureCategory(ctx context.Context, gormDB *gorm.DB, repo repository.CategoryRepository, name string) (uint, error) {
	var existing model.Category
	err := gormDB.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return 0, err
	}
	category := &model.Category{Name: name}
	if err := repo.Create(ctx, category); err != nil {
		return 0, err
	}
	return category.ID, nil
}
