package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"catalog/internal/cache"
	"catalog/internal/errors"
	"catalog/internal/model"
	"catalog/internal/repository"
	"catalog/internal/storage"
	"catalog/internal/validation"
)

const (
	productCacheTTL = 5 * time.Minute
	productImageDir = "products"
)

// ProductCreateInput carries a product creation request. Numeric fields
// arrive as strings because the request is multipart form data.
type ProductCreateInput struct {
	Name        string             `json:"name" form:"name" validate:"required,max=255"`
	IDCategory  string             `json:"id_category" form:"id_category" validate:"required,numeric"`
	Description string             `json:"description" form:"description" validate:"required"`
	Price       string             `json:"price" form:"price" validate:"required,numeric"`
	Image       *validation.Upload `json:"-" form:"-"`
}

// ProductUpdateInput carries a partial product update. Nil fields were
// absent and keep their prior values. NameExplicitNull marks a JSON body
// that carried "name": null, which is rejected.
type ProductUpdateInput struct {
	Name             *string            `json:"name" form:"name" validate:"omitnil,required,max=255"`
	NameExplicitNull bool               `json:"-" form:"-"`
	IDCategory       *string            `json:"id_category" form:"id_category" validate:"omitnil,required,numeric"`
	Description      *string            `json:"description" form:"description" validate:"omitnil"`
	Price            *string            `json:"price" form:"price" validate:"omitnil,required,numeric"`
	Image            *validation.Upload `json:"-" form:"-"`
}

// ProductService handles product CRUD and the filtered listing.
type ProductService interface {
	List(ctx context.Context, filters repository.ProductFilters) ([]model.Product, error)
	Get(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, input ProductCreateInput) (*model.Product, error)
	Update(ctx context.Context, id uint, input ProductUpdateInput) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	blobs      storage.Store
	cache      *cache.Client
	log        zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, blobs storage.Store, cache *cache.Client, log zerolog.Logger) ProductService {
	return &productService{products: products, categories: categories, blobs: blobs, cache: cache, log: log}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *productService) List(ctx context.Context, filters repository.ProductFilters) ([]model.Product, error) {
	products, err := s.products.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get retrieves a product by id with read-through caching.
func (s *productService) Get(ctx context.Context, id uint) (*model.Product, error) {
	var cached model.Product
	if s.cache.GetJSON(ctx, productCacheKey(id), &cached) {
		return &cached, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.log.Warn().Str("op", "product.get").Str("kind", "not_found").Uint("id", id).Msg("product not found")
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	s.cache.SetJSON(ctx, productCacheKey(id), product, productCacheTTL)
	return product, nil
}

func (s *productService) Create(ctx context.Context, input ProductCreateInput) (*model.Product, error) {
	fields := validation.Struct(&input)

	categoryID, err := s.checkCategoryExists(ctx, input.IDCategory, fields)
	if err != nil {
		return nil, err
	}

	if input.Image == nil {
		fields.Add("image", "The image field is required.")
	} else {
		input.Image.CheckImage("image", fields)
	}

	if fields.Any() {
		s.log.Warn().Str("op", "product.create").Str("kind", "validation").Msg(fields.Summary())
		return nil, errors.NewValidationError(fields)
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		fields.Add("price", "The price must be a number.")
		return nil, errors.NewValidationError(fields)
	}

	imagePath, err := s.blobs.Save(productImageDir, input.Image.Extension(), input.Image.Content)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	product := &model.Product{
		Name:        input.Name,
		IDCategory:  categoryID,
		Description: input.Description,
		Price:       price,
		Image:       imagePath,
	}
	if err := s.products.Create(ctx, product); err != nil {
		_ = s.blobs.Delete(imagePath)
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info().Str("op", "product.create").Uint("id", product.ID).Msg("product created")
	return product, nil
}

// Update applies the provided fields only. With a new image the fresh blob
// is stored first, the record updated, and the previous blob removed last.
func (s *productService) Update(ctx context.Context, id uint, input ProductUpdateInput) (*model.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.log.Warn().Str("op", "product.update").Str("kind", "not_found").Uint("id", id).Msg("product not found")
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	fields := validation.Struct(&input)

	if input.NameExplicitNull {
		fields.Add("name", "The name field cannot be null if present.")
	}

	var categoryID uint
	if input.IDCategory != nil {
		categoryID, err = s.checkCategoryExists(ctx, *input.IDCategory, fields)
		if err != nil {
			return nil, err
		}
	}
	if input.Image != nil {
		input.Image.CheckImage("image", fields)
	}

	if fields.Any() {
		s.log.Warn().Str("op", "product.update").Str("kind", "validation").Msg(fields.Summary())
		return nil, errors.NewValidationError(fields)
	}

	var newImagePath string
	if input.Image != nil {
		newImagePath, err = s.blobs.Save(productImageDir, input.Image.Extension(), input.Image.Content)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
	}

	previousImage := product.Image
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.IDCategory != nil {
		product.IDCategory = categoryID
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		price, perr := decimal.NewFromString(*input.Price)
		if perr != nil {
			fields.Add("price", "The price must be a number.")
			return nil, errors.NewValidationError(fields)
		}
		product.Price = price
	}
	if newImagePath != "" {
		product.Image = newImagePath
	}

	if err := s.products.Update(ctx, product); err != nil {
		if newImagePath != "" {
			_ = s.blobs.Delete(newImagePath)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	if newImagePath != "" && previousImage != "" {
		if derr := s.blobs.Delete(previousImage); derr != nil {
			s.log.Warn().Str("op", "product.update").Uint("id", id).Err(derr).Msg("previous image cleanup failed")
		}
	}

	_ = s.cache.Delete(ctx, productCacheKey(id))
	s.log.Info().Str("op", "product.update").Uint("id", id).Msg("product updated")
	return product, nil
}

// Delete removes the record and its image blob.
func (s *productService) Delete(ctx context.Context, id uint) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.log.Warn().Str("op", "product.delete").Str("kind", "not_found").Uint("id", id).Msg("product not found")
			return errors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}

	if err := s.products.Delete(ctx, product); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if product.Image != "" {
		if derr := s.blobs.Delete(product.Image); derr != nil {
			s.log.Warn().Str("op", "product.delete").Uint("id", id).Err(derr).Msg("image cleanup failed")
		}
	}

	_ = s.cache.Delete(ctx, productCacheKey(id))
	s.log.Info().Str("op", "product.delete").Uint("id", id).Msg("product deleted")
	return nil
}

// checkCategoryExists resolves a raw id_category value against the category
// store, recording a violation when it does not reference a category. A
// value that is not an unsigned integer cannot reference one, so it is
// rejected without a lookup; a store failure propagates as an error.
func (s *productService) checkCategoryExists(ctx context.Context, raw string, fields validation.FieldErrors) (uint, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		fields.Add("id_category", "The selected id_category is invalid.")
		return 0, nil
	}
	exists, err := s.categories.ExistsByID(ctx, uint(id))
	if err != nil {
		return 0, fmt.Errorf("check category exists: %w", err)
	}
	if !exists {
		fields.Add("id_category", "The selected id_category is invalid.")
		return 0, nil
	}
	return uint(id), nil
}
