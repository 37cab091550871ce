package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"catalog/internal/cache"
	"catalog/internal/errors"
	"catalog/internal/model"
	"catalog/internal/repository"
	"catalog/internal/validation"
)

const categoryCacheTTL = 5 * time.Minute

// CategoryCreateInput carries a category creation request.
type CategoryCreateInput struct {
	Name string `json:"name" form:"name" validate:"required,max=255"`
}

// CategoryUpdateInput carries a partial category update. A nil Name means
// the field was absent and keeps its prior value.
type CategoryUpdateInput struct {
	Name *string `json:"name" form:"name" validate:"omitnil,required,max=255"`
}

// CategoryService handles category CRUD.
type CategoryService interface {
	List(ctx context.Context) ([]model.Category, error)
	Get(ctx context.Context, id uint) (*model.Category, error)
	Create(ctx context.Context, input CategoryCreateInput) (*model.Category, error)
	Update(ctx context.Context, id uint, input CategoryUpdateInput) (*model.Category, error)
	Delete(ctx context.Context, id uint) error
}

type categoryService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	cache      *cache.Client
	log        zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository, products repository.ProductRepository, cache *cache.Client, log zerolog.Logger) CategoryService {
	return &categoryService{categories: categories, products: products, cache: cache, log: log}
}

func categoryCacheKey(id uint) string {
	return fmt.Sprintf("category:%d", id)
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get retrieves a category by id with read-through caching.
func (s *categoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	var cached model.Category
	if s.cache.GetJSON(ctx, categoryCacheKey(id), &cached) {
		return &cached, nil
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.log.Warn().Str("op", "category.get").Str("kind", "not_found").Uint("id", id).Msg("category not found")
			return nil, errors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	s.cache.SetJSON(ctx, categoryCacheKey(id), category, categoryCacheTTL)
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, input CategoryCreateInput) (*model.Category, error) {
	fields := validation.Struct(&input)
	if input.Name != "" {
		taken, err := s.categories.ExistsByName(ctx, input.Name, 0)
		if err != nil {
			return nil, fmt.Errorf("check name uniqueness: %w", err)
		}
		if taken {
			fields.Add("name", "The name has already been taken.")
		}
	}
	if fields.Any() {
		s.log.Warn().Str("op", "category.create").Str("kind", "validation").Msg(fields.Summary())
		return nil, errors.NewValidationError(fields)
	}

	category := &model.Category{Name: input.Name}
	if err := s.categories.Create(ctx, category); err != nil {
		if err == gorm.ErrDuplicatedKey {
			fields.Add("name", "The name has already been taken.")
			return nil, errors.NewValidationError(fields)
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info().Str("op", "category.create").Uint("id", category.ID).Msg("category created")
	return category, nil
}

// Update applies the provided fields only. The uniqueness check excludes the
// record itself, so updating a category to its current name succeeds.
func (s *categoryService) Update(ctx context.Context, id uint, input CategoryUpdateInput) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.log.Warn().Str("op", "category.update").Str("kind", "not_found").Uint("id", id).Msg("category not found")
			return nil, errors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}

	fields := validation.Struct(&input)
	if input.Name != nil && *input.Name != "" {
		taken, err := s.categories.ExistsByName(ctx, *input.Name, id)
		if err != nil {
			return nil, fmt.Errorf("check name uniqueness: %w", err)
		}
		if taken {
			fields.Add("name", "The name has already been taken.")
		}
	}
	if fields.Any() {
		s.log.Warn().Str("op", "category.update").Str("kind", "validation").Msg(fields.Summary())
		return nil, errors.NewValidationError(fields)
	}

	if input.Name != nil {
		category.Name = *input.Name
	}
	if err := s.categories.Update(ctx, category); err != nil {
		if err == gorm.ErrDuplicatedKey {
			fields.Add("name", "The name has already been taken.")
			return nil, errors.NewValidationError(fields)
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryCacheKey(id))
	s.log.Info().Str("op", "category.update").Uint("id", id).Msg("category updated")
	return category, nil
}

// Delete removes a category. A category still referenced by products is not
// deleted; the caller gets a validation failure instead.
func (s *categoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.log.Warn().Str("op", "category.delete").Str("kind", "not_found").Uint("id", id).Msg("category not found")
			return errors.ErrCategoryNotFound
		}
		return fmt.Errorf("find category: %w", err)
	}

	inUse, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count category products: %w", err)
	}
	if inUse > 0 {
		s.log.Warn().Str("op", "category.delete").Str("kind", "in_use").Uint("id", id).Int64("products", inUse).Msg("category still referenced")
		return errors.ErrCategoryInUse
	}

	if err := s.categories.Delete(ctx, category); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	_ = s.cache.Delete(ctx, categoryCacheKey(id))
	s.log.Info().Str("op", "category.delete").Uint("id", id).Msg("category deleted")
	return nil
}
