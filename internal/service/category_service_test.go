package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "catalog/internal/errors"
	"catalog/internal/model"
)

func newCategoryService(categories *MockCategoryRepository, products *MockProductRepository) CategoryService {
	return NewCategoryService(categories, products, nil, zerolog.Nop())
}

func TestCategoryService_Create(t *testing.T) {
	t.Run("creates with unique name", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("ExistsByName", mock.Anything, "Electronics", uint(0)).Return(false, nil)
		categories.On("Create", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

		svc := newCategoryService(categories, new(MockProductRepository))
		category, err := svc.Create(context.Background(), CategoryCreateInput{Name: "Electronics"})

		assert.NoError(t, err)
		assert.Equal(t, "Electronics", category.Name)
		categories.AssertExpectations(t)
	})

	t.Run("duplicate name fails validation", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("ExistsByName", mock.Anything, "Electronics", uint(0)).Return(true, nil)

		svc := newCategoryService(categories, new(MockProductRepository))
		_, err := svc.Create(context.Background(), CategoryCreateInput{Name: "Electronics"})

		var verr *apperrors.ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"The name has already been taken."}, verr.Fields["name"])
		categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing name fails validation", func(t *testing.T) {
		svc := newCategoryService(new(MockCategoryRepository), new(MockProductRepository))
		_, err := svc.Create(context.Background(), CategoryCreateInput{})

		var verr *apperrors.ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"The name field is required."}, verr.Fields["name"])
	})
}

func TestCategoryService_Update(t *testing.T) {
	existing := func() *model.Category { return &model.Category{ID: 3, Name: "Electronics"} }

	t.Run("updating to own name succeeds", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint(3)).Return(existing(), nil)
		categories.On("ExistsByName", mock.Anything, "Electronics", uint(3)).Return(false, nil)
		categories.On("Update", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

		name := "Electronics"
		svc := newCategoryService(categories, new(MockProductRepository))
		category, err := svc.Update(context.Background(), 3, CategoryUpdateInput{Name: &name})

		assert.NoError(t, err)
		assert.Equal(t, "Electronics", category.Name)
		categories.AssertExpectations(t)
	})

	t.Run("absent name keeps prior value", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint(3)).Return(existing(), nil)
		categories.On("Update", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)

		svc := newCategoryService(categories, new(MockProductRepository))
		category, err := svc.Update(context.Background(), 3, CategoryUpdateInput{})

		assert.NoError(t, err)
		assert.Equal(t, "Electronics", category.Name)
		categories.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("present empty name fails required rule", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint(3)).Return(existing(), nil)

		empty := ""
		svc := newCategoryService(categories, new(MockProductRepository))
		_, err := svc.Update(context.Background(), 3, CategoryUpdateInput{Name: &empty})

		var verr *apperrors.ValidationError
		assert.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"The name field is required."}, verr.Fields["name"])
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := newCategoryService(categories, new(MockProductRepository))
		_, err := svc.Update(context.Background(), 99, CategoryUpdateInput{})

		assert.Equal(t, apperrors.ErrCategoryNotFound, err)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("deletes unreferenced category", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint(3)).Return(&model.Category{ID: 3, Name: "Electronics"}, nil)
		categories.On("Delete", mock.Anything, mock.AnythingOfType("*model.Category")).Return(nil)
		products := new(MockProductRepository)
		products.On("CountByCategory", mock.Anything, uint(3)).Return(int64(0), nil)

		svc := newCategoryService(categories, products)
		assert.NoError(t, svc.Delete(context.Background(), 3))
		categories.AssertExpectations(t)
	})

	t.Run("referenced category is blocked", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint(3)).Return(&model.Category{ID: 3, Name: "Electronics"}, nil)
		products := new(MockProductRepository)
		products.On("CountByCategory", mock.Anything, uint(3)).Return(int64(2), nil)

		svc := newCategoryService(categories, products)
		err := svc.Delete(context.Background(), 3)

		assert.Equal(t, apperrors.ErrCategoryInUse, err)
		categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := newCategoryService(categories, new(MockProductRepository))
		assert.Equal(t, apperrors.ErrCategoryNotFound, svc.Delete(context.Background(), 99))
	})
}

func TestCategoryService_Get(t *testing.T) {
	t.Run("unknown id is not found", func(t *testing.T) {
		categories := new(MockCategoryRepository)
		categories.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		svc := newCategoryService(categories, new(MockProductRepository))
		_, err := svc.Get(context.Background(), 42)
		assert.Equal(t, apperrors.ErrCategoryNotFound, err)
	})
}
