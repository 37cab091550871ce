package repository

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"catalog/internal/model"
)

// ProductFilters narrows a product listing. All filters are optional and
// combine with AND. The price range applies only when both bounds are set.
type ProductFilters struct {
	Category string
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	Name     string
}

// Empty reports whether no filter was supplied; the listing then falls back
// to the default creation-time ordering.
func (f ProductFilters) Empty() bool {
	return f.Category == "" && f.PriceMin == nil && f.PriceMax == nil && f.Name == ""
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context, filters ProductFilters) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, product *model.Product) error
	CountByCategory(ctx context.Context, categoryID uint) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository builds a GORM-backed repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filters ProductFilters) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if filters.Category != "" {
		q = q.Where("id_category = ?", filters.Category)
	}
	if filters.PriceMin != nil && filters.PriceMax != nil {
		q = q.Where("price BETWEEN ? AND ?", filters.PriceMin, filters.PriceMax)
	}
	if filters.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filters.Name)+"%")
	}
	if filters.Empty() {
		q = q.Order("created_at asc")
	}

	var products []model.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Delete(product).Error
}

func (r *productRepository) CountByCategory(ctx context.Context, categoryID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Where("id_category = ?", categoryID).Count(&count).Error
	return count, err
}
