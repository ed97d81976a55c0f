package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/storelane/shopcore/internal/catalog/app"
	"github.com/storelane/shopcore/internal/catalog/domain"
)

type ProductRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) List(ctx context.Context, f app.Filter) ([]domain.Product, error) {
	db := r.db.WithContext(ctx).Model(&domain.Product{})

	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}
	switch f.Sort {
	case app.SortPriceAsc:
		db = db.Order("price ASC")
	case app.SortPriceDesc:
		db = db.Order("price DESC")
	default:
		db = db.Order("product_id")
	}

	var products []domain.Product
	if err := db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, "product_id = ?", id).Error
}

func (r *ProductRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).Order("category_id").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *ProductRepo) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).First(&c, "category_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Category{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Category{}, err
	}
	return c, nil
}
