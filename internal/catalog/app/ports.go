package app

import (
	"context"

	"github.com/storelane/shopcore/internal/catalog/domain"
)

// Filter narrows and orders a product listing. Zero value means "all
// products, default order".
type Filter struct {
	CategoryID *int64
	Sort       string // "" | "price_asc" | "price_desc"
}

type ProductRepo interface {
	List(ctx context.Context, f Filter) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
}
