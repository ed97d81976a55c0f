package app

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/storelane/shopcore/internal/catalog/domain"
	identitydomain "github.com/storelane/shopcore/internal/identity/domain"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrAdminOnly        = errors.New("is admin only")
	ErrFilterRequired   = errors.New("at least one filter parameter (sort or category) is required")
	ErrBadDiscountRange = errors.New("discount percentage must be between 0 and 100")
)

const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{repo: repo}
}

// ProductInput carries a create or patch payload. Nil pointers in a
// patch leave the stored value alone.
type ProductInput struct {
	Name               *string
	Description        *string
	Price              *decimal.Decimal
	DiscountPercentage *decimal.Decimal
	Stock              *int64
	ImageURL           *string
	CategoryID         *int64
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx, Filter{})
}

func (s *Service) FilterProducts(ctx context.Context, f Filter) ([]domain.Product, error) {
	if f.CategoryID == nil && f.Sort == "" {
		return nil, ErrFilterRequired
	}
	switch f.Sort {
	case "", SortPriceAsc, SortPriceDesc:
	default:
		// Unknown sort values fall through unsorted, as before.
		f.Sort = ""
	}
	return s.repo.List(ctx, f)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, actor identitydomain.Identity, in ProductInput) (domain.Product, error) {
	if !actor.Admin {
		return domain.Product{}, ErrAdminOnly
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.Price == nil {
		return domain.Product{}, ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return domain.Product{}, ErrInvalidInput
	}
	if err := checkDiscount(in.DiscountPercentage); err != nil {
		return domain.Product{}, err
	}
	if in.Stock != nil && *in.Stock < 0 {
		return domain.Product{}, ErrInvalidInput
	}

	p := domain.Product{
		Name:       strings.TrimSpace(*in.Name),
		Price:      *in.Price,
		Stock:      in.Stock,
		CategoryID: in.CategoryID,
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.DiscountPercentage != nil {
		p.DiscountPercentage = decimal.NullDecimal{Decimal: *in.DiscountPercentage, Valid: true}
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *Service) UpdateProduct(ctx context.Context, actor identitydomain.Identity, id int64, in ProductInput) (domain.Product, error) {
	if !actor.Admin {
		return domain.Product{}, ErrAdminOnly
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return domain.Product{}, ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return domain.Product{}, ErrInvalidInput
		}
		p.Price = *in.Price
	}
	if in.DiscountPercentage != nil {
		if err := checkDiscount(in.DiscountPercentage); err != nil {
			return domain.Product{}, err
		}
		p.DiscountPercentage = decimal.NullDecimal{Decimal: *in.DiscountPercentage, Valid: true}
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return domain.Product{}, ErrInvalidInput
		}
		p.Stock = in.Stock
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.CategoryID != nil {
		p.CategoryID = in.CategoryID
	}

	if err := s.repo.Update(ctx, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, actor identitydomain.Identity, id int64) error {
	if !actor.Admin {
		return ErrAdminOnly
	}
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func checkDiscount(d *decimal.Decimal) error {
	if d == nil {
		return nil
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return ErrBadDiscountRange
	}
	return nil
}
