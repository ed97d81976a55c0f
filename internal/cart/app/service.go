package app

import (
	"context"
	"errors"

	"github.com/storelane/shopcore/internal/cart/domain"
)

var (
	ErrItemNotFound = errors.New("cart item not found")
	ErrBadQuantity  = errors.New("quantity must be at least 1")
)

type Service struct {
	repo CartRepo
}

func NewService(repo CartRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListItems(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	return s.repo.List(ctx, userID)
}

func (s *Service) AddItem(ctx context.Context, userID, productID, quantity int64) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, ErrBadQuantity
	}
	return s.repo.Upsert(ctx, userID, productID, quantity)
}

func (s *Service) GetItemByProduct(ctx context.Context, userID, productID int64) (domain.CartItem, error) {
	return s.repo.GetByProduct(ctx, userID, productID)
}

func (s *Service) SetItemQuantity(ctx context.Context, userID, productID, quantity int64) (domain.CartItem, error) {
	if quantity < 1 {
		return domain.CartItem{}, ErrBadQuantity
	}
	return s.repo.SetQuantity(ctx, userID, productID, quantity)
}

func (s *Service) RemoveItem(ctx context.Context, userID, cartItemID int64) error {
	return s.repo.Remove(ctx, userID, cartItemID)
}
