package app

import (
	"context"

	"github.com/storelane/shopcore/internal/cart/domain"
)

type CartRepo interface {
	List(ctx context.Context, userID int64) ([]domain.CartItem, error)
	GetByProduct(ctx context.Context, userID, productID int64) (domain.CartItem, error)
	// Upsert adds quantity to the user's row for the product, creating
	// it when absent.
	Upsert(ctx context.Context, userID, productID, quantity int64) (domain.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID, quantity int64) (domain.CartItem, error)
	Remove(ctx context.Context, userID, cartItemID int64) error
}
