package adapter

import (
	"context"

	cartapp "github.com/storelane/shopcore/internal/cart/app"
	orderdomain "github.com/storelane/shopcore/internal/order/domain"
)

// CartServiceReader exposes the cart service to the order module's
// quote path without coupling it to cart internals.
type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) ListItems(ctx context.Context, userID int64) ([]orderdomain.CartLine, error) {
	items, err := r.svc.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]orderdomain.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, orderdomain.CartLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return lines, nil
}
