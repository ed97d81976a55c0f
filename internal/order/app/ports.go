package app

import (
	"context"

	catalogdomain "github.com/storelane/shopcore/internal/catalog/domain"
	"github.com/storelane/shopcore/internal/order/domain"
)

// Store is the transactional storage the order core runs on. InTx hands
// the callback a Store bound to one transaction; every write the
// callback performs commits or rolls back as a unit.
type Store interface {
	InTx(ctx context.Context, fn func(tx Store) error) error

	GetProduct(ctx context.Context, id int64) (catalogdomain.Product, error)
	// AdjustStock applies delta to a product's stock. A negative delta
	// is conditional: it only applies when stock >= expectedMin, and
	// returns ErrStockConflict otherwise. A positive delta treats NULL
	// stock as zero.
	AdjustStock(ctx context.Context, productID, delta, expectedMin int64) error

	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int64) (domain.Order, error)
	// TransitionOrder moves the order to the given status only while its
	// current status is in from, and reports whether a row changed. The
	// condition runs inside the UPDATE, so two racing transitions cannot
	// both win.
	TransitionOrder(ctx context.Context, id int64, from []string, to string) (bool, error)
	ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error)

	ClearCart(ctx context.Context, userID int64) error
}

// CartReader exposes the persisted cart to the quote path.
type CartReader interface {
	ListItems(ctx context.Context, userID int64) ([]domain.CartLine, error)
}

// EventPublisher receives order events after the owning transaction has
// committed. Failures are logged, never propagated.
type EventPublisher interface {
	Publish(ctx context.Context, evt domain.Event) error
}

// IdempotencyGuard claims a creation key. Claim returns false when the
// key was already used.
type IdempotencyGuard interface {
	Claim(ctx context.Context, key string) (bool, error)
}
