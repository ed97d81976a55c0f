package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	cartdomain "github.com/storelane/shopcore/internal/cart/domain"
	catalogdomain "github.com/storelane/shopcore/internal/catalog/domain"
	"github.com/storelane/shopcore/internal/order/app"
	"github.com/storelane/shopcore/internal/order/domain"
)

// Store implements app.Store on gorm. InTx rebinds the receiver to the
// transaction handle, so nested calls inside the callback share it.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx app.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) GetProduct(ctx context.Context, id int64) (catalogdomain.Product, error) {
	var p catalogdomain.Product
	err := s.db.WithContext(ctx).First(&p, "product_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalogdomain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return catalogdomain.Product{}, err
	}
	return p, nil
}

func (s *Store) AdjustStock(ctx context.Context, productID, delta, expectedMin int64) error {
	db := s.db.WithContext(ctx).Model(&catalogdomain.Product{})

	if delta < 0 {
		// NULL stock fails the comparison, so unstocked products are
		// never decremented.
		res := db.
			Where("product_id = ? AND stock >= ?", productID, expectedMin).
			UpdateColumn("stock", gorm.Expr("stock - ?", -delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return app.ErrStockConflict
		}
		return nil
	}

	res := db.
		Where("product_id = ?", productID).
		UpdateColumn("stock", gorm.Expr("COALESCE(stock, 0) + ?", delta))
	return res.Error
}

func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	var order domain.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *Store) TransitionOrder(ctx context.Context, id int64, from []string, to string) (bool, error) {
	// The status check lives inside the UPDATE. Under READ COMMITTED a
	// racing transition blocks on the row and re-evaluates the condition
	// after the winner commits, matching zero rows.
	res := s.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) ListOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.WithContext(ctx).
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("time_create DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) ClearCart(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cartdomain.CartItem{}).Error
}
