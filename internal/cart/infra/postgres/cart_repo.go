package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storelane/shopcore/internal/cart/app"
	"github.com/storelane/shopcore/internal/cart/domain"
)

type CartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) List(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("cart_item_id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartRepo) GetByProduct(ctx context.Context, userID, productID int64) (domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "user_id = ? AND product_id = ?", userID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CartItem{}, app.ErrItemNotFound
	}
	if err != nil {
		return domain.CartItem{}, err
	}
	return item, nil
}

func (r *CartRepo) Upsert(ctx context.Context, userID, productID, quantity int64) (domain.CartItem, error) {
	item := domain.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
			}),
		}).
		Create(&item).Error
	if err != nil {
		return domain.CartItem{}, err
	}
	return r.GetByProduct(ctx, userID, productID)
}

func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID, quantity int64) (domain.CartItem, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if res.Error != nil {
		return domain.CartItem{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.CartItem{}, app.ErrItemNotFound
	}
	return r.GetByProduct(ctx, userID, productID)
}

func (r *CartRepo) Remove(ctx context.Context, userID, cartItemID int64) error {
	res := r.db.WithContext(ctx).
		Where("cart_item_id = ? AND user_id = ?", cartItemID, userID).
		Delete(&domain.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return app.ErrItemNotFound
	}
	return nil
}
