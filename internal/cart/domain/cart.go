package domain

import (
	catalogdomain "github.com/storelane/shopcore/internal/catalog/domain"
)

// CartItem is one row per (user, product); adding the same product again
// increments the existing row's quantity.
type CartItem struct {
	ID        int64                  `gorm:"column:cart_item_id;primaryKey;autoIncrement" json:"id"`
	UserID    int64                  `gorm:"not null;uniqueIndex:uniq_cart_user_product" json:"-"`
	ProductID int64                  `gorm:"not null;uniqueIndex:uniq_cart_user_product" json:"product_id"`
	Product   *catalogdomain.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int64                  `gorm:"not null;check:quantity >= 1" json:"quantity"`
}

func (CartItem) TableName() string { return "cart_items" }
