package domain

import (
	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64  `gorm:"column:category_id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:category_name;size:100;not null" json:"name"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID          int64           `gorm:"column:product_id;primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"column:product_name;size:200;not null" json:"title"`
	Description string          `gorm:"column:product_description" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	// Percent off the list price, 0-100. Informational only: order
	// lines are priced off Price.
	DiscountPercentage decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"discountPercentage"`
	// NULL stock means the product was never stocked; it is not
	// orderable until an explicit quantity is set.
	Stock      *int64    `gorm:"check:stock >= 0" json:"stock"`
	ImageURL   string    `gorm:"column:image_url;size:255" json:"thumbnail"`
	CategoryID *int64    `json:"categoryId"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string { return "products" }

// AvailableStock treats unset stock as zero.
func (p Product) AvailableStock() int64 {
	if p.Stock == nil {
		return 0
	}
	return *p.Stock
}
