package http

import (
	"github.com/shopspring/decimal"

	"github.com/storelane/shopcore/internal/catalog/app"
)

// productPayload is the wire shape for create and patch. Pointers keep
// absent fields distinguishable from zero values.
type productPayload struct {
	Title              *string          `json:"title"`
	Description        *string          `json:"description"`
	Price              *decimal.Decimal `json:"price"`
	DiscountPercentage *decimal.Decimal `json:"discountPercentage"`
	Stock              *int64           `json:"stock"`
	Thumbnail          *string          `json:"thumbnail"`
	CategoryID         *int64           `json:"categoryId"`
}

func (p productPayload) toInput() app.ProductInput {
	return app.ProductInput{
		Name:               p.Title,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Stock:              p.Stock,
		ImageURL:           p.Thumbnail,
		CategoryID:         p.CategoryID,
	}
}
