package domain

import (
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/storelane/shopcore/internal/catalog/domain"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusPaid       = "paid"
	StatusShipped    = "shipped"
	StatusCanceled   = "canceled"
)

// CancelableStatuses are the states an order may be canceled from.
// paid and shipped are terminal for cancellation; canceled is handled
// as an idempotent no-op by the lifecycle service. Stores use this set
// to guard the status transition itself.
var CancelableStatuses = []string{StatusPending, StatusProcessing}

// Cancelable reports whether an order in the given status may still be
// canceled.
func Cancelable(status string) bool {
	for _, s := range CancelableStatuses {
		if status == s {
			return true
		}
	}
	return false
}

type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	// Nullable: deleting a customer keeps their orders.
	CustomerID *int64          `gorm:"column:customer_id" json:"customer"`
	Address    string          `gorm:"size:255;not null" json:"address"`
	Phone      string          `gorm:"size:20;not null" json:"phone"`
	Note       string          `json:"note"`
	TimeCreate time.Time       `gorm:"column:time_create;autoCreateTime;<-:create" json:"time_create"`
	Total      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total"`
	Status     string          `gorm:"size:20;not null;default:pending" json:"status"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID      int64 `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID int64 `gorm:"not null;index" json:"-"`
	// Nullable: a removed product leaves the line in place.
	ProductID *int64                 `json:"-"`
	Product   *catalogdomain.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"product"`
	Quantity  int64                  `gorm:"not null;default:1" json:"quantity"`
	// Line price frozen at order time: unit price x quantity. Later
	// catalog price changes must not reach persisted orders.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

func (OrderItem) TableName() string { return "order_items" }

// CartLine is a submitted (product, quantity) pair, distinct from a
// persisted cart row.
type CartLine struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderRequest struct {
	CartItems []CartLine `json:"cartItems"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Note      string     `json:"note"`

	// Optional Idempotent-Key header value; empty disables the check.
	IdempotentKey string `json:"-"`
}

type OrderResult struct {
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone"`
	Note       string    `json:"note"`
	Total      float64   `json:"total"`
	TimeCreate time.Time `json:"time_create"`
}

type CancelResult struct {
	Detail string `json:"detail"`
	Status string `json:"status"`
}

// QuoteLine prices one persisted cart row against the live catalog
// without reserving anything.
type QuoteLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
	Available bool    `json:"available"`
}

type Quote struct {
	Lines []QuoteLine `json:"lines"`
	Total float64     `json:"total"`
}

// Event is published after an order mutation commits.
type Event struct {
	Type       string    `json:"type"` // order.created | order.canceled
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	Status     string    `json:"status"`
	Total      float64   `json:"total"`
	At         time.Time `json:"at"`
}

const (
	EventOrderCreated  = "order.created"
	EventOrderCanceled = "order.canceled"
)
