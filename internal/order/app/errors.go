package app

import (
	"errors"
	"fmt"
)

// Validation failures, rejected before any write.
var (
	ErrEmptyCart       = errors.New("your cart is empty")
	ErrAddressRequired = errors.New("the address is required")
	ErrPhoneRequired   = errors.New("the phone is required")
	ErrBadQuantity     = errors.New("quantity must be at least 1")
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrNotOwner      = errors.New("you do not have permission to cancel this order")
	ErrDuplicateKey  = errors.New("idempotent key already used")
)

// Store-level sentinels returned by Store implementations.
var (
	// ErrNotFound reports a missing row; services wrap it with the
	// offending id.
	ErrNotFound = errors.New("not found")
	// ErrStockConflict reports that a conditional stock decrement
	// matched no row.
	ErrStockConflict = errors.New("stock conflict")
)

type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

type InsufficientStockError struct {
	ProductID int64
	Name      string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.Name)
}

type ConflictError struct {
	Status string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot cancel an order with status '%s'", e.Status)
}
