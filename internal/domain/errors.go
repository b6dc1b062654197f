package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin access required")
	ErrEmptyCart       = errors.New("cart is empty")

	// ErrStockConflict is returned by the store when a conditional stock
	// decrement matches no row. The workflow wraps it with the product name.
	ErrStockConflict = errors.New("stock conflict")

	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError carries field-level messages for the 400 envelope.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "invalid input"
	}
	return e.Details[0]
}

func Validation(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

// InsufficientStockError names the first product whose stock cannot cover
// the requested quantity.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}

// ProductUnavailableError names a cart product that has been deactivated
// since it was added.
type ProductUnavailableError struct {
	ProductName string
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %s is no longer available", e.ProductName)
}
