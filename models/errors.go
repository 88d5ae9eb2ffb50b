package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

var (
	ErrSupplierNotFound  = fmt.Errorf("supplier %w", ErrNotFound)
	ErrCategoryNotFound  = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound   = fmt.Errorf("product %w", ErrNotFound)
	ErrStockNotFound     = fmt.Errorf("stock %w", ErrNotFound)
	ErrCustomerNotFound  = fmt.Errorf("customer %w", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("order %w", ErrNotFound)
	ErrOrderItemNotFound = fmt.Errorf("order item %w", ErrNotFound)
)

var (
	// ErrReferenceNotFound is returned when a foreign key points to a missing row.
	ErrReferenceNotFound = errors.New("referenced record does not exist")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")

	// ErrDuplicateOrderItem is returned when an order already has a line for the product.
	ErrDuplicateOrderItem = fmt.Errorf("order already contains this product: %w", ErrDuplicate)

	// ErrCategoryCycle is returned when a category would become its own ancestor.
	ErrCategoryCycle = errors.New("category cannot be placed under itself or its descendants")

	// ErrInsufficientStock is returned when a decrement would make stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError describes a field value rejected before or during persistence.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
