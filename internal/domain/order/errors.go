// internal/domain/order/errors.go
package order

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced order or customer does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a concurrent conversion already claimed the source order
	ErrConflict = errors.New("order already converted")
)

// Conversion stages, used to report which step of a conversion failed
const (
	StageSource   = "source"
	StageCustomer = "customer"
	StageOrder    = "order"
	StageItems    = "items"
	StageAnnotate = "annotate"
	StageAudit    = "audit"
)

// ConversionError wraps an underlying failure with the conversion stage it occurred in
type ConversionError struct {
	Stage string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed at %s: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ItemError records a single line item that failed to copy during conversion
type ItemError struct {
	SourceItemID string `json:"source_item_id"`
	ProductName  string `json:"product_name"`
	Message      string `json:"message"`
}
