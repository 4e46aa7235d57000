// internal/domain/order/conversion.go
package order

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/your-org/tradesupply-backend/internal/domain/audit"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
	"github.com/your-org/tradesupply-backend/internal/domain/storefront"
)

// ConversionStore is the persistence surface the converter writes through.
// Each method is an independent backend call; the converter deliberately does
// not run the whole conversion in one transaction.
type ConversionStore interface {
	GetStorefrontOrder(ctx context.Context, id string) (*storefront.Order, error)
	ListStorefrontItems(ctx context.Context, orderID string) ([]storefront.OrderItem, error)
	GetCustomer(ctx context.Context, id string) (*party.Customer, error)
	FindCustomerByEmail(ctx context.Context, email string) (*party.Customer, error)
	CreateCustomer(ctx context.Context, customer *party.Customer) error
	CreateOrder(ctx context.Context, order *CustomerOrder) error
	CreateOrderItem(ctx context.Context, item *CustomerOrderItem) error
	// AnnotateStorefrontOrder records the target order id on the source order.
	// It must only succeed when the source order has not been annotated yet,
	// and return ErrConflict otherwise.
	AnnotateStorefrontOrder(ctx context.Context, id, targetOrderID, note string) error
	AppendAudit(ctx context.Context, entry *audit.Entry) error
}

// ConvertOptions carries the caller's choices for a conversion
type ConvertOptions struct {
	Notes              string
	SelectedCustomerID string
	ActorID            string
}

// ConversionResult reports the outcome of a conversion
type ConversionResult struct {
	CustomerOrderID string      `json:"customer_order_id"`
	CustomerID      string      `json:"customer_id"`
	CustomerCreated bool        `json:"customer_created"`
	ItemErrors      []ItemError `json:"item_errors,omitempty"`
}

// Converter materializes storefront orders as customer orders
type Converter struct {
	store ConversionStore
	log   *logrus.Logger
}

// NewConverter creates a new converter
func NewConverter(store ConversionStore, log *logrus.Logger) *Converter {
	return &Converter{store: store, log: log}
}

// Convert turns the storefront order identified by sourceID into a customer
// order. Customer resolution prefers the caller's explicit choice, then an
// exact email match, then creates a new customer from the buyer fields.
// Header and customer failures abort the conversion; per-item failures are
// accumulated and reported alongside a successful result. No compensating
// rollback is performed, so a created customer can outlive a failed header
// write; such states are logged for manual reconciliation.
func (c *Converter) Convert(ctx context.Context, sourceID string, opts ConvertOptions) (*ConversionResult, error) {
	source, err := c.store.GetStorefrontOrder(ctx, sourceID)
	if err != nil {
		return nil, &ConversionError{Stage: StageSource, Err: err}
	}

	items, err := c.store.ListStorefrontItems(ctx, sourceID)
	if err != nil {
		return nil, &ConversionError{Stage: StageSource, Err: err}
	}

	customer, created, err := c.resolveCustomer(ctx, source, opts.SelectedCustomerID)
	if err != nil {
		return nil, &ConversionError{Stage: StageCustomer, Err: err}
	}

	target := c.buildOrder(source, customer, opts.Notes)
	if err := c.store.CreateOrder(ctx, target); err != nil {
		if created {
			c.log.WithFields(logrus.Fields{
				"customer_id":        customer.ID,
				"storefront_order":   sourceID,
				"needs_reconciliation": true,
			}).Error("Customer created but order header write failed")
		}
		return nil, &ConversionError{Stage: StageOrder, Err: err}
	}

	result := &ConversionResult{
		CustomerOrderID: target.ID,
		CustomerID:      customer.ID,
		CustomerCreated: created,
	}

	for i := range items {
		src := &items[i]
		if src.IsArchived {
			continue
		}
		item := buildOrderItem(target.ID, src)
		if err := c.store.CreateOrderItem(ctx, item); err != nil {
			c.log.WithFields(logrus.Fields{
				"customer_order": target.ID,
				"source_item":    src.ID,
			}).WithError(err).Warn("Order item copy failed")
			result.ItemErrors = append(result.ItemErrors, ItemError{
				SourceItemID: src.ID,
				ProductName:  src.ProductName,
				Message:      err.Error(),
			})
		}
	}

	note := fmt.Sprintf("Converted to customer order %s", target.ID)
	if err := c.store.AnnotateStorefrontOrder(ctx, sourceID, target.ID, note); err != nil {
		if err == ErrConflict {
			return nil, &ConversionError{Stage: StageAnnotate, Err: ErrConflict}
		}
		c.log.WithFields(logrus.Fields{
			"storefront_order": sourceID,
			"customer_order":   target.ID,
		}).WithError(err).Warn("Source order annotation failed")
	}

	if err := c.store.AppendAudit(ctx, &audit.Entry{
		ActorID:    opts.ActorID,
		Action:     "order.convert",
		EntityType: "customer_order",
		EntityID:   target.ID,
		Details:    fmt.Sprintf("converted from storefront order %s", sourceID),
	}); err != nil {
		c.log.WithError(err).Warn("Audit write failed for conversion")
	}

	return result, nil
}

// resolveCustomer finds or creates the customer the target order belongs to.
// The bool result reports whether a new customer record was created.
func (c *Converter) resolveCustomer(ctx context.Context, source *storefront.Order, selectedID string) (*party.Customer, bool, error) {
	if selectedID != "" {
		customer, err := c.store.GetCustomer(ctx, selectedID)
		if err != nil {
			return nil, false, err
		}
		return customer, false, nil
	}

	if source.Email != "" {
		customer, err := c.store.FindCustomerByEmail(ctx, source.Email)
		if err == nil {
			return customer, false, nil
		}
		if err != ErrNotFound {
			return nil, false, err
		}
	}

	customer := &party.Customer{
		ID:           uuid.NewString(),
		Name:         source.CustomerName,
		Email:        source.Email,
		Phone:        source.Phone,
		Address:      source.Address,
		City:         source.City,
		Province:     source.Province,
		PostalCode:   source.PostalCode,
		CustomerType: party.CustomerTypeRetail,
	}
	if err := c.store.CreateCustomer(ctx, customer); err != nil {
		return nil, false, err
	}
	return customer, true, nil
}

// buildOrder maps the storefront header onto a new customer order header
func (c *Converter) buildOrder(source *storefront.Order, customer *party.Customer, notes string) *CustomerOrder {
	taxRate := source.TaxRate
	if taxRate.IsZero() {
		taxRate = DefaultTaxRate
	}

	deliveryAddress := source.DeliveryAddress
	if deliveryAddress == "" {
		deliveryAddress = customer.Address
	}

	discountPct := decimal.Zero
	if source.SubtotalOrderValue.IsPositive() && !source.DiscountAmount.IsZero() {
		discountPct = source.DiscountAmount.Div(source.SubtotalOrderValue).Mul(decimal.NewFromInt(100))
	}

	return &CustomerOrder{
		ID:                   uuid.NewString(),
		Name:                 orderName(source.Name),
		CustomerID:           customer.ID,
		Status:               OrderStatus(source.Status),
		PaymentStatus:        PaymentStatus(source.PaymentStatus),
		DeliveryMethod:       source.DeliveryMethod,
		DeliveryDate:         source.DeliveryDate,
		DeliveryTime:         source.DeliveryTime,
		DeliveryAddress:      deliveryAddress,
		DeliveryInstructions: source.DeliveryInstructions,
		Notes:                notes,
		TaxRate:              taxRate,
		SubtotalOrderValue:   source.SubtotalOrderValue,
		DiscountAmount:       source.DiscountAmount,
		DiscountPercentage:   discountPct,
		TotalOrderValue:      source.TotalOrderValue,
		SendEmail:            false,
	}
}

// buildOrderItem copies one storefront line onto a new customer order line.
// Discounts and pallet/layer state are not carried over; the inventory
// subsystem recomputes packing when the order is fulfilled.
func buildOrderItem(orderID string, src *storefront.OrderItem) *CustomerOrderItem {
	return &CustomerOrderItem{
		ID:             uuid.NewString(),
		OrderID:        orderID,
		ProductID:      src.ProductID,
		VariantID:      src.VariantID,
		ProductName:    src.ProductName,
		UnitPrice:      src.UnitPrice,
		Quantity:       src.Quantity,
		TotalItemValue: src.UnitPrice.Mul(src.Quantity),
	}
}

// orderName uses the source order's name when present, otherwise synthesizes
// one in the form CO-<YYYYMMDD>-<4 random digits>.
func orderName(sourceName string) string {
	if sourceName != "" {
		return sourceName
	}
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("CO-%s-%04d", time.Now().Format("20060102"), suffix)
}
