// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the customer order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus represents payment status on a customer order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// DefaultTaxRate applies when an order carries no tax rate of its own
var DefaultTaxRate = decimal.NewFromInt(13)

// CustomerOrder represents an internal order owned by exactly one customer.
// Updates are full-record replaces; rows are archived, never deleted.
type CustomerOrder struct {
	ID            string        `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string        `gorm:"size:50;index" json:"name"`
	CustomerID    string        `gorm:"type:uuid;not null;index" json:"customer_id"`
	Status        OrderStatus   `gorm:"size:30;not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:30;not null;default:'pending'" json:"payment_status"`

	// Delivery details
	DeliveryMethod       string     `gorm:"size:100" json:"delivery_method"`
	DeliveryDate         *time.Time `json:"delivery_date"`
	DeliveryTime         string     `gorm:"size:50" json:"delivery_time"`
	DeliveryAddress      string     `gorm:"size:255" json:"delivery_address"`
	DeliveryInstructions string     `gorm:"type:text" json:"delivery_instructions"`

	Notes string `gorm:"type:text" json:"notes"`

	// Monetary totals
	TaxRate            decimal.Decimal `gorm:"type:decimal(8,4);not null;default:13" json:"tax_rate"`
	SubtotalOrderValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal_order_value"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount_amount"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"discount_percentage"`
	TotalOrderValue    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_order_value"`

	// Send a notification email to the customer when the order is saved.
	// Conversion always creates orders with this off.
	SendEmail bool `gorm:"default:false" json:"send_email"`

	IsArchived bool      `gorm:"default:false;index" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Items []CustomerOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// CustomerOrderItem is a line on a customer order. Pallet/layer fields hold
// the decomposition of the line quantity for pallet-decomposed units.
type CustomerOrderItem struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID     string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   string          `gorm:"type:uuid;index" json:"product_id"`
	VariantID   string          `gorm:"type:uuid;index" json:"variant_id"`
	ProductName string          `gorm:"size:255" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_price"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"quantity"`

	DiscountAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount_amount"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"discount_percentage"`
	TotalItemValue     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_item_value"`

	Pallets int `gorm:"default:0" json:"pallets"`
	Layers  int `gorm:"default:0" json:"layers"`

	IsArchived bool      `gorm:"default:false" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides
func (CustomerOrder) TableName() string     { return "customer_orders" }
func (CustomerOrderItem) TableName() string { return "customer_order_items" }

// CanBeCancelled checks if the order can still be cancelled
func (o *CustomerOrder) CanBeCancelled() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}
