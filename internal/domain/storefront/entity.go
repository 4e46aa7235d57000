// internal/domain/storefront/entity.go
package storefront

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the storefront order status
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus represents payment status on a storefront order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Order is an order placed through the public web shop. It carries the
// buyer's contact details inline because the buyer may not exist yet as a
// customer record; conversion resolves or creates one.
type Order struct {
	ID            string        `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string        `gorm:"size:50;index" json:"name"`
	Status        OrderStatus   `gorm:"size:30;not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:30;not null;default:'pending'" json:"payment_status"`

	// Buyer details as submitted by the storefront
	CustomerName string `gorm:"size:255" json:"customer_name"`
	Email        string `gorm:"size:255;index" json:"email"`
	Phone        string `gorm:"size:50" json:"phone"`
	Address      string `gorm:"size:255" json:"address"`
	City         string `gorm:"size:100" json:"city"`
	Province     string `gorm:"size:100" json:"province"`
	PostalCode   string `gorm:"size:20" json:"postal_code"`

	// Delivery details
	DeliveryMethod       string     `gorm:"size:100" json:"delivery_method"`
	DeliveryDate         *time.Time `json:"delivery_date"`
	DeliveryTime         string     `gorm:"size:50" json:"delivery_time"`
	DeliveryAddress      string     `gorm:"size:255" json:"delivery_address"`
	DeliveryInstructions string     `gorm:"type:text" json:"delivery_instructions"`

	Notes              string          `gorm:"type:text" json:"notes"`
	TaxRate            decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"tax_rate"`
	SubtotalOrderValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal_order_value"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount_amount"`
	TotalOrderValue    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_order_value"`

	// Set once by conversion; the conditional update on this column is
	// what keeps two concurrent conversions from both annotating.
	ConvertedOrderID string `gorm:"size:100;default:''" json:"converted_order_id"`

	IsArchived bool      `gorm:"default:false;index" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem is a line on a storefront order
type OrderItem struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID     string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   string          `gorm:"type:uuid;index" json:"product_id"`
	VariantID   string          `gorm:"type:uuid;index" json:"variant_id"`
	ProductName string          `gorm:"size:255" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_price"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"quantity"`
	IsArchived  bool            `gorm:"default:false" json:"is_archived"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName overrides
func (Order) TableName() string     { return "storefront_orders" }
func (OrderItem) TableName() string { return "storefront_order_items" }
