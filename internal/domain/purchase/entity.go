// internal/domain/purchase/entity.go
package purchase

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the purchase order status
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusSubmitted OrderStatus = "submitted"
	OrderStatusReceived  OrderStatus = "received"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PurchaseOrder is an inbound order placed with a manufacturer
type PurchaseOrder struct {
	ID             string      `gorm:"primaryKey;type:uuid" json:"id"`
	Name           string      `gorm:"size:50;index" json:"name"`
	ManufacturerID string      `gorm:"type:uuid;not null;index" json:"manufacturer_id"`
	Status         OrderStatus `gorm:"size:30;not null;default:'draft'" json:"status"`

	ExpectedDate *time.Time `json:"expected_date"`
	ReceivedDate *time.Time `json:"received_date"`
	Notes        string     `gorm:"type:text" json:"notes"`

	SubtotalOrderValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal_order_value"`
	TaxRate            decimal.Decimal `gorm:"type:decimal(8,4);not null;default:13" json:"tax_rate"`
	TotalOrderValue    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_order_value"`

	IsArchived bool      `gorm:"default:false;index" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Items []PurchaseOrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// PurchaseOrderItem is a line on a purchase order. Pallet/layer fields hold
// the expected packing decomposition of the inbound quantity.
type PurchaseOrderItem struct {
	ID          string          `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID     string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   string          `gorm:"type:uuid;index" json:"product_id"`
	VariantID   string          `gorm:"type:uuid;index" json:"variant_id"`
	ProductName string          `gorm:"size:255" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_price"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"quantity"`

	TotalItemValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total_item_value"`

	Pallets int `gorm:"default:0" json:"pallets"`
	Layers  int `gorm:"default:0" json:"layers"`

	IsArchived bool      `gorm:"default:false" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides
func (PurchaseOrder) TableName() string     { return "purchase_orders" }
func (PurchaseOrderItem) TableName() string { return "purchase_order_items" }
