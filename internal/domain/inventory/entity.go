// internal/domain/inventory/entity.go
package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovement is a record of a persisted stock change on a variant
type StockMovement struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	VariantID        string          `gorm:"type:uuid;not null;index" json:"variant_id"`
	ChangeQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"change_quantity"`
	PreviousQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"previous_quantity"`
	NewQuantity      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"new_quantity"`
	PreviousPallets  int             `json:"previous_pallets"`
	PreviousLayers   int             `json:"previous_layers"`
	NewPallets       int             `json:"new_pallets"`
	NewLayers        int             `json:"new_layers"`
	ReferenceType    string          `gorm:"size:50" json:"reference_type"` // "customer_order", "purchase_order"
	ReferenceID      string          `gorm:"size:100;index" json:"reference_id"`
	Notes            string          `gorm:"type:text" json:"notes"`
	CreatedBy        string          `gorm:"type:uuid" json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// StockAlert represents a low stock alert raised when a persisted change
// leaves a variant below its warning or critical threshold
type StockAlert struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	VariantID  string      `gorm:"type:uuid;not null;index" json:"variant_id"`
	Level      StockStatus `gorm:"size:20;not null" json:"level"`
	Message    string      `gorm:"type:text" json:"message"`
	IsResolved bool        `gorm:"default:false" json:"is_resolved"`
	ResolvedAt *time.Time  `json:"resolved_at,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TableName overrides
func (StockMovement) TableName() string { return "stock_movements" }
func (StockAlert) TableName() string    { return "stock_alerts" }
