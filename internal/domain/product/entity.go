// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is a unit of measure for a product variant
type Unit string

const (
	UnitSquareFeet Unit = "Square Feet"
	UnitLinearFeet Unit = "Linear Feet"
	UnitPieces     Unit = "Pieces"
	UnitBoxes      Unit = "Boxes"
	UnitRolls      Unit = "Rolls"
)

// PalletDecomposed reports whether stock in this unit is tracked both as a
// raw quantity and as a pallets+layers packing decomposition.
func (u Unit) PalletDecomposed() bool {
	return u == UnitSquareFeet || u == UnitLinearFeet
}

// Product represents a catalog product
type Product struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name           string    `gorm:"not null;size:255" json:"name"`
	SKU            string    `gorm:"size:100;index" json:"sku"`
	Description    string    `gorm:"type:text" json:"description"`
	ManufacturerID *string   `gorm:"type:uuid;index" json:"manufacturer_id"`
	IsArchived     bool      `gorm:"default:false;index" json:"is_archived"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Variants []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
}

// ProductVariant represents a sellable variant of a product. The variant is
// the unit of inventory tracking: it carries the current stock snapshot, the
// packing constants for pallet-decomposed units, and the stock thresholds.
type ProductVariant struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id"`
	ProductID string `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string `gorm:"not null;size:255" json:"name"`
	SKU       string `gorm:"size:100;index" json:"sku"`
	Unit      Unit   `gorm:"size:30;default:'Pieces'" json:"unit"`

	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_price"`

	// Current stock snapshot. Pallets and layers are stored fields, not
	// derived from quantity at read time.
	CurrentQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"current_quantity"`
	CurrentPallets  int             `gorm:"default:0" json:"current_pallets"`
	CurrentLayers   int             `gorm:"default:0" json:"current_layers"`

	// Packing constants, only meaningful for pallet-decomposed units.
	FeetPerLayer    *decimal.Decimal `gorm:"type:decimal(18,4)" json:"feet_per_layer,omitempty"`
	LayersPerPallet *int             `json:"layers_per_pallet,omitempty"`

	WarningThreshold  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"warning_threshold"`
	CriticalThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"critical_threshold"`

	IsArchived bool      `gorm:"default:false;index" json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string        { return "products" }
func (ProductVariant) TableName() string { return "product_variants" }

// HasPackingConstants reports whether both packing constants are present and
// positive, i.e. a pallet/layer decomposition can be computed at all.
func (v *ProductVariant) HasPackingConstants() bool {
	return v.FeetPerLayer != nil && v.FeetPerLayer.IsPositive() &&
		v.LayersPerPallet != nil && *v.LayersPerPallet > 0
}
