// internal/domain/inventory/impact.go
package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/tradesupply-backend/internal/domain/product"
)

// StockStatus classifies a stock level against the variant's thresholds
type StockStatus string

const (
	StockStatusOk       StockStatus = "ok"
	StockStatusWarning  StockStatus = "warning"
	StockStatusCritical StockStatus = "critical"
)

// VariantSnapshot is a product variant's stock state at the moment an order
// line is edited. Pallets and layers are independently stored snapshot
// fields, not derived from the quantity.
type VariantSnapshot struct {
	VariantID         string           `json:"variant_id"`
	Unit              product.Unit     `json:"unit"`
	CurrentQuantity   decimal.Decimal  `json:"current_quantity"`
	CurrentPallets    int              `json:"current_pallets"`
	CurrentLayers     int              `json:"current_layers"`
	FeetPerLayer      *decimal.Decimal `json:"feet_per_layer,omitempty"`
	LayersPerPallet   *int             `json:"layers_per_pallet,omitempty"`
	WarningThreshold  decimal.Decimal  `json:"warning_threshold"`
	CriticalThreshold decimal.Decimal  `json:"critical_threshold"`
}

// ChangeRecord is one line item's proposed effect on a variant's stock.
// A negative ChangeQuantity means quantity is being returned to inventory;
// a positive one means it is being withdrawn. A deleted line always returns
// its quantity regardless of sign.
type ChangeRecord struct {
	VariantID      string          `json:"variant_id"`
	ChangeQuantity decimal.Decimal `json:"change_quantity"`
	ChangePallets  int             `json:"change_pallets"`
	ChangeLayers   int             `json:"change_layers"`
	Deleted        bool            `json:"deleted"`
	Transient      bool            `json:"transient"`
}

// ZeroEffect reports whether the record changes nothing: no quantity delta
// and no pallet/layer delta. Unlike Transient, a zero-effect edit is
// still displayed, it just never persists.
func (c ChangeRecord) ZeroEffect() bool {
	return c.ChangeQuantity.IsZero() && c.ChangePallets == 0 && c.ChangeLayers == 0
}

// ImpactResult is the outcome of applying a ChangeRecord to a snapshot
type ImpactResult struct {
	NewQuantity decimal.Decimal `json:"new_quantity"`
	NewPallets  int             `json:"new_pallets"`
	NewLayers   int             `json:"new_layers"`
	Status      StockStatus     `json:"status"`
	WillPersist bool            `json:"will_persist"`
}

// ComputeImpact computes the stock level resulting from one proposed line
// change. Pure: no I/O, deterministic, same inputs always give the same
// result.
//
// Sign unification: a deleted line and a negative edit are the same
// inventory-return event, so both produce delta = +|changeQuantity|; any
// other change withdraws stock, delta = -|changeQuantity|.
//
// The pallet/layer decomposition is recomputed from the absolute new
// quantity (ceiling layer conversion) rather than adjusted incrementally,
// so repeated edits cannot drift.
func ComputeImpact(snapshot VariantSnapshot, change ChangeRecord) ImpactResult {
	delta := change.ChangeQuantity.Abs()
	if !change.Deleted && !change.ChangeQuantity.IsNegative() {
		delta = delta.Neg()
	}
	newQuantity := snapshot.CurrentQuantity.Add(delta)

	result := ImpactResult{
		NewQuantity: newQuantity,
		NewPallets:  snapshot.CurrentPallets,
		NewLayers:   snapshot.CurrentLayers,
		Status:      classifyStock(newQuantity, snapshot.WarningThreshold, snapshot.CriticalThreshold),
		WillPersist: !change.Transient && !change.ZeroEffect(),
	}

	// Decompose only for pallet-decomposed units with both packing
	// constants present; otherwise the current values pass through.
	if snapshot.Unit.PalletDecomposed() &&
		snapshot.FeetPerLayer != nil && snapshot.FeetPerLayer.IsPositive() &&
		snapshot.LayersPerPallet != nil && *snapshot.LayersPerPallet > 0 {
		totalLayers := newQuantity.Div(*snapshot.FeetPerLayer).Ceil().IntPart()
		perPallet := int64(*snapshot.LayersPerPallet)
		pallets := totalLayers / perPallet
		result.NewPallets = int(pallets)
		result.NewLayers = int(totalLayers - pallets*perPallet)
	}

	return result
}

// classifyStock applies the threshold comparisons. Quantity equal to the
// critical threshold is Warning, equal to the warning threshold is Ok.
func classifyStock(quantity, warning, critical decimal.Decimal) StockStatus {
	switch {
	case quantity.LessThan(critical):
		return StockStatusCritical
	case quantity.LessThan(warning):
		return StockStatusWarning
	default:
		return StockStatusOk
	}
}

// FilterChanges produces the ordered sublist of changes to render and
// evaluate for an order-edit session: transient records are dropped,
// relative order of the rest is preserved. Purchase-order and
// customer-order impact views both run through this same pass.
func FilterChanges(changes []ChangeRecord) []ChangeRecord {
	filtered := make([]ChangeRecord, 0, len(changes))
	for _, c := range changes {
		if c.Transient {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered
}
