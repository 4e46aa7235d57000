// internal/domain/inventory/impact_test.go
package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/tradesupply-backend/internal/domain/product"
)

func palletSnapshot(quantity, feetPerLayer int64, layersPerPallet int) VariantSnapshot {
	fpl := decimal.NewFromInt(feetPerLayer)
	lpp := layersPerPallet
	return VariantSnapshot{
		VariantID:       "var-1",
		Unit:            product.UnitSquareFeet,
		CurrentQuantity: decimal.NewFromInt(quantity),
		CurrentPallets:  3,
		CurrentLayers:   2,
		FeetPerLayer:    &fpl,
		LayersPerPallet: &lpp,
	}
}

func TestComputeImpactNonPalletUnitPassesThrough(t *testing.T) {
	snapshot := VariantSnapshot{
		VariantID:       "var-1",
		Unit:            product.UnitPieces,
		CurrentQuantity: decimal.NewFromInt(50),
		CurrentPallets:  7,
		CurrentLayers:   4,
	}

	for _, qty := range []int64{-20, 0, 20} {
		result := ComputeImpact(snapshot, ChangeRecord{ChangeQuantity: decimal.NewFromInt(qty)})
		assert.Equal(t, 7, result.NewPallets)
		assert.Equal(t, 4, result.NewLayers)
	}
}

func TestComputeImpactMissingPackingConstantsPassThrough(t *testing.T) {
	fpl := decimal.NewFromInt(100)
	snapshot := VariantSnapshot{
		Unit:            product.UnitSquareFeet,
		CurrentQuantity: decimal.NewFromInt(500),
		CurrentPallets:  2,
		CurrentLayers:   1,
		FeetPerLayer:    &fpl,
		// LayersPerPallet missing
	}

	result := ComputeImpact(snapshot, ChangeRecord{ChangeQuantity: decimal.NewFromInt(100)})
	assert.True(t, result.NewQuantity.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, 2, result.NewPallets)
	assert.Equal(t, 1, result.NewLayers)
}

func TestComputeImpactPalletDecomposition(t *testing.T) {
	cases := []struct {
		quantity        int64
		feetPerLayer    int64
		layersPerPallet int
		change          string
	}{
		{1000, 100, 10, "250"},
		{1000, 100, 10, "-250"},
		{730, 50, 8, "12.5"},
		{95, 7, 3, "0.1"},
		{640, 64, 4, "640"},
	}

	for _, tc := range cases {
		snapshot := palletSnapshot(tc.quantity, tc.feetPerLayer, tc.layersPerPallet)
		change := ChangeRecord{ChangeQuantity: decimal.RequireFromString(tc.change)}
		result := ComputeImpact(snapshot, change)

		totalLayers := result.NewQuantity.Div(*snapshot.FeetPerLayer).Ceil().IntPart()
		got := int64(result.NewPallets)*int64(tc.layersPerPallet) + int64(result.NewLayers)
		assert.Equal(t, totalLayers, got, "change %s on quantity %d", tc.change, tc.quantity)
		assert.GreaterOrEqual(t, result.NewLayers, 0)
		assert.Less(t, result.NewLayers, tc.layersPerPallet)
	}
}

func TestComputeImpactIdempotent(t *testing.T) {
	snapshot := palletSnapshot(1000, 100, 10)
	change := ChangeRecord{ChangeQuantity: decimal.RequireFromString("33.33")}

	first := ComputeImpact(snapshot, change)
	second := ComputeImpact(snapshot, change)
	assert.Equal(t, first, second)
}

func TestComputeImpactSignUnification(t *testing.T) {
	snapshot := palletSnapshot(1000, 100, 10)

	negative := ComputeImpact(snapshot, ChangeRecord{ChangeQuantity: decimal.NewFromInt(-5)})
	deleted := ComputeImpact(snapshot, ChangeRecord{ChangeQuantity: decimal.NewFromInt(5), Deleted: true})

	assert.True(t, negative.NewQuantity.Equal(deleted.NewQuantity))
	assert.True(t, negative.NewQuantity.Equal(decimal.NewFromInt(1005)))
}

func TestComputeImpactDeletedNegativeStillReturns(t *testing.T) {
	snapshot := palletSnapshot(1000, 100, 10)
	result := ComputeImpact(snapshot, ChangeRecord{ChangeQuantity: decimal.NewFromInt(-5), Deleted: true})
	assert.True(t, result.NewQuantity.Equal(decimal.NewFromInt(1005)))
}

func TestComputeImpactStatusBoundaries(t *testing.T) {
	base := VariantSnapshot{
		Unit:              product.UnitPieces,
		WarningThreshold:  decimal.NewFromInt(100),
		CriticalThreshold: decimal.NewFromInt(50),
	}

	cases := []struct {
		name     string
		quantity int64
		want     StockStatus
	}{
		{"below critical", 49, StockStatusCritical},
		{"at critical is warning", 50, StockStatusWarning},
		{"between thresholds", 75, StockStatusWarning},
		{"at warning is ok", 100, StockStatusOk},
		{"above warning", 150, StockStatusOk},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snapshot := base
			snapshot.CurrentQuantity = decimal.NewFromInt(tc.quantity)
			result := ComputeImpact(snapshot, ChangeRecord{})
			assert.Equal(t, tc.want, result.Status)
		})
	}
}

func TestComputeImpactWillPersist(t *testing.T) {
	snapshot := palletSnapshot(1000, 100, 10)

	assert.True(t, ComputeImpact(snapshot, ChangeRecord{ChangeQuantity: decimal.NewFromInt(10)}).WillPersist)
	assert.False(t, ComputeImpact(snapshot, ChangeRecord{ChangeQuantity: decimal.NewFromInt(10), Transient: true}).WillPersist)
	assert.False(t, ComputeImpact(snapshot, ChangeRecord{}).WillPersist)
	// A zero quantity delta with a pallet delta is still an effective change.
	assert.True(t, ComputeImpact(snapshot, ChangeRecord{ChangePallets: 1}).WillPersist)
}

func TestComputeImpactPalletScenario(t *testing.T) {
	snapshot := palletSnapshot(1000, 100, 10)
	result := ComputeImpact(snapshot, ChangeRecord{ChangeQuantity: decimal.NewFromInt(250)})

	assert.True(t, result.NewQuantity.Equal(decimal.NewFromInt(750)))
	// 750 / 100 = 7.5 exact layers, ceil to 8, under one full pallet
	assert.Equal(t, 0, result.NewPallets)
	assert.Equal(t, 8, result.NewLayers)
}

func TestFilterChangesDropsTransientPreservingOrder(t *testing.T) {
	changes := []ChangeRecord{
		{VariantID: "a", ChangeQuantity: decimal.NewFromInt(1)},
		{VariantID: "b", ChangeQuantity: decimal.NewFromInt(2), Transient: true},
		{VariantID: "c", ChangeQuantity: decimal.NewFromInt(3)},
	}

	filtered := FilterChanges(changes)
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].VariantID)
	assert.Equal(t, "c", filtered[1].VariantID)
}

func TestFilterChangesKeepsZeroEffectRecords(t *testing.T) {
	changes := []ChangeRecord{
		{VariantID: "a"},
		{VariantID: "b", ChangeQuantity: decimal.NewFromInt(2)},
	}

	filtered := FilterChanges(changes)
	require.Len(t, filtered, 2)

	snapshot := palletSnapshot(1000, 100, 10)
	assert.False(t, ComputeImpact(snapshot, filtered[0]).WillPersist)
	assert.True(t, ComputeImpact(snapshot, filtered[1]).WillPersist)
}
