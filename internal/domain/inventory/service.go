// internal/domain/inventory/service.go
package inventory

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service wraps the pure impact calculator with snapshot loading and stock
// persistence. The calculator itself never touches the database.
type Service struct {
	db     *gorm.DB
	config *config.Config
	log    *logrus.Logger
}

// NewService creates a new inventory service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		log:    log,
	}
}

// ImpactRow pairs one change with its snapshot and computed result, for the
// impact review table rendered before an order is saved
type ImpactRow struct {
	Change   ChangeRecord    `json:"change"`
	Snapshot VariantSnapshot `json:"snapshot"`
	Result   ImpactResult    `json:"result"`
}

// SnapshotFromVariant builds a calculator snapshot from a stored variant
func SnapshotFromVariant(v *product.ProductVariant) VariantSnapshot {
	return VariantSnapshot{
		VariantID:         v.ID,
		Unit:              v.Unit,
		CurrentQuantity:   v.CurrentQuantity,
		CurrentPallets:    v.CurrentPallets,
		CurrentLayers:     v.CurrentLayers,
		FeetPerLayer:      v.FeetPerLayer,
		LayersPerPallet:   v.LayersPerPallet,
		WarningThreshold:  v.WarningThreshold,
		CriticalThreshold: v.CriticalThreshold,
	}
}

// PreviewImpacts runs the filter+compute pipeline for an order-edit session
// without persisting anything. Both the purchase-order and customer-order
// impact views call this.
func (s *Service) PreviewImpacts(changes []ChangeRecord) ([]ImpactRow, error) {
	rows := make([]ImpactRow, 0, len(changes))

	for _, change := range FilterChanges(changes) {
		var variant product.ProductVariant
		if err := s.db.Where("id = ?", change.VariantID).First(&variant).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, fmt.Errorf("product variant %s not found", change.VariantID)
			}
			return nil, fmt.Errorf("failed to load variant %s: %w", change.VariantID, err)
		}

		snapshot := SnapshotFromVariant(&variant)
		rows = append(rows, ImpactRow{
			Change:   change,
			Snapshot: snapshot,
			Result:   ComputeImpact(snapshot, change),
		})
	}

	return rows, nil
}

// ApplyImpacts persists the computed stock levels for every change that
// survives filtering and has a nonzero effect, recording a movement per
// variant. referenceType/referenceID tie the movements back to the order
// being saved.
func (s *Service) ApplyImpacts(changes []ChangeRecord, actorID, referenceType, referenceID string) ([]ImpactRow, error) {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	rows := make([]ImpactRow, 0, len(changes))

	for _, change := range FilterChanges(changes) {
		var variant product.ProductVariant
		if err := tx.Where("id = ?", change.VariantID).First(&variant).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to load variant %s: %w", change.VariantID, err)
		}

		snapshot := SnapshotFromVariant(&variant)
		result := ComputeImpact(snapshot, change)
		rows = append(rows, ImpactRow{Change: change, Snapshot: snapshot, Result: result})

		if !result.WillPersist {
			continue
		}

		updates := map[string]interface{}{
			"current_quantity": result.NewQuantity,
			"current_pallets":  result.NewPallets,
			"current_layers":   result.NewLayers,
		}
		if err := tx.Model(&product.ProductVariant{}).Where("id = ?", variant.ID).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update stock for variant %s: %w", variant.ID, err)
		}

		movement := &StockMovement{
			VariantID:        variant.ID,
			ChangeQuantity:   change.ChangeQuantity,
			PreviousQuantity: snapshot.CurrentQuantity,
			NewQuantity:      result.NewQuantity,
			PreviousPallets:  snapshot.CurrentPallets,
			PreviousLayers:   snapshot.CurrentLayers,
			NewPallets:       result.NewPallets,
			NewLayers:        result.NewLayers,
			ReferenceType:    referenceType,
			ReferenceID:      referenceID,
			CreatedBy:        actorID,
		}
		if err := tx.Create(movement).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to record stock movement: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit stock updates: %w", err)
	}

	// Alerts are best effort and must not hold up the order save.
	for _, row := range rows {
		if row.Result.WillPersist && row.Result.Status != StockStatusOk {
			go s.raiseAlert(row.Snapshot.VariantID, row.Result)
		}
	}

	return rows, nil
}

// GetMovements lists recent stock movements, optionally for one variant
func (s *Service) GetMovements(variantID string, limit int) ([]StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.Model(&StockMovement{}).Order("created_at DESC").Limit(limit)
	if variantID != "" {
		query = query.Where("variant_id = ?", variantID)
	}

	var movements []StockMovement
	if err := query.Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock movements: %w", err)
	}
	return movements, nil
}

func (s *Service) raiseAlert(variantID string, result ImpactResult) {
	// Skip if an unresolved alert already exists for this variant
	var existing StockAlert
	hasExisting := s.db.Where("variant_id = ? AND is_resolved = ?", variantID, false).First(&existing).Error == nil
	if hasExisting {
		return
	}

	alert := StockAlert{
		VariantID: variantID,
		Level:     result.Status,
		Message:   fmt.Sprintf("Variant %s stock is %s (quantity: %s)", variantID, result.Status, result.NewQuantity.String()),
	}
	if err := s.db.Create(&alert).Error; err != nil {
		s.log.WithError(err).WithField("variant_id", variantID).Warn("Failed to create stock alert")
	}
}
