// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/tradesupply-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name           string                 `json:"name" binding:"required"`
	SKU            string                 `json:"sku"`
	Description    string                 `json:"description"`
	ManufacturerID *string                `json:"manufacturer_id"`
	Variants       []CreateVariantRequest `json:"variants"`
}

// CreateVariantRequest represents variant creation data
type CreateVariantRequest struct {
	Name              string           `json:"name" binding:"required"`
	SKU               string           `json:"sku"`
	Unit              Unit             `json:"unit"`
	UnitPrice         decimal.Decimal  `json:"unit_price"`
	CurrentQuantity   decimal.Decimal  `json:"current_quantity"`
	CurrentPallets    int              `json:"current_pallets"`
	CurrentLayers     int              `json:"current_layers"`
	FeetPerLayer      *decimal.Decimal `json:"feet_per_layer"`
	LayersPerPallet   *int             `json:"layers_per_pallet"`
	WarningThreshold  decimal.Decimal  `json:"warning_threshold"`
	CriticalThreshold decimal.Decimal  `json:"critical_threshold"`
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=20"`
	Search          string `form:"search"`
	ManufacturerID  string `form:"manufacturer_id"`
	IncludeArchived bool   `form:"include_archived"`
}

// CreateProduct creates a product and its variants
func (s *Service) CreateProduct(req *CreateProductRequest) (*Product, error) {
	product := &Product{
		ID:             uuid.NewString(),
		Name:           req.Name,
		SKU:            req.SKU,
		Description:    req.Description,
		ManufacturerID: req.ManufacturerID,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(product).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	for _, vr := range req.Variants {
		variant := buildVariant(product.ID, &vr)
		if err := tx.Create(variant).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create variant '%s': %w", vr.Name, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit product creation: %w", err)
	}

	return s.GetProduct(product.ID)
}

// GetProduct retrieves a product with its variants
func (s *Service) GetProduct(id string) (*Product, error) {
	var product Product
	result := s.db.Preload("Variants", "is_archived = ?", false).Where("id = ?", id).First(&product)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &product, nil
}

// GetVariant retrieves a single product variant
func (s *Service) GetVariant(id string) (*ProductVariant, error) {
	var variant ProductVariant
	result := s.db.Where("id = ?", id).First(&variant)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product variant not found")
		}
		return nil, fmt.Errorf("failed to retrieve variant: %w", result.Error)
	}
	return &variant, nil
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{}).Preload("Variants", "is_archived = ?", false)
	if !req.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", like, like)
	}
	if req.ManufacturerID != "" {
		query = query.Where("manufacturer_id = ?", req.ManufacturerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("name asc").Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, total, nil
}

// AddVariant adds a variant to an existing product
func (s *Service) AddVariant(productID string, req *CreateVariantRequest) (*ProductVariant, error) {
	if _, err := s.GetProduct(productID); err != nil {
		return nil, err
	}

	variant := buildVariant(productID, req)
	if err := s.db.Create(variant).Error; err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}
	return variant, nil
}

// UpdateVariant replaces a variant's mutable fields
func (s *Service) UpdateVariant(id string, req *CreateVariantRequest) (*ProductVariant, error) {
	variant, err := s.GetVariant(id)
	if err != nil {
		return nil, err
	}

	variant.Name = req.Name
	variant.SKU = req.SKU
	if req.Unit != "" {
		variant.Unit = req.Unit
	}
	variant.UnitPrice = req.UnitPrice
	variant.CurrentQuantity = req.CurrentQuantity
	variant.CurrentPallets = req.CurrentPallets
	variant.CurrentLayers = req.CurrentLayers
	variant.FeetPerLayer = req.FeetPerLayer
	variant.LayersPerPallet = req.LayersPerPallet
	variant.WarningThreshold = req.WarningThreshold
	variant.CriticalThreshold = req.CriticalThreshold

	if err := s.db.Save(variant).Error; err != nil {
		return nil, fmt.Errorf("failed to update variant: %w", err)
	}
	return variant, nil
}

// ArchiveProduct soft-deletes a product and its variants
func (s *Service) ArchiveProduct(id string) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	result := tx.Model(&Product{}).Where("id = ?", id).Update("is_archived", true)
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("failed to archive product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return fmt.Errorf("product not found")
	}

	if err := tx.Model(&ProductVariant{}).Where("product_id = ?", id).Update("is_archived", true).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to archive variants: %w", err)
	}

	return tx.Commit().Error
}

func buildVariant(productID string, req *CreateVariantRequest) *ProductVariant {
	unit := req.Unit
	if unit == "" {
		unit = UnitPieces
	}
	return &ProductVariant{
		ID:                uuid.NewString(),
		ProductID:         productID,
		Name:              req.Name,
		SKU:               req.SKU,
		Unit:              unit,
		UnitPrice:         req.UnitPrice,
		CurrentQuantity:   req.CurrentQuantity,
		CurrentPallets:    req.CurrentPallets,
		CurrentLayers:     req.CurrentLayers,
		FeetPerLayer:      req.FeetPerLayer,
		LayersPerPallet:   req.LayersPerPallet,
		WarningThreshold:  req.WarningThreshold,
		CriticalThreshold: req.CriticalThreshold,
	}
}
