// internal/domain/storefront/service.go
package storefront

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/your-org/tradesupply-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles storefront order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new storefront service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// IngestOrderRequest is the payload the web shop posts for a new order
type IngestOrderRequest struct {
	Name                 string             `json:"name"`
	CustomerName         string             `json:"customer_name" binding:"required"`
	Email                string             `json:"email"`
	Phone                string             `json:"phone"`
	Address              string             `json:"address"`
	City                 string             `json:"city"`
	Province             string             `json:"province"`
	PostalCode           string             `json:"postal_code"`
	DeliveryMethod       string             `json:"delivery_method"`
	DeliveryDate         *time.Time         `json:"delivery_date"`
	DeliveryTime         string             `json:"delivery_time"`
	DeliveryAddress      string             `json:"delivery_address"`
	DeliveryInstructions string             `json:"delivery_instructions"`
	Notes                string             `json:"notes"`
	TaxRate              decimal.Decimal    `json:"tax_rate"`
	DiscountAmount       decimal.Decimal    `json:"discount_amount"`
	Items                []IngestItemRequest `json:"items" binding:"required"`
}

// IngestItemRequest is one line on an ingested storefront order
type IngestItemRequest struct {
	ProductID   string          `json:"product_id"`
	VariantID   string          `json:"variant_id"`
	ProductName string          `json:"product_name" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// OrderListRequest represents storefront order list query parameters
type OrderListRequest struct {
	Page            int         `form:"page,default=1"`
	Limit           int         `form:"limit,default=20"`
	Status          OrderStatus `form:"status"`
	IncludeArchived bool        `form:"include_archived"`
}

// IngestOrder stores an order received from the web shop
func (s *Service) IngestOrder(req *IngestOrderRequest) (*Order, error) {
	subtotal := decimal.Zero
	for _, item := range req.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(item.Quantity))
	}
	total := subtotal.Sub(req.DiscountAmount)
	if !req.TaxRate.IsZero() {
		total = total.Add(total.Mul(req.TaxRate).Div(decimal.NewFromInt(100)))
	}

	order := &Order{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		Status:               OrderStatusPending,
		PaymentStatus:        PaymentStatusPending,
		CustomerName:         req.CustomerName,
		Email:                req.Email,
		Phone:                req.Phone,
		Address:              req.Address,
		City:                 req.City,
		Province:             req.Province,
		PostalCode:           req.PostalCode,
		DeliveryMethod:       req.DeliveryMethod,
		DeliveryDate:         req.DeliveryDate,
		DeliveryTime:         req.DeliveryTime,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
		Notes:                req.Notes,
		TaxRate:              req.TaxRate,
		SubtotalOrderValue:   subtotal,
		DiscountAmount:       req.DiscountAmount,
		TotalOrderValue:      total,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create storefront order: %w", err)
	}

	for _, ir := range req.Items {
		item := &OrderItem{
			ID:          uuid.NewString(),
			OrderID:     order.ID,
			ProductID:   ir.ProductID,
			VariantID:   ir.VariantID,
			ProductName: ir.ProductName,
			UnitPrice:   ir.UnitPrice,
			Quantity:    ir.Quantity,
		}
		if err := tx.Create(item).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to create storefront order item: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit storefront order: %w", err)
	}

	return s.GetOrder(order.ID)
}

// GetOrder retrieves a storefront order with its items
func (s *Service) GetOrder(id string) (*Order, error) {
	var order Order
	result := s.db.Preload("Items").Where("id = ?", id).First(&order)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("storefront order not found")
		}
		return nil, fmt.Errorf("failed to retrieve storefront order: %w", result.Error)
	}
	return &order, nil
}

// GetOrders retrieves storefront orders with filtering and pagination
func (s *Service) GetOrders(req *OrderListRequest) ([]Order, int64, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Preload("Items")
	if !req.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count storefront orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve storefront orders: %w", err)
	}

	return orders, total, nil
}

// ArchiveOrder soft-deletes a storefront order
func (s *Service) ArchiveOrder(id string) error {
	result := s.db.Model(&Order{}).Where("id = ?", id).Update("is_archived", true)
	if result.Error != nil {
		return fmt.Errorf("failed to archive storefront order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("storefront order not found")
	}
	return nil
}
