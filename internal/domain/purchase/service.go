// internal/domain/purchase/service.go
package purchase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
)

// Service handles purchase order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new purchase order service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{db: db, config: cfg}
}

// CreateOrderRequest represents purchase order creation data
type CreateOrderRequest struct {
	Name           string              `json:"name"`
	ManufacturerID string              `json:"manufacturer_id" binding:"required"`
	Status         OrderStatus         `json:"status"`
	ExpectedDate   *time.Time          `json:"expected_date"`
	Notes          string              `json:"notes"`
	TaxRate        decimal.Decimal     `json:"tax_rate"`
	Items          []CreateItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateItemRequest represents one line on a purchase order creation request
type CreateItemRequest struct {
	ProductID   string          `json:"product_id"`
	VariantID   string          `json:"variant_id"`
	ProductName string          `json:"product_name" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Pallets     int             `json:"pallets"`
	Layers      int             `json:"layers"`
}

// OrderListRequest represents purchase order list query parameters
type OrderListRequest struct {
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=20"`
	ManufacturerID  string `form:"manufacturer_id"`
	Status          string `form:"status"`
	IncludeArchived bool   `form:"include_archived"`
}

// OrderListResponse represents a paginated list of purchase orders
type OrderListResponse struct {
	Orders     []PurchaseOrder  `json:"orders"`
	Pagination party.Pagination `json:"pagination"`
}

// CreateOrder creates a purchase order with its line items in one transaction
func (s *Service) CreateOrder(req *CreateOrderRequest) (*PurchaseOrder, error) {
	var manufacturer party.Manufacturer
	if err := s.db.Where("id = ? AND is_archived = ?", req.ManufacturerID, false).First(&manufacturer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("manufacturer not found")
		}
		return nil, fmt.Errorf("failed to retrieve manufacturer: %w", err)
	}

	status := req.Status
	if status == "" {
		status = OrderStatusDraft
	}
	taxRate := req.TaxRate
	if taxRate.IsZero() {
		taxRate = decimal.NewFromInt(13)
	}

	order := &PurchaseOrder{
		ID:             uuid.NewString(),
		Name:           purchaseOrderName(req.Name),
		ManufacturerID: manufacturer.ID,
		Status:         status,
		ExpectedDate:   req.ExpectedDate,
		Notes:          req.Notes,
		TaxRate:        taxRate,
	}

	subtotal := decimal.Zero
	items := make([]PurchaseOrderItem, 0, len(req.Items))
	for _, ir := range req.Items {
		total := ir.UnitPrice.Mul(ir.Quantity)
		subtotal = subtotal.Add(total)
		items = append(items, PurchaseOrderItem{
			ID:             uuid.NewString(),
			OrderID:        order.ID,
			ProductID:      ir.ProductID,
			VariantID:      ir.VariantID,
			ProductName:    ir.ProductName,
			UnitPrice:      ir.UnitPrice,
			Quantity:       ir.Quantity,
			TotalItemValue: total,
			Pallets:        ir.Pallets,
			Layers:         ir.Layers,
		})
	}
	order.SubtotalOrderValue = subtotal
	tax := subtotal.Mul(order.TaxRate).Div(decimal.NewFromInt(100))
	order.TotalOrderValue = subtotal.Add(tax)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create purchase order: %w", err)
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create purchase order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetOrder retrieves a single purchase order with its non-archived items
func (s *Service) GetOrder(id string) (*PurchaseOrder, error) {
	var order PurchaseOrder
	result := s.db.Preload("Items", "is_archived = ?", false).Where("id = ?", id).First(&order)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("purchase order not found")
		}
		return nil, fmt.Errorf("failed to retrieve purchase order: %w", result.Error)
	}
	return &order, nil
}

// GetOrders retrieves purchase orders with filtering and pagination
func (s *Service) GetOrders(req *OrderListRequest) (*OrderListResponse, error) {
	var orders []PurchaseOrder
	var total int64

	query := s.db.Model(&PurchaseOrder{})
	if !req.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if req.ManufacturerID != "" {
		query = query.Where("manufacturer_id = ?", req.ManufacturerID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at desc").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve purchase orders: %w", err)
	}

	return &OrderListResponse{
		Orders:     orders,
		Pagination: party.BuildPagination(req.Page, req.Limit, total),
	}, nil
}

// UpdateStatus transitions the purchase order status; moving to received
// stamps the received date.
func (s *Service) UpdateStatus(id string, status OrderStatus) (*PurchaseOrder, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.Status == OrderStatusCancelled || order.Status == OrderStatusReceived {
		return nil, fmt.Errorf("purchase order in status %s cannot transition", order.Status)
	}

	updates := map[string]interface{}{"status": status}
	if status == OrderStatusReceived {
		now := time.Now()
		updates["received_date"] = now
		order.ReceivedDate = &now
	}
	if err := s.db.Model(&PurchaseOrder{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update purchase order status: %w", err)
	}
	order.Status = status

	return order, nil
}

// ArchiveOrder soft-deletes a purchase order and its items
func (s *Service) ArchiveOrder(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&PurchaseOrder{}).Where("id = ?", id).Update("is_archived", true)
		if result.Error != nil {
			return fmt.Errorf("failed to archive purchase order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("purchase order not found")
		}
		if err := tx.Model(&PurchaseOrderItem{}).Where("order_id = ?", id).Update("is_archived", true).Error; err != nil {
			return fmt.Errorf("failed to archive purchase order items: %w", err)
		}
		return nil
	})
}

// purchaseOrderName uses the submitted name when present, otherwise
// synthesizes one in the form PO-<YYYYMMDD>-<4 random digits>.
func purchaseOrderName(name string) string {
	if name != "" {
		return name
	}
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	suffix := int64(0)
	if err == nil {
		suffix = n.Int64()
	}
	return fmt.Sprintf("PO-%s-%04d", time.Now().Format("20060102"), suffix)
}
