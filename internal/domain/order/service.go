// internal/domain/order/service.go
package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
)

// Notifier sends order lifecycle emails. Failures never fail the operation
// that triggered them.
type Notifier interface {
	SendOrderConfirmationEmail(to string, order *CustomerOrder, customer *party.Customer) error
	SendOrderStatusUpdateEmail(to string, order *CustomerOrder, customer *party.Customer) error
}

// Service handles customer order business logic
type Service struct {
	db       *gorm.DB
	config   *config.Config
	log      *logrus.Logger
	notifier Notifier
}

// NewService creates a new customer order service
func NewService(db *gorm.DB, cfg *config.Config, log *logrus.Logger, notifier Notifier) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		log:      log,
		notifier: notifier,
	}
}

// CreateOrderRequest represents customer order creation data
type CreateOrderRequest struct {
	Name                 string              `json:"name"`
	CustomerID           string              `json:"customer_id" binding:"required"`
	Status               OrderStatus         `json:"status"`
	PaymentStatus        PaymentStatus       `json:"payment_status"`
	DeliveryMethod       string              `json:"delivery_method"`
	DeliveryDate         *time.Time          `json:"delivery_date"`
	DeliveryTime         string              `json:"delivery_time"`
	DeliveryAddress      string              `json:"delivery_address"`
	DeliveryInstructions string              `json:"delivery_instructions"`
	Notes                string              `json:"notes"`
	TaxRate              decimal.Decimal     `json:"tax_rate"`
	DiscountAmount       decimal.Decimal     `json:"discount_amount"`
	SendEmail            bool                `json:"send_email"`
	Items                []CreateItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateItemRequest represents one line on an order creation request
type CreateItemRequest struct {
	ProductID   string          `json:"product_id"`
	VariantID   string          `json:"variant_id"`
	ProductName string          `json:"product_name" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Pallets     int             `json:"pallets"`
	Layers      int             `json:"layers"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=20"`
	CustomerID      string `form:"customer_id"`
	Status          string `form:"status"`
	IncludeArchived bool   `form:"include_archived"`
}

// OrderListResponse represents a paginated list of customer orders
type OrderListResponse struct {
	Orders     []CustomerOrder  `json:"orders"`
	Pagination party.Pagination `json:"pagination"`
}

// CreateOrder creates a customer order with its line items in one transaction
func (s *Service) CreateOrder(req *CreateOrderRequest) (*CustomerOrder, error) {
	var customer party.Customer
	if err := s.db.Where("id = ? AND is_archived = ?", req.CustomerID, false).First(&customer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve customer: %w", err)
	}

	status := req.Status
	if status == "" {
		status = OrderStatusPending
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = PaymentStatusPending
	}
	taxRate := req.TaxRate
	if taxRate.IsZero() {
		taxRate = DefaultTaxRate
	}

	order := &CustomerOrder{
		ID:                   uuid.NewString(),
		Name:                 orderName(req.Name),
		CustomerID:           customer.ID,
		Status:               status,
		PaymentStatus:        paymentStatus,
		DeliveryMethod:       req.DeliveryMethod,
		DeliveryDate:         req.DeliveryDate,
		DeliveryTime:         req.DeliveryTime,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
		Notes:                req.Notes,
		TaxRate:              taxRate,
		DiscountAmount:       req.DiscountAmount,
		SendEmail:            req.SendEmail,
	}

	subtotal := decimal.Zero
	items := make([]CustomerOrderItem, 0, len(req.Items))
	for _, ir := range req.Items {
		total := ir.UnitPrice.Mul(ir.Quantity)
		subtotal = subtotal.Add(total)
		items = append(items, CustomerOrderItem{
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
	applyTotals(order)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	if order.SendEmail && customer.Email != "" {
		if err := s.notifier.SendOrderConfirmationEmail(customer.Email, order, &customer); err != nil {
			s.log.WithField("order_id", order.ID).WithError(err).Warn("Order confirmation email failed")
		}
	}

	return order, nil
}

// GetOrder retrieves a single customer order with its non-archived items
func (s *Service) GetOrder(id string) (*CustomerOrder, error) {
	var order CustomerOrder
	result := s.db.Preload("Items", "is_archived = ?", false).Where("id = ?", id).First(&order)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &order, nil
}

// GetOrders retrieves customer orders with filtering and pagination
func (s *Service) GetOrders(req *OrderListRequest) (*OrderListResponse, error) {
	var orders []CustomerOrder
	var total int64

	query := s.db.Model(&CustomerOrder{})
	if !req.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if req.CustomerID != "" {
		query = query.Where("customer_id = ?", req.CustomerID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at desc").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return &OrderListResponse{
		Orders:     orders,
		Pagination: party.BuildPagination(req.Page, req.Limit, total),
	}, nil
}

// UpdateOrder replaces the order header and its full item set.
// Existing items are archived and the submitted set is written fresh, which
// keeps updates replace-style rather than patch-style.
func (s *Service) UpdateOrder(id string, req *CreateOrderRequest) (*CustomerOrder, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	order.CustomerID = req.CustomerID
	if req.Name != "" {
		order.Name = req.Name
	}
	if req.Status != "" {
		order.Status = req.Status
	}
	if req.PaymentStatus != "" {
		order.PaymentStatus = req.PaymentStatus
	}
	order.DeliveryMethod = req.DeliveryMethod
	order.DeliveryDate = req.DeliveryDate
	order.DeliveryTime = req.DeliveryTime
	order.DeliveryAddress = req.DeliveryAddress
	order.DeliveryInstructions = req.DeliveryInstructions
	order.Notes = req.Notes
	if !req.TaxRate.IsZero() {
		order.TaxRate = req.TaxRate
	}
	order.DiscountAmount = req.DiscountAmount
	order.SendEmail = req.SendEmail

	subtotal := decimal.Zero
	items := make([]CustomerOrderItem, 0, len(req.Items))
	for _, ir := range req.Items {
		total := ir.UnitPrice.Mul(ir.Quantity)
		subtotal = subtotal.Add(total)
		items = append(items, CustomerOrderItem{
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
	applyTotals(order)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&CustomerOrderItem{}).Where("order_id = ?", order.ID).Update("is_archived", true).Error; err != nil {
			return fmt.Errorf("failed to archive previous items: %w", err)
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order.Items = nil
		if err := tx.Save(order).Error; err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// UpdateStatus transitions the order status and optionally notifies the customer
func (s *Service) UpdateStatus(id string, status OrderStatus) (*CustomerOrder, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if status == OrderStatusCancelled && !order.CanBeCancelled() {
		return nil, fmt.Errorf("order cannot be cancelled in status %s", order.Status)
	}

	order.Status = status
	if err := s.db.Model(&CustomerOrder{}).Where("id = ?", id).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if order.SendEmail {
		var customer party.Customer
		if err := s.db.Where("id = ?", order.CustomerID).First(&customer).Error; err == nil && customer.Email != "" {
			if err := s.notifier.SendOrderStatusUpdateEmail(customer.Email, order, &customer); err != nil {
				s.log.WithField("order_id", order.ID).WithError(err).Warn("Order status email failed")
			}
		}
	}

	return order, nil
}

// ArchiveOrder soft-deletes an order and its items
func (s *Service) ArchiveOrder(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&CustomerOrder{}).Where("id = ?", id).Update("is_archived", true)
		if result.Error != nil {
			return fmt.Errorf("failed to archive order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&CustomerOrderItem{}).Where("order_id = ?", id).Update("is_archived", true).Error; err != nil {
			return fmt.Errorf("failed to archive order items: %w", err)
		}
		return nil
	})
}

// applyTotals recomputes derived monetary fields from subtotal and discount
func applyTotals(order *CustomerOrder) {
	if order.SubtotalOrderValue.IsPositive() && !order.DiscountAmount.IsZero() {
		order.DiscountPercentage = order.DiscountAmount.Div(order.SubtotalOrderValue).Mul(decimal.NewFromInt(100))
	} else {
		order.DiscountPercentage = decimal.Zero
	}
	taxable := order.SubtotalOrderValue.Sub(order.DiscountAmount)
	tax := taxable.Mul(order.TaxRate).Div(decimal.NewFromInt(100))
	order.TotalOrderValue = taxable.Add(tax)
}
