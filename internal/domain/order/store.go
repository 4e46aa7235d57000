// internal/domain/order/store.go
package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/domain/audit"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
	"github.com/your-org/tradesupply-backend/internal/domain/storefront"
)

// GormConversionStore implements ConversionStore against the database
type GormConversionStore struct {
	db *gorm.DB
}

// NewGormConversionStore creates a new database-backed conversion store
func NewGormConversionStore(db *gorm.DB) *GormConversionStore {
	return &GormConversionStore{db: db}
}

func (s *GormConversionStore) GetStorefrontOrder(ctx context.Context, id string) (*storefront.Order, error) {
	var order storefront.Order
	if err := s.db.WithContext(ctx).Where("id = ? AND is_archived = ?", id, false).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get storefront order: %w", err)
	}
	return &order, nil
}

func (s *GormConversionStore) ListStorefrontItems(ctx context.Context, orderID string) ([]storefront.OrderItem, error) {
	var items []storefront.OrderItem
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list storefront order items: %w", err)
	}
	return items, nil
}

func (s *GormConversionStore) GetCustomer(ctx context.Context, id string) (*party.Customer, error) {
	var customer party.Customer
	if err := s.db.WithContext(ctx).Where("id = ? AND is_archived = ?", id, false).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

func (s *GormConversionStore) FindCustomerByEmail(ctx context.Context, email string) (*party.Customer, error) {
	var customer party.Customer
	if err := s.db.WithContext(ctx).Where("email = ? AND is_archived = ?", email, false).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by email: %w", err)
	}
	return &customer, nil
}

func (s *GormConversionStore) CreateCustomer(ctx context.Context, customer *party.Customer) error {
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (s *GormConversionStore) CreateOrder(ctx context.Context, order *CustomerOrder) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create customer order: %w", err)
	}
	return nil
}

func (s *GormConversionStore) CreateOrderItem(ctx context.Context, item *CustomerOrderItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create customer order item: %w", err)
	}
	return nil
}

// AnnotateStorefrontOrder stamps the target order id on the source order.
// The update is conditional on the column still being empty so that the
// second of two concurrent conversions fails with ErrConflict instead of
// silently overwriting the first.
func (s *GormConversionStore) AnnotateStorefrontOrder(ctx context.Context, id, targetOrderID, note string) error {
	result := s.db.WithContext(ctx).Model(&storefront.Order{}).
		Where("id = ? AND converted_order_id = ''", id).
		Updates(map[string]interface{}{
			"converted_order_id": targetOrderID,
			"notes":              gorm.Expr("CASE WHEN notes = '' THEN ? ELSE notes || E'\\n' || ? END", note, note),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to annotate storefront order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *GormConversionStore) AppendAudit(ctx context.Context, entry *audit.Entry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
