// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/domain/audit"
	"github.com/your-org/tradesupply-backend/internal/domain/employee"
	"github.com/your-org/tradesupply-backend/internal/domain/inventory"
	"github.com/your-org/tradesupply-backend/internal/domain/order"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
	"github.com/your-org/tradesupply-backend/internal/domain/product"
	"github.com/your-org/tradesupply-backend/internal/domain/purchase"
	"github.com/your-org/tradesupply-backend/internal/domain/storefront"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Counterparties - base tables
		&party.Customer{},
		&party.Manufacturer{},

		// Employees
		&employee.Employee{},

		// Product catalog
		&product.Product{},
		&product.ProductVariant{},

		// Inventory
		&inventory.StockMovement{},
		&inventory.StockAlert{},

		// Storefront orders
		&storefront.Order{},
		&storefront.OrderItem{},

		// Customer orders
		&order.CustomerOrder{},
		&order.CustomerOrderItem{},

		// Purchase orders
		&purchase.PurchaseOrder{},
		&purchase.PurchaseOrderItem{},

		// Audit log
		&audit.Entry{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Customer indexes
		"CREATE INDEX IF NOT EXISTS idx_customers_email_archived ON customers(email, is_archived)",
		"CREATE INDEX IF NOT EXISTS idx_customers_name ON customers(name)",

		// Manufacturer indexes
		"CREATE INDEX IF NOT EXISTS idx_manufacturers_name ON manufacturers(name)",

		// Employee indexes
		"CREATE INDEX IF NOT EXISTS idx_employees_email_active ON employees(email, is_active)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku)",
		"CREATE INDEX IF NOT EXISTS idx_products_manufacturer ON products(manufacturer_id, is_archived)",
		"CREATE INDEX IF NOT EXISTS idx_product_variants_product_archived ON product_variants(product_id, is_archived)",
		"CREATE INDEX IF NOT EXISTS idx_product_variants_sku ON product_variants(sku)",

		// Inventory indexes
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_variant_created ON stock_movements(variant_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_stock_movements_reference ON stock_movements(reference_type, reference_id)",
		"CREATE INDEX IF NOT EXISTS idx_stock_alerts_variant_unresolved ON stock_alerts(variant_id, is_resolved)",

		// Storefront order indexes
		"CREATE INDEX IF NOT EXISTS idx_storefront_orders_email ON storefront_orders(email)",
		"CREATE INDEX IF NOT EXISTS idx_storefront_orders_status_created ON storefront_orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_storefront_orders_converted ON storefront_orders(converted_order_id)",
		"CREATE INDEX IF NOT EXISTS idx_storefront_order_items_order ON storefront_order_items(order_id)",

		// Customer order indexes
		"CREATE INDEX IF NOT EXISTS idx_customer_orders_customer_status ON customer_orders(customer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_customer_orders_created_at ON customer_orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_customer_order_items_order ON customer_order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_customer_order_items_variant ON customer_order_items(variant_id)",

		// Purchase order indexes
		"CREATE INDEX IF NOT EXISTS idx_purchase_orders_manufacturer_status ON purchase_orders(manufacturer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_purchase_order_items_order ON purchase_order_items(order_id)",

		// Audit log indexes
		"CREATE INDEX IF NOT EXISTS idx_audit_log_entity ON audit_log(entity_type, entity_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_log_created_at ON audit_log(created_at DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminEmployee(); err != nil {
		return fmt.Errorf("failed to seed admin employee: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedAdminEmployee creates the default admin account when none exists
func (m *Migration) seedAdminEmployee() error {
	var count int64
	if err := m.db.Model(&employee.Employee{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("👤 Admin employee already exists, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &employee.Employee{
		ID:           uuid.NewString(),
		FirstName:    "Admin",
		LastName:     "User",
		Email:        "admin@tradesupply.local",
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsActive:     true,
	}

	if err := m.db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("👤 Default admin employee created (admin@tradesupply.local)")
	return nil
}

// GetTableInfo returns row counts for the main tables
func (m *Migration) GetTableInfo() (map[string]int64, error) {
	info := make(map[string]int64)

	tables := map[string]interface{}{
		"customers":         &party.Customer{},
		"manufacturers":     &party.Manufacturer{},
		"employees":         &employee.Employee{},
		"products":          &product.Product{},
		"product_variants":  &product.ProductVariant{},
		"stock_movements":   &inventory.StockMovement{},
		"storefront_orders": &storefront.Order{},
		"customer_orders":   &order.CustomerOrder{},
		"purchase_orders":   &purchase.PurchaseOrder{},
		"audit_log":         &audit.Entry{},
	}

	for name, model := range tables {
		var count int64
		if err := m.db.Model(model).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", name, err)
		}
		info[name] = count
	}

	return info, nil
}
