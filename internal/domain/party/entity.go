// internal/domain/party/entity.go
package party

import (
	"time"
)

// CustomerType classifies a customer account
type CustomerType string

const (
	CustomerTypeRetail    CustomerType = "Retail"
	CustomerTypeWholesale CustomerType = "Wholesale"
	CustomerTypeTrade     CustomerType = "Trade"
)

// Customer represents a customer counterparty. Customers own customer
// orders; rows are archived, never deleted.
type Customer struct {
	ID           string       `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string       `gorm:"not null;size:255" json:"name"`
	Email        string       `gorm:"size:255;index" json:"email"`
	Phone        string       `gorm:"size:50" json:"phone"`
	Address      string       `gorm:"size:255" json:"address"`
	City         string       `gorm:"size:100" json:"city"`
	Province     string       `gorm:"size:100" json:"province"`
	PostalCode   string       `gorm:"size:20" json:"postal_code"`
	CustomerType CustomerType `gorm:"size:20;default:'Retail'" json:"customer_type"`
	Notes        string       `gorm:"type:text" json:"notes"`
	IsArchived   bool         `gorm:"default:false;index" json:"is_archived"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Manufacturer represents a supplier counterparty. Manufacturers own
// purchase orders.
type Manufacturer struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	ContactName string    `gorm:"size:255" json:"contact_name"`
	Email       string    `gorm:"size:255;index" json:"email"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Address     string    `gorm:"size:255" json:"address"`
	City        string    `gorm:"size:100" json:"city"`
	Province    string    `gorm:"size:100" json:"province"`
	PostalCode  string    `gorm:"size:20" json:"postal_code"`
	Notes       string    `gorm:"type:text" json:"notes"`
	IsArchived  bool      `gorm:"default:false;index" json:"is_archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides
func (Customer) TableName() string     { return "customers" }
func (Manufacturer) TableName() string { return "manufacturers" }
