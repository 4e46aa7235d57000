// internal/domain/party/customer_service.go
package party

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/tradesupply-backend/internal/config"
	"gorm.io/gorm"
)

// CustomerService handles customer business logic
type CustomerService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCustomerService creates a new customer service
func NewCustomerService(db *gorm.DB, cfg *config.Config) *CustomerService {
	return &CustomerService{
		db:     db,
		config: cfg,
	}
}

// CreateCustomerRequest represents customer creation data
type CreateCustomerRequest struct {
	Name         string       `json:"name" binding:"required"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	Province     string       `json:"province"`
	PostalCode   string       `json:"postal_code"`
	CustomerType CustomerType `json:"customer_type"`
	Notes        string       `json:"notes"`
}

// CustomerListRequest represents customer list query parameters
type CustomerListRequest struct {
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=20"`
	Search          string `form:"search"`
	IncludeArchived bool   `form:"include_archived"`
}

// CustomerListResponse represents a paginated list of customers
type CustomerListResponse struct {
	Customers  []Customer `json:"customers"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(req *CreateCustomerRequest) (*Customer, error) {
	customerType := req.CustomerType
	if customerType == "" {
		customerType = CustomerTypeRetail
	}

	customer := &Customer{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		PostalCode:   req.PostalCode,
		CustomerType: customerType,
		Notes:        req.Notes,
	}

	if err := s.db.Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// GetCustomer retrieves a single customer by ID
func (s *CustomerService) GetCustomer(id string) (*Customer, error) {
	var customer Customer
	result := s.db.Where("id = ?", id).First(&customer)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer not found")
		}
		return nil, fmt.Errorf("failed to retrieve customer: %w", result.Error)
	}
	return &customer, nil
}

// GetCustomers retrieves customers with filtering and pagination
func (s *CustomerService) GetCustomers(req *CustomerListRequest) (*CustomerListResponse, error) {
	var customers []Customer
	var total int64

	query := s.db.Model(&Customer{})
	if !req.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("name asc").Offset(offset).Limit(req.Limit).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve customers: %w", err)
	}

	return &CustomerListResponse{
		Customers:  customers,
		Pagination: BuildPagination(req.Page, req.Limit, total),
	}, nil
}

// UpdateCustomer replaces a customer's mutable fields
func (s *CustomerService) UpdateCustomer(id string, req *CreateCustomerRequest) (*Customer, error) {
	customer, err := s.GetCustomer(id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.City = req.City
	customer.Province = req.Province
	customer.PostalCode = req.PostalCode
	customer.Notes = req.Notes
	if req.CustomerType != "" {
		customer.CustomerType = req.CustomerType
	}

	if err := s.db.Save(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

// ArchiveCustomer soft-deletes a customer
func (s *CustomerService) ArchiveCustomer(id string) error {
	result := s.db.Model(&Customer{}).Where("id = ?", id).Update("is_archived", true)
	if result.Error != nil {
		return fmt.Errorf("failed to archive customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("customer not found")
	}
	return nil
}

// BuildPagination derives pagination metadata from a page, limit and total count
func BuildPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
