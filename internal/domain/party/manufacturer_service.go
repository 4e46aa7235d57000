// internal/domain/party/manufacturer_service.go
package party

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/tradesupply-backend/internal/config"
	"gorm.io/gorm"
)

// ManufacturerService handles manufacturer business logic
type ManufacturerService struct {
	db     *gorm.DB
	config *config.Config
}

// NewManufacturerService creates a new manufacturer service
func NewManufacturerService(db *gorm.DB, cfg *config.Config) *ManufacturerService {
	return &ManufacturerService{
		db:     db,
		config: cfg,
	}
}

// CreateManufacturerRequest represents manufacturer creation data
type CreateManufacturerRequest struct {
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code"`
	Notes       string `json:"notes"`
}

// ManufacturerListRequest represents manufacturer list query parameters
type ManufacturerListRequest struct {
	Page            int    `form:"page,default=1"`
	Limit           int    `form:"limit,default=20"`
	Search          string `form:"search"`
	IncludeArchived bool   `form:"include_archived"`
}

// ManufacturerListResponse represents a paginated list of manufacturers
type ManufacturerListResponse struct {
	Manufacturers []Manufacturer `json:"manufacturers"`
	Pagination    Pagination     `json:"pagination"`
}

// CreateManufacturer creates a new manufacturer
func (s *ManufacturerService) CreateManufacturer(req *CreateManufacturerRequest) (*Manufacturer, error) {
	manufacturer := &Manufacturer{
		ID:          uuid.NewString(),
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		Province:    req.Province,
		PostalCode:  req.PostalCode,
		Notes:       req.Notes,
	}

	if err := s.db.Create(manufacturer).Error; err != nil {
		return nil, fmt.Errorf("failed to create manufacturer: %w", err)
	}

	return manufacturer, nil
}

// GetManufacturer retrieves a single manufacturer by ID
func (s *ManufacturerService) GetManufacturer(id string) (*Manufacturer, error) {
	var manufacturer Manufacturer
	result := s.db.Where("id = ?", id).First(&manufacturer)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("manufacturer not found")
		}
		return nil, fmt.Errorf("failed to retrieve manufacturer: %w", result.Error)
	}
	return &manufacturer, nil
}

// GetManufacturers retrieves manufacturers with filtering and pagination
func (s *ManufacturerService) GetManufacturers(req *ManufacturerListRequest) (*ManufacturerListResponse, error) {
	var manufacturers []Manufacturer
	var total int64

	query := s.db.Model(&Manufacturer{})
	if !req.IncludeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR contact_name ILIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count manufacturers: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("name asc").Offset(offset).Limit(req.Limit).Find(&manufacturers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve manufacturers: %w", err)
	}

	return &ManufacturerListResponse{
		Manufacturers: manufacturers,
		Pagination:    BuildPagination(req.Page, req.Limit, total),
	}, nil
}

// UpdateManufacturer replaces a manufacturer's mutable fields
func (s *ManufacturerService) UpdateManufacturer(id string, req *CreateManufacturerRequest) (*Manufacturer, error) {
	manufacturer, err := s.GetManufacturer(id)
	if err != nil {
		return nil, err
	}

	manufacturer.Name = req.Name
	manufacturer.ContactName = req.ContactName
	manufacturer.Email = req.Email
	manufacturer.Phone = req.Phone
	manufacturer.Address = req.Address
	manufacturer.City = req.City
	manufacturer.Province = req.Province
	manufacturer.PostalCode = req.PostalCode
	manufacturer.Notes = req.Notes

	if err := s.db.Save(manufacturer).Error; err != nil {
		return nil, fmt.Errorf("failed to update manufacturer: %w", err)
	}

	return manufacturer, nil
}

// ArchiveManufacturer soft-deletes a manufacturer
func (s *ManufacturerService) ArchiveManufacturer(id string) error {
	result := s.db.Model(&Manufacturer{}).Where("id = ?", id).Update("is_archived", true)
	if result.Error != nil {
		return fmt.Errorf("failed to archive manufacturer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("manufacturer not found")
	}
	return nil
}
