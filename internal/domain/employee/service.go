// internal/domain/employee/service.go
package employee

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/pkg/auth"
)

// Service handles employee authentication and administration
type Service struct {
	db        *gorm.DB
	config    *config.Config
	jwt       *auth.JWTManager
	passwords *auth.PasswordManager
}

// NewService creates a new employee service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:        db,
		config:    cfg,
		jwt:       auth.NewJWTManager(cfg),
		passwords: auth.NewPasswordManager(cfg),
	}
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued tokens and the employee profile
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	Employee     *Employee `json:"employee"`
}

// CreateEmployeeRequest represents employee creation data
type CreateEmployeeRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	IsAdmin   bool   `json:"is_admin"`
}

// Login authenticates an employee and issues a token pair
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	var emp Employee
	if err := s.db.Where("email = ? AND is_active = ?", req.Email, true).First(&emp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("invalid credentials")
		}
		return nil, fmt.Errorf("failed to retrieve employee: %w", err)
	}

	if err := s.passwords.VerifyPassword(req.Password, emp.PasswordHash); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	accessToken, err := s.jwt.GenerateAccessToken(emp.ID, emp.Email, emp.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwt.GenerateRefreshToken(emp.ID, emp.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	if err := s.db.Model(&Employee{}).Where("id = ?", emp.ID).Update("last_login_at", now).Error; err == nil {
		emp.LastLoginAt = &now
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Employee:     &emp,
	}, nil
}

// RefreshTokens validates a refresh token and issues a fresh pair
func (s *Service) RefreshTokens(refreshToken string) (*LoginResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	emp, err := s.GetEmployee(claims.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !emp.IsActive {
		return nil, fmt.Errorf("employee account is deactivated")
	}

	accessToken, err := s.jwt.GenerateAccessToken(emp.ID, emp.Email, emp.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefreshToken, err := s.jwt.GenerateRefreshToken(emp.ID, emp.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Employee:     emp,
	}, nil
}

// CreateEmployee creates a new employee account
func (s *Service) CreateEmployee(req *CreateEmployeeRequest) (*Employee, error) {
	var count int64
	if err := s.db.Model(&Employee{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("email already in use")
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	emp := &Employee{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
	}

	if err := s.db.Create(emp).Error; err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	return emp, nil
}

// GetEmployee retrieves a single employee by ID
func (s *Service) GetEmployee(id string) (*Employee, error) {
	var emp Employee
	result := s.db.Where("id = ?", id).First(&emp)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("employee not found")
		}
		return nil, fmt.Errorf("failed to retrieve employee: %w", result.Error)
	}
	return &emp, nil
}

// GetEmployees retrieves all employees
func (s *Service) GetEmployees() ([]Employee, error) {
	var employees []Employee
	if err := s.db.Order("last_name asc, first_name asc").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve employees: %w", err)
	}
	return employees, nil
}

// SetActive activates or deactivates an employee account
func (s *Service) SetActive(id string, active bool) error {
	result := s.db.Model(&Employee{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return fmt.Errorf("failed to update employee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("employee not found")
	}
	return nil
}

// ChangePassword verifies the current password and stores a new hash
func (s *Service) ChangePassword(id, current, newPassword string) error {
	emp, err := s.GetEmployee(id)
	if err != nil {
		return err
	}

	if err := s.passwords.VerifyPassword(current, emp.PasswordHash); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := s.passwords.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.db.Model(&Employee{}).Where("id = ?", id).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
