// internal/interfaces/http/handlers/manufacturer.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
)

// ManufacturerHandler handles manufacturer endpoints
type ManufacturerHandler struct {
	manufacturerService *party.ManufacturerService
	config              *config.Config
}

// NewManufacturerHandler creates a new manufacturer handler
func NewManufacturerHandler(db *gorm.DB, cfg *config.Config) *ManufacturerHandler {
	return &ManufacturerHandler{
		manufacturerService: party.NewManufacturerService(db, cfg),
		config:              cfg,
	}
}

// CreateManufacturer handles POST /manufacturers
func (h *ManufacturerHandler) CreateManufacturer(c *gin.Context) {
	var req party.CreateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	manufacturer, err := h.manufacturerService.CreateManufacturer(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Manufacturer created successfully",
		"data":    manufacturer,
	})
}

// GetManufacturer handles GET /manufacturers/:id
func (h *ManufacturerHandler) GetManufacturer(c *gin.Context) {
	manufacturer, err := h.manufacturerService.GetManufacturer(c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Manufacturer not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": manufacturer,
	})
}

// GetManufacturers handles GET /manufacturers
func (h *ManufacturerHandler) GetManufacturers(c *gin.Context) {
	var req party.ManufacturerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.manufacturerService.GetManufacturers(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
	})
}

// UpdateManufacturer handles PUT /manufacturers/:id
func (h *ManufacturerHandler) UpdateManufacturer(c *gin.Context) {
	var req party.CreateManufacturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	manufacturer, err := h.manufacturerService.UpdateManufacturer(c.Param("id"), &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Manufacturer not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Manufacturer updated successfully",
		"data":    manufacturer,
	})
}

// ArchiveManufacturer handles DELETE /manufacturers/:id
func (h *ManufacturerHandler) ArchiveManufacturer(c *gin.Context) {
	if err := h.manufacturerService.ArchiveManufacturer(c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Manufacturer not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Manufacturer archived successfully",
	})
}
