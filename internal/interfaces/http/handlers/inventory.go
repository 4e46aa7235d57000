// internal/interfaces/http/handlers/inventory.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/domain/inventory"
	"github.com/your-org/tradesupply-backend/internal/interfaces/http/middleware"
)

// InventoryHandler handles inventory impact endpoints
type InventoryHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventory.NewService(db, cfg, log),
		config:           cfg,
	}
}

// ImpactRequest carries the proposed line changes of an order-edit session
type ImpactRequest struct {
	Changes       []inventory.ChangeRecord `json:"changes" binding:"required,min=1,dive"`
	ReferenceType string                   `json:"reference_type"`
	ReferenceID   string                   `json:"reference_id"`
}

// PreviewImpact handles POST /inventory/impact/preview.
// Computes the resulting stock levels without writing anything; this backs
// the impact review table shown before an order is saved.
func (h *InventoryHandler) PreviewImpact(c *gin.Context) {
	var req ImpactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	rows, err := h.inventoryService.PreviewImpacts(req.Changes)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": rows,
	})
}

// ApplyImpact handles POST /inventory/impact/apply.
// Persists the computed stock updates and records a movement per change.
func (h *InventoryHandler) ApplyImpact(c *gin.Context) {
	var req ImpactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	actorID, _ := middleware.GetEmployeeIDFromContext(c)

	rows, err := h.inventoryService.ApplyImpacts(req.Changes, actorID, req.ReferenceType, req.ReferenceID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Inventory updated successfully",
		"data":    rows,
	})
}

// GetMovements handles GET /inventory/variants/:id/movements
func (h *InventoryHandler) GetMovements(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	movements, err := h.inventoryService.GetMovements(c.Param("id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": movements,
	})
}
