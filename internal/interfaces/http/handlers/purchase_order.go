// internal/interfaces/http/handlers/purchase_order.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/domain/purchase"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	purchaseService *purchase.Service
	config          *config.Config
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(db *gorm.DB, cfg *config.Config) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		purchaseService: purchase.NewService(db, cfg),
		config:          cfg,
	}
}

// CreateOrder handles POST /purchase-orders
func (h *PurchaseOrderHandler) CreateOrder(c *gin.Context) {
	var req purchase.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.purchaseService.CreateOrder(&req)
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

	c.JSON(http.StatusCreated, gin.H{
		"message": "Purchase order created successfully",
		"data":    created,
	})
}

// GetOrder handles GET /purchase-orders/:id
func (h *PurchaseOrderHandler) GetOrder(c *gin.Context) {
	o, err := h.purchaseService.GetOrder(c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Purchase order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": o,
	})
}

// GetOrders handles GET /purchase-orders
func (h *PurchaseOrderHandler) GetOrders(c *gin.Context) {
	var req purchase.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.purchaseService.GetOrders(&req)
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

// UpdateOrderStatus handles PUT /purchase-orders/:id/status
func (h *PurchaseOrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status purchase.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.purchaseService.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Purchase order not found",
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order status updated successfully",
		"data":    updated,
	})
}

// ArchiveOrder handles DELETE /purchase-orders/:id
func (h *PurchaseOrderHandler) ArchiveOrder(c *gin.Context) {
	if err := h.purchaseService.ArchiveOrder(c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Purchase order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase order archived successfully",
	})
}
