// internal/interfaces/http/handlers/storefront.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/domain/order"
	"github.com/your-org/tradesupply-backend/internal/domain/party"
	"github.com/your-org/tradesupply-backend/internal/domain/storefront"
	"github.com/your-org/tradesupply-backend/internal/interfaces/http/middleware"
)

// StorefrontHandler handles storefront order endpoints, including
// conversion into customer orders
type StorefrontHandler struct {
	storefrontService *storefront.Service
	converter         *order.Converter
	config            *config.Config
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		storefrontService: storefront.NewService(db, cfg),
		converter:         order.NewConverter(order.NewGormConversionStore(db), log),
		config:            cfg,
	}
}

// ConvertOrderRequest is the JSON body accepted by the convert endpoint
type ConvertOrderRequest struct {
	Notes              string `json:"notes"`
	SelectedCustomerID string `json:"selectedCustomerId"`
}

// IngestOrder handles POST /storefront-orders
func (h *StorefrontHandler) IngestOrder(c *gin.Context) {
	var req storefront.IngestOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.storefrontService.IngestOrder(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Storefront order recorded successfully",
		"data":    created,
	})
}

// GetOrder handles GET /storefront-orders/:id
func (h *StorefrontHandler) GetOrder(c *gin.Context) {
	o, err := h.storefrontService.GetOrder(c.Param("id"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Storefront order not found",
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

// GetOrders handles GET /storefront-orders
func (h *StorefrontHandler) GetOrders(c *gin.Context) {
	var req storefront.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	orders, total, err := h.storefrontService.GetOrders(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"orders":     orders,
			"pagination": party.BuildPagination(req.Page, req.Limit, total),
		},
	})
}

// ArchiveOrder handles DELETE /storefront-orders/:id
func (h *StorefrontHandler) ArchiveOrder(c *gin.Context) {
	if err := h.storefrontService.ArchiveOrder(c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Storefront order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Storefront order archived successfully",
	})
}

// ConvertOrder handles POST /storefront-orders/:id/convert.
// Responds 404 when the source order or an explicitly selected customer is
// missing, 409 when the order was already converted, and 500 on customer or
// header write failure. Per-item copy failures ride along on a 200 response.
func (h *StorefrontHandler) ConvertOrder(c *gin.Context) {
	var req ConvertOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Invalid request data",
				"details": err.Error(),
			})
			return
		}
	}

	actorID, _ := middleware.GetEmployeeIDFromContext(c)

	result, err := h.converter.Convert(c.Request.Context(), c.Param("id"), order.ConvertOptions{
		Notes:              req.Notes,
		SelectedCustomerID: req.SelectedCustomerID,
		ActorID:            actorID,
	})
	if err != nil {
		var convErr *order.ConversionError
		stage := ""
		if errors.As(err, &convErr) {
			stage = convErr.Stage
		}

		switch {
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Order or customer not found",
				"stage":   stage,
			})
		case errors.Is(err, order.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   "Order has already been converted",
				"stage":   stage,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Conversion failed",
				"stage":   stage,
				"details": err.Error(),
			})
		}
		return
	}

	resp := gin.H{
		"success":         true,
		"customerOrderId": result.CustomerOrderID,
		"customerId":      result.CustomerID,
		"customerCreated": result.CustomerCreated,
	}
	if len(result.ItemErrors) > 0 {
		resp["itemErrors"] = result.ItemErrors
	}

	c.JSON(http.StatusOK, resp)
}
