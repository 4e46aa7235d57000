// internal/interfaces/http/handlers/audit.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/tradesupply-backend/internal/config"
	"github.com/your-org/tradesupply-backend/internal/domain/audit"
)

// AuditHandler handles audit log endpoints
type AuditHandler struct {
	auditService *audit.Service
	config       *config.Config
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(db *gorm.DB, cfg *config.Config, log *logrus.Logger) *AuditHandler {
	return &AuditHandler{
		auditService: audit.NewService(db, log),
		config:       cfg,
	}
}

// GetEntries handles GET /admin/audit-log
func (h *AuditHandler) GetEntries(c *gin.Context) {
	limit := 100
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}

	entries, err := h.auditService.List(c.Query("entity_type"), c.Query("entity_id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": entries,
	})
}
