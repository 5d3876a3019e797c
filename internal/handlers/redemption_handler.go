package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sekawan78/spinwheel-backend/internal/services"
)

// RedemptionHandler exposes the operator's redemption history
type RedemptionHandler struct {
	redemptionService services.RedemptionService
}

// NewRedemptionHandler creates a new RedemptionHandler
func NewRedemptionHandler(redemptionService services.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{
		redemptionService: redemptionService,
	}
}

// GetAllRedemptions handles GET /admin/redemptions
func (h *RedemptionHandler) GetAllRedemptions(c *gin.Context) {
	redemptions, err := h.redemptionService.GetAllRedemptions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get redemptions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redemptions": redemptions})
}
