package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/sekawan78/spinwheel-backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/sekawan78/spinwheel-backend/internal/models"
	"github.com/sekawan78/spinwheel-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeHandler handles prize catalog HTTP requests
type PrizeHandler struct {
	catalogService services.CatalogService
}

// NewPrizeHandler creates a new PrizeHandler
func NewPrizeHandler(catalogService services.CatalogService) *PrizeHandler {
	return &PrizeHandler{
		catalogService: catalogService,
	}
}

// GetAllPrizes handles GET /admin/prizes
func (h *PrizeHandler) GetAllPrizes(c *gin.Context) {
	prizes, err := h.catalogService.GetAllPrizes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get prizes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prizes": prizes})
}

// CreatePrize handles POST /admin/prizes
func (h *PrizeHandler) CreatePrize(c *gin.Context) {
	var req models.PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prize name and quantity are required"})
		return
	}

	prize, err := h.catalogService.CreatePrize(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create prize"})
		return
	}

	c.JSON(http.StatusCreated, prize)
}

// UpdatePrize handles PUT /admin/prizes/:id
func (h *PrizeHandler) UpdatePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prize id"})
		return
	}

	var req models.PrizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prize name and quantity are required"})
		return
	}

	prize, err := h.catalogService.UpdatePrize(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "prize not found"})
		case errors.Is(err, apperrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update prize"})
		}
		return
	}

	c.JSON(http.StatusOK, prize)
}

// DeletePrize handles DELETE /admin/prizes/:id
func (h *PrizeHandler) DeletePrize(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prize id"})
		return
	}

	if err := h.catalogService.DeletePrize(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prize not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete prize"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "prize deleted"})
}
