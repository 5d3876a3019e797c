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

// CouponHandler handles coupon ledger HTTP requests
type CouponHandler struct {
	couponService services.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// GetAllCoupons handles GET /admin/coupons
func (h *CouponHandler) GetAllCoupons(c *gin.Context) {
	coupons, err := h.couponService.GetAllCoupons(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get coupons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

// CreateCoupon handles POST /admin/coupons
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req models.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coupon code is required"})
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		h.writeCouponError(c, err, "failed to create coupon")
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

// UpdateCoupon handles PUT /admin/coupons/:id
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
		return
	}

	var req models.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coupon code is required"})
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), id, &req)
	if err != nil {
		h.writeCouponError(c, err, "failed to update coupon")
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon handles DELETE /admin/coupons/:id
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coupon id"})
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		h.writeCouponError(c, err, "failed to delete coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "coupon deleted"})
}

// GenerateCode handles GET /admin/coupons/generate-code
func (h *CouponHandler) GenerateCode(c *gin.Context) {
	code, err := h.couponService.GenerateCode(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code})
}

// writeCouponError maps ledger errors to operator-facing responses. Unlike
// the participant endpoints, the specific taxonomy value is surfaced here.
func (h *CouponHandler) writeCouponError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCodeFormat),
		errors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateCode):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrCouponUsed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
