package handlers

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/sekawan78/spinwheel-backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/sekawan78/spinwheel-backend/internal/models"
	"github.com/sekawan78/spinwheel-backend/internal/services"
)

// SpinHandler handles the participant-facing wheel endpoints.
// Participants only ever see generic failure messages; the specific error
// taxonomy stays on the operator side.
type SpinHandler struct {
	redemptionService services.RedemptionService
}

// NewSpinHandler creates a new SpinHandler
func NewSpinHandler(redemptionService services.RedemptionService) *SpinHandler {
	return &SpinHandler{
		redemptionService: redemptionService,
	}
}

// ValidateCoupon handles POST /coupons/validate. Read-only: the frontend
// probes the code before committing to the wheel animation.
func (h *SpinHandler) ValidateCoupon(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Kode kupon harus 5 karakter alfanumerik"})
		return
	}

	validation, err := h.redemptionService.Validate(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Kode kupon harus 5 karakter alfanumerik"})
		case errors.Is(err, apperrors.ErrCouponNotFoundOrUsed):
			c.JSON(http.StatusNotFound, gin.H{"error": "Kode kupon tidak valid atau sudah digunakan"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "coupon": validation})
}

// Spin handles POST /spin: one coupon in, one recorded outcome out.
func (h *SpinHandler) Spin(c *gin.Context) {
	var req models.SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap"})
		return
	}

	prize, _, err := h.redemptionService.Redeem(c.Request.Context(), req.CouponCode, req.ParticipantName, req.PrizeName)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Data tidak lengkap"})
		case errors.Is(err, apperrors.ErrCouponNotFoundOrUsed):
			c.JSON(http.StatusNotFound, gin.H{"error": "Kode kupon tidak valid atau sudah digunakan"})
		default:
			// Includes ErrPrizeMismatch: surfaced generically to the
			// participant, logged server-side as a tampering signal.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server"})
		}
		return
	}

	message := fmt.Sprintf("Maaf %s, %s. Silakan coba lagi!", req.ParticipantName, prize.Name)
	if prize.Category == models.CategoryWinning {
		message = fmt.Sprintf("Selamat %s! Anda memenangkan %s", req.ParticipantName, prize.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"prize": models.SpinResult{
			PrizeName:        prize.Name,
			PrizeDescription: prize.Description,
			Category:         prize.Category,
		},
	})
}
