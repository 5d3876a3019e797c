package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sekawan78/spinwheel-backend/internal/config"
	"github.com/sekawan78/spinwheel-backend/internal/handlers"
	"github.com/sekawan78/spinwheel-backend/internal/middleware"
)

// HandlerDependencies collects the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	SpinHandler       *handlers.SpinHandler
	PrizeHandler      *handlers.PrizeHandler
	CouponHandler     *handlers.CouponHandler
	RedemptionHandler *handlers.RedemptionHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())

	// Public routes: the wheel page and operator login
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		public.POST("/auth/login", deps.AuthHandler.Login)

		public.POST("/coupons/validate", deps.SpinHandler.ValidateCoupon)
		public.POST("/spin", deps.SpinHandler.Spin)
	}

	// Protected routes: operator catalog and ledger management
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg))
	{
		prizes := admin.Group("/prizes")
		{
			prizes.GET("", deps.PrizeHandler.GetAllPrizes)
			prizes.POST("", deps.PrizeHandler.CreatePrize)
			prizes.PUT("/:id", deps.PrizeHandler.UpdatePrize)
			prizes.DELETE("/:id", deps.PrizeHandler.DeletePrize)
		}

		coupons := admin.Group("/coupons")
		{
			coupons.GET("", deps.CouponHandler.GetAllCoupons)
			coupons.GET("/generate-code", deps.CouponHandler.GenerateCode)
			coupons.POST("", deps.CouponHandler.CreateCoupon)
			coupons.PUT("/:id", deps.CouponHandler.UpdateCoupon)
			coupons.DELETE("/:id", deps.CouponHandler.DeleteCoupon)
		}

		admin.GET("/redemptions", deps.RedemptionHandler.GetAllRedemptions)
	}

	return router
}
