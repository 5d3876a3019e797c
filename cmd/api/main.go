package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sekawan78/spinwheel-backend/api/routes"
	"github.com/sekawan78/spinwheel-backend/internal/config"
	"github.com/sekawan78/spinwheel-backend/internal/handlers"
	"github.com/sekawan78/spinwheel-backend/internal/repositories"
	mongorepo "github.com/sekawan78/spinwheel-backend/internal/repositories/mongodb"
	"github.com/sekawan78/spinwheel-backend/internal/services"
	"github.com/sekawan78/spinwheel-backend/pkg/mongodb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT secret is not configured")
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongoClient.EnsureIndexes(ctx, cfg.MongoDB.Database); err != nil {
		cancel()
		log.Fatalf("Failed to create indexes: %v", err)
	}
	cancel()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Repositories
	var prizeRepo repositories.PrizeRepository = mongorepo.NewPrizeRepository(db)
	var couponRepo repositories.CouponRepository = mongorepo.NewCouponRepository(db)
	var redemptionRepo repositories.RedemptionRepository = mongorepo.NewRedemptionRepository(db)
	var uow repositories.UnitOfWork = mongodb.NewUnitOfWork(mongoClient)

	// Services
	catalogService := services.NewCatalogService(prizeRepo)
	couponService := services.NewCouponService(couponRepo, prizeRepo)
	redemptionService := services.NewRedemptionService(couponRepo, prizeRepo, redemptionRepo, uow)
	authService := services.NewAuthService(cfg)

	// Seed the starter catalog on an empty database
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := catalogService.SeedDefaults(ctx); err != nil {
		log.Printf("Warning: failed to seed default prizes: %v", err)
	}
	cancel()

	// Handlers
	deps := routes.HandlerDependencies{
		AuthHandler:       handlers.NewAuthHandler(authService),
		SpinHandler:       handlers.NewSpinHandler(redemptionService),
		PrizeHandler:      handlers.NewPrizeHandler(catalogService),
		CouponHandler:     handlers.NewCouponHandler(couponService),
		RedemptionHandler: handlers.NewRedemptionHandler(redemptionService),
	}

	router := routes.SetupRouter(cfg, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
