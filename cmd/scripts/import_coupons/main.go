package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"

	apperrors "github.com/sekawan78/spinwheel-backend/pkg/errors"

	"github.com/joho/godotenv"
	"github.com/sekawan78/spinwheel-backend/internal/models"
	"github.com/sekawan78/spinwheel-backend/internal/repositories"
	mongorepo "github.com/sekawan78/spinwheel-backend/internal/repositories/mongodb"
	"github.com/sekawan78/spinwheel-backend/internal/utils"
	"github.com/sekawan78/spinwheel-backend/pkg/mongodb"
)

// Imports a batch of coupon codes from a CSV file. Each row is
// "code" or "code,prizeName"; the optional prize name binds the coupon
// to an existing catalog prize.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "spinwheel"
	}

	if len(os.Args) < 2 {
		log.Fatal("CSV file path is required as a command line argument")
	}
	csvFilePath := os.Args[1]

	client, err := mongodb.NewClient(mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.EnsureIndexes(context.Background(), dbName); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	db := client.Database(dbName)
	couponRepo := mongorepo.NewCouponRepository(db)
	prizeRepo := mongorepo.NewPrizeRepository(db)

	imported, err := importCoupons(couponRepo, prizeRepo, csvFilePath)
	if err != nil {
		log.Fatalf("Failed to import coupons: %v", err)
	}

	log.Printf("Imported %d coupons", imported)
}

// importCoupons reads the CSV and inserts one unused coupon per valid row
func importCoupons(couponRepo repositories.CouponRepository, prizeRepo repositories.PrizeRepository, csvFilePath string) (int, error) {
	file, err := os.Open(csvFilePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse CSV file: %v", err)
	}

	imported := 0
	for i, record := range records {
		if len(record) == 0 {
			continue
		}

		code := utils.NormalizeCode(record[0])
		if !utils.ValidCouponCode(code) {
			log.Printf("Warning: row %d has invalid code %q, skipping", i+1, record[0])
			continue
		}

		coupon := &models.Coupon{Code: code}

		if len(record) > 1 && record[1] != "" {
			prize, err := prizeRepo.FindByName(context.Background(), record[1])
			if err != nil {
				log.Printf("Warning: row %d references unknown prize %q, skipping", i+1, record[1])
				continue
			}
			coupon.PrizeID = prize.ID
		}

		if err := couponRepo.Create(context.Background(), coupon); err != nil {
			if err == apperrors.ErrDuplicateCode {
				log.Printf("Warning: row %d duplicates code %s, skipping", i+1, code)
				continue
			}
			return imported, err
		}
		imported++
	}

	return imported, nil
}
