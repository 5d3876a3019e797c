package services

import (
	"context"

	apperrors "github.com/sekawan78/spinwheel-backend/pkg/errors"

	"github.com/sekawan78/spinwheel-backend/internal/models"
	"github.com/sekawan78/spinwheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService defines the interface for prize catalog operations
type CatalogService interface {
	GetAllPrizes(ctx context.Context) ([]*models.Prize, error)
	GetPrizeByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	CreatePrize(ctx context.Context, req *models.PrizeRequest) (*models.Prize, error)
	UpdatePrize(ctx context.Context, id primitive.ObjectID, req *models.PrizeRequest) (*models.Prize, error)
	DeletePrize(ctx context.Context, id primitive.ObjectID) error
	SeedDefaults(ctx context.Context) error
}

type catalogService struct {
	prizeRepo repositories.PrizeRepository
}

// NewCatalogService creates a new CatalogService implementation
func NewCatalogService(prizeRepo repositories.PrizeRepository) CatalogService {
	return &catalogService{
		prizeRepo: prizeRepo,
	}
}

// GetAllPrizes returns the full prize catalog
func (s *catalogService) GetAllPrizes(ctx context.Context) ([]*models.Prize, error) {
	return s.prizeRepo.FindAll(ctx)
}

// GetPrizeByID returns a single prize
func (s *catalogService) GetPrizeByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	return s.prizeRepo.FindByID(ctx, id)
}

// CreatePrize validates and stores a new prize. Category defaults to
// "winning"; quantity -1 means unlimited.
func (s *catalogService) CreatePrize(ctx context.Context, req *models.PrizeRequest) (*models.Prize, error) {
	prize, err := prizeFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		return nil, err
	}
	return prize, nil
}

// UpdatePrize replaces an existing prize's fields
func (s *catalogService) UpdatePrize(ctx context.Context, id primitive.ObjectID, req *models.PrizeRequest) (*models.Prize, error) {
	existing, err := s.prizeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prize, err := prizeFromRequest(req)
	if err != nil {
		return nil, err
	}
	prize.ID = existing.ID
	prize.CreatedAt = existing.CreatedAt

	if err := s.prizeRepo.Update(ctx, prize); err != nil {
		return nil, err
	}
	return prize, nil
}

// DeletePrize removes a prize from the catalog. Coupons bound to it keep
// their dangling reference; redemption rejects them as a binding mismatch.
func (s *catalogService) DeletePrize(ctx context.Context, id primitive.ObjectID) error {
	return s.prizeRepo.Delete(ctx, id)
}

func prizeFromRequest(req *models.PrizeRequest) (*models.Prize, error) {
	if req.Name == "" || req.Quantity == nil {
		return nil, apperrors.ErrInvalidInput
	}

	category := req.Category
	if category == "" {
		category = models.CategoryWinning
	}
	if !models.ValidCategory(category) {
		return nil, apperrors.ErrInvalidInput
	}

	return &models.Prize{
		Name:        req.Name,
		Description: req.Description,
		Quantity:    *req.Quantity,
		Category:    category,
	}, nil
}

// SeedDefaults inserts the campaign's starter catalog when the collection is
// empty, mirroring the wheel the frontend ships with.
func (s *catalogService) SeedDefaults(ctx context.Context) error {
	count, err := s.prizeRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.Prize{
		{Name: "Diskon 10%", Description: "Dapatkan diskon 10% untuk pembelian berikutnya", Quantity: 100, Category: models.CategoryWinning},
		{Name: "Gratis Ongkir", Description: "Gratis ongkos kirim untuk seluruh Indonesia", Quantity: 50, Category: models.CategoryWinning},
		{Name: "Pulsa Rp 5.000", Description: "Pulsa senilai Rp 5.000", Quantity: 30, Category: models.CategoryWinning},
		{Name: "Voucher Rp 25.000", Description: "Voucher belanja senilai Rp 25.000", Quantity: 20, Category: models.CategoryWinning},
		{Name: "Cashback 15%", Description: "Cashback 15% maksimal Rp 50.000", Quantity: 15, Category: models.CategoryWinning},
		{Name: "Hadiah Utama", Description: "Smartphone terbaru", Quantity: 1, Category: models.CategoryWinning},
		{Name: "Coba Lagi", Description: "Belum beruntung, silakan coba lagi", Quantity: models.UnlimitedQuantity, Category: models.CategoryNonWinning},
		{Name: "Zonk", Description: "Maaf, Anda belum beruntung kali ini", Quantity: models.UnlimitedQuantity, Category: models.CategoryNonWinning},
	}

	for i := range defaults {
		if err := s.prizeRepo.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}
	return nil
}
