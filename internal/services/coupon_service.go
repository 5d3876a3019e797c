package services

import (
	"context"

	apperrors "github.com/sekawan78/spinwheel-backend/pkg/errors"

	"github.com/sekawan78/spinwheel-backend/internal/models"
	"github.com/sekawan78/spinwheel-backend/internal/repositories"
	"github.com/sekawan78/spinwheel-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CouponService defines the interface for coupon ledger operations.
// All mutations are operator-facing and only touch unused coupons; the
// used transition itself belongs to the redemption engine.
type CouponService interface {
	GetAllCoupons(ctx context.Context) ([]*models.CouponListItem, error)
	CreateCoupon(ctx context.Context, req *models.CouponRequest) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, id primitive.ObjectID, req *models.CouponRequest) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, id primitive.ObjectID) error
	GenerateCode(ctx context.Context) (string, error)
}

type couponService struct {
	couponRepo repositories.CouponRepository
	prizeRepo  repositories.PrizeRepository
}

// NewCouponService creates a new CouponService implementation
func NewCouponService(couponRepo repositories.CouponRepository, prizeRepo repositories.PrizeRepository) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		prizeRepo:  prizeRepo,
	}
}

// GetAllCoupons returns every coupon joined with its bound prize's name
func (s *couponService) GetAllCoupons(ctx context.Context) ([]*models.CouponListItem, error) {
	coupons, err := s.couponRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	prizes, err := s.prizeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(prizes))
	for _, p := range prizes {
		names[p.ID] = p.Name
	}

	items := make([]*models.CouponListItem, 0, len(coupons))
	for _, c := range coupons {
		item := &models.CouponListItem{Coupon: *c}
		if !c.PrizeID.IsZero() {
			item.PrizeName = names[c.PrizeID]
		}
		items = append(items, item)
	}
	return items, nil
}

// CreateCoupon validates and stores a new unused coupon
func (s *couponService) CreateCoupon(ctx context.Context, req *models.CouponRequest) (*models.Coupon, error) {
	code := utils.NormalizeCode(req.Code)
	if !utils.ValidCouponCode(code) {
		return nil, apperrors.ErrInvalidCodeFormat
	}

	prizeID, err := s.resolvePrizeID(ctx, req.PrizeID)
	if err != nil {
		return nil, err
	}

	coupon := &models.Coupon{
		Code:    code,
		PrizeID: prizeID,
		Used:    false,
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// UpdateCoupon changes an unused coupon's code or prize binding.
// A used coupon is immutable: code, binding and flag may never change.
func (s *couponService) UpdateCoupon(ctx context.Context, id primitive.ObjectID, req *models.CouponRequest) (*models.Coupon, error) {
	existing, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Used {
		return nil, apperrors.ErrCouponUsed
	}

	code := utils.NormalizeCode(req.Code)
	if !utils.ValidCouponCode(code) {
		return nil, apperrors.ErrInvalidCodeFormat
	}

	prizeID, err := s.resolvePrizeID(ctx, req.PrizeID)
	if err != nil {
		return nil, err
	}

	existing.Code = code
	existing.PrizeID = prizeID
	if err := s.couponRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteCoupon removes an unused coupon from the ledger
func (s *couponService) DeleteCoupon(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.Used {
		return apperrors.ErrCouponUsed
	}
	return s.couponRepo.Delete(ctx, id)
}

// GenerateCode produces a random code that is not currently in the ledger.
// The unique index still has the last word if a concurrent create wins.
func (s *couponService) GenerateCode(ctx context.Context) (string, error) {
	for attempts := 0; attempts < 10; attempts++ {
		code, err := utils.GenerateCouponCode()
		if err != nil {
			return "", err
		}
		_, err = s.couponRepo.FindUnusedByCode(ctx, code)
		if err == apperrors.ErrCouponNotFoundOrUsed {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", apperrors.ErrDuplicateCode
}

// resolvePrizeID parses an optional prize hex id and checks the prize exists
func (s *couponService) resolvePrizeID(ctx context.Context, raw string) (primitive.ObjectID, error) {
	if raw == "" {
		return primitive.NilObjectID, nil
	}
	prizeID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrInvalidInput
	}
	if _, err := s.prizeRepo.FindByID(ctx, prizeID); err != nil {
		return primitive.NilObjectID, err
	}
	return prizeID, nil
}
