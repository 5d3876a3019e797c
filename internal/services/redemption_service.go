package services

import (
	"context"
	"log"
	"strings"
	"time"

	apperrors "github.com/sekawan78/spinwheel-backend/pkg/errors"

	"github.com/sekawan78/spinwheel-backend/internal/models"
	"github.com/sekawan78/spinwheel-backend/internal/repositories"
	"github.com/sekawan78/spinwheel-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedemptionService is the redemption engine: it validates a coupon code,
// resolves the authoritative prize, and consumes the coupon atomically.
type RedemptionService interface {
	// Redeem consumes the coupon and records the outcome. reportedPrizeName
	// is what the wheel claims to have landed on; for a bound coupon it is
	// only a consistency check, never the source of truth.
	Redeem(ctx context.Context, code, participantName, reportedPrizeName string) (*models.Prize, *models.Redemption, error)

	// Validate is the read-only probe the frontend calls before animating.
	// It uses the same lookup predicate as Redeem and never mutates state.
	Validate(ctx context.Context, code string) (*models.CouponValidation, error)

	// GetAllRedemptions returns the operator's redemption history view.
	GetAllRedemptions(ctx context.Context) ([]*models.RedemptionListItem, error)
}

type redemptionService struct {
	couponRepo     repositories.CouponRepository
	prizeRepo      repositories.PrizeRepository
	redemptionRepo repositories.RedemptionRepository
	uow            repositories.UnitOfWork
}

// NewRedemptionService creates a new RedemptionService implementation
func NewRedemptionService(
	couponRepo repositories.CouponRepository,
	prizeRepo repositories.PrizeRepository,
	redemptionRepo repositories.RedemptionRepository,
	uow repositories.UnitOfWork,
) RedemptionService {
	return &redemptionService{
		couponRepo:     couponRepo,
		prizeRepo:      prizeRepo,
		redemptionRepo: redemptionRepo,
		uow:            uow,
	}
}

// Redeem executes the redemption sequence. Every error is terminal for this
// attempt: retrying cannot succeed for a consumed code, and retrying a
// storage failure without re-running the full check risks double redemption.
func (s *redemptionService) Redeem(ctx context.Context, code, participantName, reportedPrizeName string) (*models.Prize, *models.Redemption, error) {
	code = utils.NormalizeCode(code)
	participantName = strings.TrimSpace(participantName)
	if participantName == "" || !utils.ValidCouponCode(code) {
		return nil, nil, apperrors.ErrInvalidInput
	}

	coupon, err := s.couponRepo.FindUnusedByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}

	prize, err := s.resolvePrize(ctx, coupon, reportedPrizeName)
	if err != nil {
		return nil, nil, err
	}

	redemption := &models.Redemption{
		ParticipantName: participantName,
		PrizeID:         prize.ID,
		CouponID:        coupon.ID,
		RedeemedAt:      time.Now(),
	}

	// Mark-used and record-insert must land together. MarkUsed re-checks
	// used=false inside the transaction, so a race on the same code leaves
	// exactly one winner; the loser aborts here with the same error a stale
	// code would produce. If the insert fails the transaction rolls the
	// used flag back: a used-but-unrecorded coupon must never be observable.
	err = s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		marked, err := s.couponRepo.MarkUsed(txCtx, code)
		if err != nil {
			return err
		}
		if !marked.PrizeID.IsZero() && marked.PrizeID != prize.ID {
			// The binding changed between lookup and consumption.
			return apperrors.ErrPrizeMismatch
		}
		redemption.CouponID = marked.ID
		return s.redemptionRepo.Create(txCtx, redemption)
	})
	if err != nil {
		if err == apperrors.ErrPrizeMismatch {
			log.Printf("[WARN] redemption rejected for code %s: reported prize %q does not match binding", code, reportedPrizeName)
		}
		return nil, nil, err
	}

	return prize, redemption, nil
}

// resolvePrize returns the authoritative prize for a coupon. A bound coupon
// resolves through its binding, and a differing reported name is rejected: a
// participant-supplied name can never redirect the outcome to a richer gift.
// An unbound coupon resolves strictly by the reported display name.
func (s *redemptionService) resolvePrize(ctx context.Context, coupon *models.Coupon, reportedPrizeName string) (*models.Prize, error) {
	if !coupon.PrizeID.IsZero() {
		prize, err := s.prizeRepo.FindByID(ctx, coupon.PrizeID)
		if err != nil {
			if err == apperrors.ErrNotFound {
				// The bound prize was deleted out from under the coupon.
				log.Printf("[WARN] coupon %s bound to missing prize %s", coupon.Code, coupon.PrizeID.Hex())
				return nil, apperrors.ErrPrizeMismatch
			}
			return nil, err
		}
		if reportedPrizeName != "" && reportedPrizeName != prize.Name {
			return nil, apperrors.ErrPrizeMismatch
		}
		return prize, nil
	}

	if reportedPrizeName == "" {
		return nil, apperrors.ErrInvalidInput
	}
	prize, err := s.prizeRepo.FindByName(ctx, reportedPrizeName)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return nil, apperrors.ErrPrizeMismatch
		}
		return nil, err
	}
	return prize, nil
}

// Validate looks up an unused coupon and its bound prize's display fields.
// A successful validation can still be followed by a redemption failure, but
// only under a genuine race on the same code.
func (s *redemptionService) Validate(ctx context.Context, code string) (*models.CouponValidation, error) {
	code = utils.NormalizeCode(code)
	if !utils.ValidCouponCode(code) {
		return nil, apperrors.ErrInvalidInput
	}

	coupon, err := s.couponRepo.FindUnusedByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	validation := &models.CouponValidation{
		CouponID: coupon.ID,
		Code:     coupon.Code,
		PrizeID:  coupon.PrizeID,
	}
	if !coupon.PrizeID.IsZero() {
		prize, err := s.prizeRepo.FindByID(ctx, coupon.PrizeID)
		if err != nil && err != apperrors.ErrNotFound {
			return nil, err
		}
		if prize != nil {
			validation.PrizeName = prize.Name
			validation.PrizeDescription = prize.Description
		}
	}
	return validation, nil
}

// GetAllRedemptions joins records with prize names and coupon codes
func (s *redemptionService) GetAllRedemptions(ctx context.Context) ([]*models.RedemptionListItem, error) {
	redemptions, err := s.redemptionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	prizes, err := s.prizeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	prizeNames := make(map[primitive.ObjectID]string, len(prizes))
	for _, p := range prizes {
		prizeNames[p.ID] = p.Name
	}

	coupons, err := s.couponRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	couponCodes := make(map[primitive.ObjectID]string, len(coupons))
	for _, c := range coupons {
		couponCodes[c.ID] = c.Code
	}

	items := make([]*models.RedemptionListItem, 0, len(redemptions))
	for _, r := range redemptions {
		items = append(items, &models.RedemptionListItem{
			Redemption: *r,
			PrizeName:  prizeNames[r.PrizeID],
			CouponCode: couponCodes[r.CouponID],
		})
	}
	return items, nil
}
