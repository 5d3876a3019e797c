package services

import (
	"context"
	"sync"

	apperrors "github.com/sekawan78/spinwheel-backend/pkg/errors"

	"github.com/sekawan78/spinwheel-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories with the same atomic semantics as the MongoDB
// implementations, so the redemption engine's guarantees can be exercised
// without a database.

type memPrizeRepo struct {
	mu     sync.Mutex
	prizes []*models.Prize
}

func newMemPrizeRepo() *memPrizeRepo {
	return &memPrizeRepo{}
}

func (r *memPrizeRepo) Create(ctx context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prize.ID.IsZero() {
		prize.ID = primitive.NewObjectID()
	}
	cp := *prize
	r.prizes = append(r.prizes, &cp)
	return nil
}

func (r *memPrizeRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prizes {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memPrizeRepo) FindByName(ctx context.Context, name string) (*models.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prizes {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memPrizeRepo) FindAll(ctx context.Context) ([]*models.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Prize, 0, len(r.prizes))
	for _, p := range r.prizes {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPrizeRepo) Update(ctx context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.prizes {
		if p.ID == prize.ID {
			cp := *prize
			r.prizes[i] = &cp
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memPrizeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.prizes {
		if p.ID == id {
			r.prizes = append(r.prizes[:i], r.prizes[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memPrizeRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.prizes)), nil
}

type memCouponRepo struct {
	mu      sync.Mutex
	coupons []*models.Coupon
}

func newMemCouponRepo() *memCouponRepo {
	return &memCouponRepo{}
}

func (r *memCouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.Code == coupon.Code {
			return apperrors.ErrDuplicateCode
		}
	}
	if coupon.ID.IsZero() {
		coupon.ID = primitive.NewObjectID()
	}
	cp := *coupon
	r.coupons = append(r.coupons, &cp)
	return nil
}

func (r *memCouponRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memCouponRepo) FindUnusedByCode(ctx context.Context, code string) (*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.Code == code && !c.Used {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrCouponNotFoundOrUsed
}

func (r *memCouponRepo) FindAll(ctx context.Context) ([]*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memCouponRepo) Update(ctx context.Context, coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.Code == coupon.Code && c.ID != coupon.ID {
			return apperrors.ErrDuplicateCode
		}
	}
	for i, c := range r.coupons {
		if c.ID == coupon.ID {
			cp := *coupon
			r.coupons[i] = &cp
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memCouponRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.coupons {
		if c.ID == id {
			r.coupons = append(r.coupons[:i], r.coupons[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// MarkUsed is a compare-and-set under the repository lock, matching the
// conditional update the MongoDB implementation performs.
func (r *memCouponRepo) MarkUsed(ctx context.Context, code string) (*models.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.Code == code && !c.Used {
			c.Used = true
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrCouponNotFoundOrUsed
}

func (r *memCouponRepo) setUsed(id primitive.ObjectID, used bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.coupons {
		if c.ID == id {
			c.Used = used
		}
	}
}

func (r *memCouponRepo) usedFlags() map[primitive.ObjectID]bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	flags := make(map[primitive.ObjectID]bool, len(r.coupons))
	for _, c := range r.coupons {
		flags[c.ID] = c.Used
	}
	return flags
}

type memRedemptionRepo struct {
	mu         sync.Mutex
	records    []*models.Redemption
	failCreate error
}

func newMemRedemptionRepo() *memRedemptionRepo {
	return &memRedemptionRepo{}
}

func (r *memRedemptionRepo) Create(ctx context.Context, redemption *models.Redemption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	if redemption.ID.IsZero() {
		redemption.ID = primitive.NewObjectID()
	}
	cp := *redemption
	r.records = append(r.records, &cp)
	return nil
}

func (r *memRedemptionRepo) FindAll(ctx context.Context) ([]*models.Redemption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Redemption, 0, len(r.records))
	for _, rec := range r.records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memRedemptionRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

// memUnitOfWork serializes transactions and restores the pre-transaction
// state when fn fails, the way an aborted MongoDB session does.
type memUnitOfWork struct {
	mu          sync.Mutex
	coupons     *memCouponRepo
	redemptions *memRedemptionRepo
}

func newMemUnitOfWork(coupons *memCouponRepo, redemptions *memRedemptionRepo) *memUnitOfWork {
	return &memUnitOfWork{
		coupons:     coupons,
		redemptions: redemptions,
	}
}

func (u *memUnitOfWork) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	usedBefore := u.coupons.usedFlags()
	u.redemptions.mu.Lock()
	recordsBefore := len(u.redemptions.records)
	u.redemptions.mu.Unlock()

	if err := fn(ctx); err != nil {
		for id, used := range usedBefore {
			u.coupons.setUsed(id, used)
		}
		u.redemptions.mu.Lock()
		u.redemptions.records = u.redemptions.records[:recordsBefore]
		u.redemptions.mu.Unlock()
		return err
	}
	return nil
}
