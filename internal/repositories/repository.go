package repositories

import (
	"context"

	"github.com/sekawan78/spinwheel-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PrizeRepository defines the interface for prize catalog data operations
type PrizeRepository interface {
	Create(ctx context.Context, prize *models.Prize) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Prize, error)
	FindByName(ctx context.Context, name string) (*models.Prize, error)
	FindAll(ctx context.Context) ([]*models.Prize, error)
	Update(ctx context.Context, prize *models.Prize) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// CouponRepository defines the interface for coupon ledger data operations.
// MarkUsed is the atomic conditional transition that serializes racing
// redemptions: it matches only an unused coupon with the given code, so of
// N concurrent attempts exactly one can observe a match.
type CouponRepository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error)
	FindUnusedByCode(ctx context.Context, code string) (*models.Coupon, error)
	FindAll(ctx context.Context) ([]*models.Coupon, error)
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	MarkUsed(ctx context.Context, code string) (*models.Coupon, error)
}

// RedemptionRepository defines the interface for redemption records.
// Records are append-only: there is no update or delete.
type RedemptionRepository interface {
	Create(ctx context.Context, redemption *models.Redemption) error
	FindAll(ctx context.Context) ([]*models.Redemption, error)
	Count(ctx context.Context) (int64, error)
}

// UnitOfWork executes fn atomically: either every store operation performed
// with the context passed to fn is committed, or none are.
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
