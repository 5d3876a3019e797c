package mongodb

import (
	"context"
	"time"

	apperrors "github.com/sekawan78/spinwheel-backend/pkg/errors"

	"github.com/sekawan78/spinwheel-backend/internal/models"
	"github.com/sekawan78/spinwheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CouponRepository implements the repositories.CouponRepository interface
type CouponRepository struct {
	collection *mongo.Collection
}

// NewCouponRepository creates a new CouponRepository
func NewCouponRepository(db *mongo.Database) repositories.CouponRepository {
	return &CouponRepository{
		collection: db.Collection("coupons"),
	}
}

// Create creates a new unused coupon. The unique index on code turns a
// collision with any existing coupon, used or not, into ErrDuplicateCode.
func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	coupon.CreatedAt = time.Now()
	coupon.UpdatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicateCode
		}
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = id
	}
	return nil
}

// FindByID finds a coupon by ID
func (r *CouponRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// FindUnusedByCode finds an unused coupon by its exact code. Used coupons and
// unknown codes are indistinguishable to the caller: both yield
// ErrCouponNotFoundOrUsed. This is the lookup predicate shared by the
// validation probe and the redemption transaction.
func (r *CouponRepository) FindUnusedByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.collection.FindOne(ctx, bson.M{"code": code, "used": false}).Decode(&coupon)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrCouponNotFoundOrUsed
		}
		return nil, err
	}
	return &coupon, nil
}

// FindAll returns all coupons in insertion order
func (r *CouponRepository) FindAll(ctx context.Context) ([]*models.Coupon, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coupons []*models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

// Update replaces a coupon's code and prize binding
func (r *CouponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	coupon.UpdatedAt = time.Now()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": coupon.ID}, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicateCode
		}
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete deletes a coupon
func (r *CouponRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkUsed atomically flips used from false to true for the given code and
// returns the coupon as it was after the transition. The filter matches only
// an unused coupon, so when two redemptions race on the same code the second
// matches zero documents and re-derives ErrCouponNotFoundOrUsed rather than
// assuming success.
func (r *CouponRepository) MarkUsed(ctx context.Context, code string) (*models.Coupon, error) {
	result := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"code": code, "used": false},
		bson.M{"$set": bson.M{"used": true, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var coupon models.Coupon
	if err := result.Decode(&coupon); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrCouponNotFoundOrUsed
		}
		return nil, err
	}
	return &coupon, nil
}
