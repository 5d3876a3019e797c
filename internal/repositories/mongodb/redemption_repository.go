package mongodb

import (
	"context"
	"time"

	"github.com/sekawan78/spinwheel-backend/internal/models"
	"github.com/sekawan78/spinwheel-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RedemptionRepository implements the repositories.RedemptionRepository interface
type RedemptionRepository struct {
	collection *mongo.Collection
}

// NewRedemptionRepository creates a new RedemptionRepository
func NewRedemptionRepository(db *mongo.Database) repositories.RedemptionRepository {
	return &RedemptionRepository{
		collection: db.Collection("redemptions"),
	}
}

// Create inserts a redemption record. Records are immutable once written.
func (r *RedemptionRepository) Create(ctx context.Context, redemption *models.Redemption) error {
	if redemption.RedeemedAt.IsZero() {
		redemption.RedeemedAt = time.Now()
	}
	result, err := r.collection.InsertOne(ctx, redemption)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		redemption.ID = id
	}
	return nil
}

// FindAll returns all redemption records, newest first
func (r *RedemptionRepository) FindAll(ctx context.Context) ([]*models.Redemption, error) {
	opts := options.Find().SetSort(bson.M{"redeemedAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var redemptions []*models.Redemption
	if err := cursor.All(ctx, &redemptions); err != nil {
		return nil, err
	}
	return redemptions, nil
}

// Count counts all redemption records
func (r *RedemptionRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
