package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the MongoDB client with a controlled lifecycle: opened once
// at startup, passed by reference to repositories, closed at shutdown.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects to MongoDB and verifies the connection
func NewClient(uri string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &Client{
		client: client,
	}, nil
}

// Database returns a database handle
func (c *Client) Database(name string) *mongo.Database {
	if c.db == nil || c.db.Name() != name {
		c.db = c.client.Database(name)
	}
	return c.db
}

// EnsureIndexes creates the indexes the redemption invariants rely on.
// The unique index on coupons.code is the uniqueness guard for coupon
// codes across used and unused coupons alike.
func (c *Client) EnsureIndexes(ctx context.Context, dbName string) error {
	db := c.Database(dbName)

	coupons := db.Collection("coupons")
	codeIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("coupon_code_unique"),
	}
	if _, err := coupons.Indexes().CreateOne(ctx, codeIndex); err != nil {
		return err
	}

	redemptions := db.Collection("redemptions")
	couponIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "couponId", Value: 1}},
		Options: options.Index().SetName("redemption_coupon_index"),
	}
	if _, err := redemptions.Indexes().CreateOne(ctx, couponIndex); err != nil {
		return err
	}

	return nil
}

// Disconnect disconnects from MongoDB
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
