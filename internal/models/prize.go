package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Prize categories. A "non-winning" prize is a try-again slot on the wheel.
const (
	CategoryWinning    = "winning"
	CategoryNonWinning = "non-winning"
)

// UnlimitedQuantity is the sentinel for a prize with no stock limit.
const UnlimitedQuantity = -1

// Prize represents a catalog entry the wheel can land on.
// Quantity is informational only: no redemption path decrements it.
type Prize struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	Category    string             `bson:"category" json:"category"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidCategory reports whether c is one of the known prize categories.
func ValidCategory(c string) bool {
	return c == CategoryWinning || c == CategoryNonWinning
}

// PrizeRequest is the operator payload for creating or updating a prize.
type PrizeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Quantity    *int   `json:"quantity" binding:"required"`
	Category    string `json:"category"`
}
