package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon is a single-use access code, optionally pre-bound to a prize.
// A zero PrizeID means the coupon is unbound and the prize is resolved
// by name at redemption time.
type Coupon struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code      string             `bson:"code" json:"code"`
	PrizeID   primitive.ObjectID `bson:"prizeId,omitempty" json:"prizeId,omitempty"`
	Used      bool               `bson:"used" json:"used"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CouponRequest is the operator payload for creating or updating a coupon.
// PrizeID is the hex id of the bound prize, or empty for an unbound coupon.
type CouponRequest struct {
	Code    string `json:"code" binding:"required"`
	PrizeID string `json:"prizeId"`
}

// CouponListItem is a coupon joined with its bound prize's display name,
// as shown in the operator's coupon table.
type CouponListItem struct {
	Coupon    `bson:",inline"`
	PrizeName string `json:"prizeName,omitempty"`
}

// CouponValidation is the read-only probe result returned before the wheel
// animation commits to an outcome.
type CouponValidation struct {
	CouponID         primitive.ObjectID `json:"couponId"`
	Code             string             `json:"code"`
	PrizeID          primitive.ObjectID `json:"prizeId,omitempty"`
	PrizeName        string             `json:"prizeName,omitempty"`
	PrizeDescription string             `json:"prizeDescription,omitempty"`
}
