package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Redemption is the historical fact that a participant consumed a coupon
// and was assigned a prize. Records are immutable and never deleted.
type Redemption struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ParticipantName string             `bson:"participantName" json:"participantName"`
	PrizeID         primitive.ObjectID `bson:"prizeId" json:"prizeId"`
	CouponID        primitive.ObjectID `bson:"couponId" json:"couponId"`
	RedeemedAt      time.Time          `bson:"redeemedAt" json:"redeemedAt"`
}

// SpinRequest is the participant payload for a redemption attempt.
// PrizeName is the prize the presentation layer is about to reveal; the
// engine only accepts it as a consistency check against the coupon binding.
type SpinRequest struct {
	ParticipantName string `json:"participantName" binding:"required"`
	CouponCode      string `json:"couponCode" binding:"required"`
	PrizeName       string `json:"prizeName"`
}

// SpinResult is what the presentation layer renders after a successful spin.
type SpinResult struct {
	PrizeName        string `json:"prizeName"`
	PrizeDescription string `json:"prizeDescription"`
	Category         string `json:"category"`
}

// RedemptionListItem is a redemption joined with prize and coupon display
// fields for the operator's history view.
type RedemptionListItem struct {
	Redemption `bson:",inline"`
	PrizeName  string `json:"prizeName,omitempty"`
	CouponCode string `json:"couponCode,omitempty"`
}
