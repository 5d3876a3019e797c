package errors

import "errors"

// Domain errors for the spin-wheel promotion.
var (
	// ErrInvalidInput is returned when a redemption request carries a
	// malformed code or an empty participant name.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCodeFormat is returned when a coupon code is not exactly
	// 5 uppercase alphanumeric characters.
	ErrInvalidCodeFormat = errors.New("coupon code must be 5 alphanumeric characters")

	// ErrDuplicateCode is returned when a coupon code collides with an
	// existing coupon, used or not.
	ErrDuplicateCode = errors.New("coupon code already exists")

	// ErrCouponNotFoundOrUsed deliberately conflates "no such code" and
	// "already consumed" so callers cannot probe which codes exist.
	ErrCouponNotFoundOrUsed = errors.New("coupon not found or already used")

	// ErrCouponUsed guards operator edits: a used coupon is immutable.
	ErrCouponUsed = errors.New("coupon already used and cannot be modified")

	// ErrPrizeMismatch is returned when the prize reported by the client
	// does not match the prize the coupon is bound to.
	ErrPrizeMismatch = errors.New("prize does not match coupon binding")

	// ErrNotFound is the operator-facing error for edits on unknown ids.
	ErrNotFound = errors.New("record not found")
)
