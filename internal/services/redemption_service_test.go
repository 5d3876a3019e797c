package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	apperrors "github.com/sekawan78/spinwheel-backend/pkg/errors"

	"github.com/sekawan78/spinwheel-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type redemptionFixture struct {
	prizes      *memPrizeRepo
	coupons     *memCouponRepo
	redemptions *memRedemptionRepo
	svc         RedemptionService
}

func newRedemptionFixture() *redemptionFixture {
	prizes := newMemPrizeRepo()
	coupons := newMemCouponRepo()
	redemptions := newMemRedemptionRepo()
	uow := newMemUnitOfWork(coupons, redemptions)
	return &redemptionFixture{
		prizes:      prizes,
		coupons:     coupons,
		redemptions: redemptions,
		svc:         NewRedemptionService(coupons, prizes, redemptions, uow),
	}
}

func (f *redemptionFixture) addPrize(t *testing.T, name, category string) *models.Prize {
	t.Helper()
	prize := &models.Prize{Name: name, Description: name + " description", Quantity: 10, Category: category}
	if err := f.prizes.Create(context.Background(), prize); err != nil {
		t.Fatalf("failed to add prize: %v", err)
	}
	return prize
}

func (f *redemptionFixture) addCoupon(t *testing.T, code string, prizeID primitive.ObjectID) *models.Coupon {
	t.Helper()
	coupon := &models.Coupon{Code: code, PrizeID: prizeID}
	if err := f.coupons.Create(context.Background(), coupon); err != nil {
		t.Fatalf("failed to add coupon: %v", err)
	}
	return coupon
}

func TestRedemptionService_Redeem(t *testing.T) {
	t.Run("successful redemption with bound coupon", func(t *testing.T) {
		f := newRedemptionFixture()
		prize := f.addPrize(t, "Gratis Ongkir", models.CategoryWinning)
		f.addCoupon(t, "AB12C", prize.ID)

		// Lowercase input must normalize to the stored code
		gotPrize, record, err := f.svc.Redeem(context.Background(), "ab12c", "Dewi", "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotPrize.Name != "Gratis Ongkir" {
			t.Errorf("expected prize Gratis Ongkir, got %s", gotPrize.Name)
		}
		if record.PrizeID != prize.ID {
			t.Errorf("record prize id %s does not match bound prize %s", record.PrizeID.Hex(), prize.ID.Hex())
		}
		if record.ParticipantName != "Dewi" {
			t.Errorf("expected participant Dewi, got %s", record.ParticipantName)
		}

		coupon, err := f.coupons.FindByID(context.Background(), record.CouponID)
		if err != nil {
			t.Fatalf("failed to reload coupon: %v", err)
		}
		if !coupon.Used {
			t.Error("expected coupon to be marked used")
		}

		count, _ := f.redemptions.Count(context.Background())
		if count != 1 {
			t.Errorf("expected 1 redemption record, got %d", count)
		}
	})

	t.Run("second redemption of the same code fails", func(t *testing.T) {
		f := newRedemptionFixture()
		prize := f.addPrize(t, "Diskon 10%", models.CategoryWinning)
		f.addCoupon(t, "AB12C", prize.ID)

		if _, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", ""); err != nil {
			t.Fatalf("first redemption failed: %v", err)
		}
		_, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", "")
		if !errors.Is(err, apperrors.ErrCouponNotFoundOrUsed) {
			t.Fatalf("expected ErrCouponNotFoundOrUsed, got %v", err)
		}
	})

	t.Run("unknown code fails with the same error as a used one", func(t *testing.T) {
		f := newRedemptionFixture()
		_, _, err := f.svc.Redeem(context.Background(), "XXXXX", "Budi", "")
		if !errors.Is(err, apperrors.ErrCouponNotFoundOrUsed) {
			t.Fatalf("expected ErrCouponNotFoundOrUsed, got %v", err)
		}
	})

	t.Run("empty participant name is rejected", func(t *testing.T) {
		f := newRedemptionFixture()
		prize := f.addPrize(t, "Zonk", models.CategoryNonWinning)
		f.addCoupon(t, "AB12C", prize.ID)

		_, _, err := f.svc.Redeem(context.Background(), "AB12C", "   ", "")
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("malformed code is rejected before lookup", func(t *testing.T) {
		f := newRedemptionFixture()
		for _, code := range []string{"AB1", "AB12CD", "AB 2C", ""} {
			_, _, err := f.svc.Redeem(context.Background(), code, "Budi", "")
			if !errors.Is(err, apperrors.ErrInvalidInput) {
				t.Errorf("code %q: expected ErrInvalidInput, got %v", code, err)
			}
		}
	})

	t.Run("reported prize name must match the binding", func(t *testing.T) {
		f := newRedemptionFixture()
		cheap := f.addPrize(t, "Coba Lagi", models.CategoryNonWinning)
		f.addPrize(t, "Hadiah Utama", models.CategoryWinning)
		coupon := f.addCoupon(t, "AB12C", cheap.ID)

		_, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", "Hadiah Utama")
		if !errors.Is(err, apperrors.ErrPrizeMismatch) {
			t.Fatalf("expected ErrPrizeMismatch, got %v", err)
		}

		// The coupon must remain consumable
		reloaded, _ := f.coupons.FindByID(context.Background(), coupon.ID)
		if reloaded.Used {
			t.Error("coupon must not be consumed on a mismatch")
		}
		count, _ := f.redemptions.Count(context.Background())
		if count != 0 {
			t.Errorf("expected no redemption records, got %d", count)
		}
	})

	t.Run("matching reported name is accepted", func(t *testing.T) {
		f := newRedemptionFixture()
		prize := f.addPrize(t, "Pulsa Rp 5.000", models.CategoryWinning)
		f.addCoupon(t, "AB12C", prize.ID)

		gotPrize, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", "Pulsa Rp 5.000")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotPrize.ID != prize.ID {
			t.Errorf("expected prize %s, got %s", prize.ID.Hex(), gotPrize.ID.Hex())
		}
	})

	t.Run("unbound coupon resolves by reported name", func(t *testing.T) {
		f := newRedemptionFixture()
		prize := f.addPrize(t, "Voucher Rp 25.000", models.CategoryWinning)
		f.addCoupon(t, "FR33B", primitive.NilObjectID)

		gotPrize, record, err := f.svc.Redeem(context.Background(), "FR33B", "Sari", "Voucher Rp 25.000")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gotPrize.ID != prize.ID || record.PrizeID != prize.ID {
			t.Error("unbound coupon must resolve to the named prize")
		}
	})

	t.Run("unbound coupon with unknown name fails", func(t *testing.T) {
		f := newRedemptionFixture()
		f.addCoupon(t, "FR33B", primitive.NilObjectID)

		_, _, err := f.svc.Redeem(context.Background(), "FR33B", "Sari", "Mobil Baru")
		if !errors.Is(err, apperrors.ErrPrizeMismatch) {
			t.Fatalf("expected ErrPrizeMismatch, got %v", err)
		}
	})

	t.Run("unbound coupon with no name fails", func(t *testing.T) {
		f := newRedemptionFixture()
		f.addCoupon(t, "FR33B", primitive.NilObjectID)

		_, _, err := f.svc.Redeem(context.Background(), "FR33B", "Sari", "")
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("bound prize deleted before redemption fails", func(t *testing.T) {
		f := newRedemptionFixture()
		prize := f.addPrize(t, "Cashback 15%", models.CategoryWinning)
		f.addCoupon(t, "AB12C", prize.ID)
		if err := f.prizes.Delete(context.Background(), prize.ID); err != nil {
			t.Fatalf("failed to delete prize: %v", err)
		}

		_, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", "")
		if !errors.Is(err, apperrors.ErrPrizeMismatch) {
			t.Fatalf("expected ErrPrizeMismatch, got %v", err)
		}
	})
}

func TestRedemptionService_RaceSafety(t *testing.T) {
	f := newRedemptionFixture()
	prize := f.addPrize(t, "Hadiah Utama", models.CategoryWinning)
	f.addCoupon(t, "AB12C", prize.ID)

	const attempts = 50

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, notFound := 0, 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperrors.ErrCouponNotFoundOrUsed):
			notFound++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Errorf("expected exactly 1 successful redemption, got %d", successes)
	}
	if notFound != attempts-1 {
		t.Errorf("expected %d ErrCouponNotFoundOrUsed, got %d", attempts-1, notFound)
	}

	count, _ := f.redemptions.Count(context.Background())
	if count != 1 {
		t.Errorf("expected exactly 1 redemption record, got %d", count)
	}
}

func TestRedemptionService_Atomicity(t *testing.T) {
	f := newRedemptionFixture()
	prize := f.addPrize(t, "Diskon 10%", models.CategoryWinning)
	coupon := f.addCoupon(t, "AB12C", prize.ID)

	// Force the record insert to fail after mark-used succeeds
	f.redemptions.failCreate = errors.New("write concern error")

	_, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", "")
	if err == nil {
		t.Fatal("expected redemption to fail")
	}

	reloaded, err := f.coupons.FindByID(context.Background(), coupon.ID)
	if err != nil {
		t.Fatalf("failed to reload coupon: %v", err)
	}
	if reloaded.Used {
		t.Error("used flag must roll back when the record insert fails")
	}
	count, _ := f.redemptions.Count(context.Background())
	if count != 0 {
		t.Errorf("expected no redemption records, got %d", count)
	}

	// After the failure clears, the coupon is still redeemable
	f.redemptions.failCreate = nil
	if _, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", ""); err != nil {
		t.Fatalf("expected retry to succeed after rollback, got %v", err)
	}
}

func TestRedemptionService_Validate(t *testing.T) {
	t.Run("unused coupon returns the prize hint", func(t *testing.T) {
		f := newRedemptionFixture()
		prize := f.addPrize(t, "Gratis Ongkir", models.CategoryWinning)
		coupon := f.addCoupon(t, "AB12C", prize.ID)

		validation, err := f.svc.Validate(context.Background(), "ab12c")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if validation.CouponID != coupon.ID {
			t.Errorf("expected coupon id %s, got %s", coupon.ID.Hex(), validation.CouponID.Hex())
		}
		if validation.PrizeName != "Gratis Ongkir" {
			t.Errorf("expected prize name Gratis Ongkir, got %s", validation.PrizeName)
		}
		if validation.PrizeDescription == "" {
			t.Error("expected a prize description")
		}
	})

	t.Run("validation never consumes the coupon", func(t *testing.T) {
		f := newRedemptionFixture()
		prize := f.addPrize(t, "Gratis Ongkir", models.CategoryWinning)
		f.addCoupon(t, "AB12C", prize.ID)

		for i := 0; i < 3; i++ {
			if _, err := f.svc.Validate(context.Background(), "AB12C"); err != nil {
				t.Fatalf("validation %d failed: %v", i, err)
			}
		}
		if _, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", ""); err != nil {
			t.Fatalf("redemption after validations failed: %v", err)
		}
	})

	t.Run("used coupon fails validation like an unknown one", func(t *testing.T) {
		f := newRedemptionFixture()
		prize := f.addPrize(t, "Gratis Ongkir", models.CategoryWinning)
		f.addCoupon(t, "AB12C", prize.ID)

		if _, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", ""); err != nil {
			t.Fatalf("redemption failed: %v", err)
		}

		_, usedErr := f.svc.Validate(context.Background(), "AB12C")
		_, unknownErr := f.svc.Validate(context.Background(), "ZZZZZ")
		if !errors.Is(usedErr, apperrors.ErrCouponNotFoundOrUsed) {
			t.Fatalf("expected ErrCouponNotFoundOrUsed for used coupon, got %v", usedErr)
		}
		if !errors.Is(unknownErr, apperrors.ErrCouponNotFoundOrUsed) {
			t.Fatalf("expected ErrCouponNotFoundOrUsed for unknown code, got %v", unknownErr)
		}
	})

	t.Run("malformed code is rejected", func(t *testing.T) {
		f := newRedemptionFixture()
		_, err := f.svc.Validate(context.Background(), "AB")
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestRedemptionService_GetAllRedemptions(t *testing.T) {
	f := newRedemptionFixture()
	prize := f.addPrize(t, "Gratis Ongkir", models.CategoryWinning)
	f.addCoupon(t, "AB12C", prize.ID)

	if _, _, err := f.svc.Redeem(context.Background(), "AB12C", "Dewi", ""); err != nil {
		t.Fatalf("redemption failed: %v", err)
	}

	items, err := f.svc.GetAllRedemptions(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 redemption, got %d", len(items))
	}
	if items[0].PrizeName != "Gratis Ongkir" {
		t.Errorf("expected joined prize name, got %q", items[0].PrizeName)
	}
	if items[0].CouponCode != "AB12C" {
		t.Errorf("expected joined coupon code, got %q", items[0].CouponCode)
	}
}
