package services

import (
	"errors"
	"testing"

	"tricky-turns-backend/models"
)

func TestPromoRedeemCountsUses(t *testing.T) {
	db := openTestDB(t)
	s := NewPromoService(db)

	db.Create(&models.PromoCode{Code: "WELCOME", Reward: "100 coins", MaxUses: 2, IsActive: true})

	promo, err := s.Redeem("WELCOME")
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if promo.Uses != 1 {
		t.Fatalf("expected 1 use, got %d", promo.Uses)
	}
	if promo.Reward != "100 coins" {
		t.Fatalf("unexpected reward %q", promo.Reward)
	}
}

func TestPromoRedeemExhausts(t *testing.T) {
	db := openTestDB(t)
	s := NewPromoService(db)

	db.Create(&models.PromoCode{Code: "ONCE", MaxUses: 1, IsActive: true})

	if _, err := s.Redeem("ONCE"); err != nil {
		t.Fatalf("first redeem failed: %v", err)
	}
	if _, err := s.Redeem("ONCE"); !errors.Is(err, ErrPromoExhausted) {
		t.Fatalf("expected ErrPromoExhausted, got %v", err)
	}
}

func TestPromoRedeemUnlimitedWhenMaxUsesZero(t *testing.T) {
	db := openTestDB(t)
	s := NewPromoService(db)

	db.Create(&models.PromoCode{Code: "FOREVER", MaxUses: 0, IsActive: true})

	for i := 0; i < 5; i++ {
		if _, err := s.Redeem("FOREVER"); err != nil {
			t.Fatalf("redeem %d failed: %v", i, err)
		}
	}
}

func TestPromoRedeemRejectsUnknownAndInactive(t *testing.T) {
	db := openTestDB(t)
	s := NewPromoService(db)

	db.Create(&models.PromoCode{Code: "DISABLED", IsActive: false})

	if _, err := s.Redeem("NOPE"); !errors.Is(err, ErrPromoNotFound) {
		t.Fatalf("expected ErrPromoNotFound for unknown code, got %v", err)
	}
	if _, err := s.Redeem("DISABLED"); !errors.Is(err, ErrPromoNotFound) {
		t.Fatalf("expected ErrPromoNotFound for inactive code, got %v", err)
	}
}
