package services

import (
	"errors"

	"tricky-turns-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	// ErrPromoNotFound covers unknown and deactivated codes alike.
	ErrPromoNotFound = errors.New("promo code not found")
	// ErrPromoExhausted means the code exists but its use cap is spent.
	ErrPromoExhausted = errors.New("promo code has no uses left")
)

type PromoService struct {
	DB *gorm.DB
}

func NewPromoService(db *gorm.DB) *PromoService {
	return &PromoService{DB: db}
}

// Redeem consumes one use of a promo code. The increment is a single
// conditional UPDATE checked by affected rows, so two concurrent redeems of
// the last remaining use cannot both succeed.
func (s *PromoService) Redeem(code string) (*models.PromoCode, error) {
	res := s.DB.Model(&models.PromoCode{}).
		Where("code = ? AND is_active = ? AND (max_uses = 0 OR uses < max_uses)", code, true).
		Update("uses", gorm.Expr("uses + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish exhausted from unknown for the caller's error message.
		var existing models.PromoCode
		if err := s.DB.Where("code = ? AND is_active = ?", code, true).First(&existing).Error; err == nil {
			return nil, ErrPromoExhausted
		}
		return nil, ErrPromoNotFound
	}

	var promo models.PromoCode
	if err := s.DB.Where("code = ?", code).First(&promo).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

// ---- HTTP handlers ----

type promoRedeemRequest struct {
	Code string `json:"code" validate:"required,max=64"`
}

// RedeemCode handles POST /promo/redeem (auth required).
func (s *PromoService) RedeemCode(c *fiber.Ctx) error {
	var req promoRedeemRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	promo, err := s.Redeem(req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrPromoNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrPromoExhausted):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to redeem promo code"})
		}
	}
	return c.JSON(fiber.Map{"message": "Promo code redeemed", "reward": promo.Reward})
}
