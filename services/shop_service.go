package services

import (
	"errors"

	"tricky-turns-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ShopService struct {
	DB *gorm.DB
}

func NewShopService(db *gorm.DB) *ShopService {
	return &ShopService{DB: db}
}

// Buy records a purchase in pending state. Settlement happens out of band:
// the purchase verification worker checks the transaction against the Pi
// platform and flips the status.
func (s *ShopService) Buy(ownerID string, itemID uint, amount float64, txHash string) (*models.Purchase, error) {
	var item models.ShopItem
	if err := s.DB.Where("id = ? AND is_active = ?", itemID, true).First(&item).Error; err != nil {
		return nil, err
	}

	purchase := models.Purchase{
		OwnerID: ownerID,
		ItemID:  itemID,
		Amount:  amount,
		TxHash:  txHash,
		Status:  models.PurchaseStatusPending,
	}
	if err := s.DB.Create(&purchase).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ---- HTTP handlers ----

type shopBuyRequest struct {
	ItemID uint    `json:"item_id" validate:"required"`
	Amount float64 `json:"amount" validate:"min=0"`
	TxHash string  `json:"tx_hash" validate:"max=128"`
}

// ListItems handles GET /shop/items (public).
func (s *ShopService) ListItems(c *fiber.Ctx) error {
	var items []models.ShopItem
	if err := s.DB.Where("is_active = ?", true).Order("id ASC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load shop items"})
	}
	return c.JSON(items)
}

// BuyItem handles POST /shop/buy (auth required).
func (s *ShopService) BuyItem(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	var req shopBuyRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	if _, err := s.Buy(ownerID, req.ItemID, req.Amount, req.TxHash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "shop item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record purchase"})
	}
	return c.JSON(fiber.Map{"message": "Purchase recorded (pending verification)"})
}

// ListMyPurchases handles GET /purchases (auth required).
func (s *ShopService) ListMyPurchases(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	var purchases []models.Purchase
	if err := s.DB.Where("owner_id = ?", ownerID).Order("purchased_at DESC").Find(&purchases).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load purchases"})
	}
	return c.JSON(purchases)
}
