package services

import (
	"tricky-turns-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogService serves the read-only player-facing catalogs: game modes
// and feature toggles. Players only ever see the active/enabled subset.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ListModes handles GET /modes (public).
func (s *CatalogService) ListModes(c *fiber.Ctx) error {
	var modes []models.GameMode
	if err := s.DB.Where("is_active = ?", true).Order("id ASC").Find(&modes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load game modes"})
	}
	return c.JSON(modes)
}

// ListFeatureToggles handles GET /feature_toggles (public).
func (s *CatalogService) ListFeatureToggles(c *fiber.Ctx) error {
	var toggles []models.FeatureToggle
	if err := s.DB.Where("enabled = ?", true).Order("id ASC").Find(&toggles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load feature toggles"})
	}
	return c.JSON(toggles)
}
