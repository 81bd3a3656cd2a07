package services

import (
	"errors"
	"strconv"
	"time"

	"tricky-turns-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContestService struct {
	DB *gorm.DB
}

func NewContestService(db *gorm.DB) *ContestService {
	return &ContestService{DB: db}
}

// Enter records a contest entry. Only contests currently inside their
// start/end window and marked active accept entries.
func (s *ContestService) Enter(contestID uint, ownerID, sessionID string, score int64) error {
	now := time.Now().UTC()
	var contest models.Contest
	err := s.DB.Where("id = ? AND status = ? AND start_at <= ? AND end_at >= ?",
		contestID, models.ContestStatusActive, now, now).First(&contest).Error
	if err != nil {
		return err
	}

	entry := models.ContestEntry{
		ContestID: contestID,
		OwnerID:   ownerID,
		SessionID: sessionID,
		Score:     score,
	}
	return s.DB.Create(&entry).Error
}

// ---- HTTP handlers ----

type contestEntryRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Score     int64  `json:"score" validate:"min=0"`
}

// ListActive handles GET /contests/active (public).
func (s *ContestService) ListActive(c *fiber.Ctx) error {
	now := time.Now().UTC()
	var contests []models.Contest
	err := s.DB.Where("status = ? AND start_at <= ? AND end_at >= ?",
		models.ContestStatusActive, now, now).Find(&contests).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load contests"})
	}
	return c.JSON(contests)
}

// EnterContest handles POST /contests/:id/enter (auth required).
func (s *ContestService) EnterContest(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	contestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || contestID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid contest id"})
	}

	var req contestEntryRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	if err := s.Enter(uint(contestID), ownerID, req.SessionID, req.Score); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "contest not found or not active"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to submit contest entry"})
	}
	return c.JSON(fiber.Map{"message": "Contest entry submitted"})
}

// ContestLeaderboard handles GET /contests/:id/leaderboard?top= (public).
func (s *ContestService) ContestLeaderboard(c *fiber.Ctx) error {
	contestID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || contestID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid contest id"})
	}
	top, _ := strconv.Atoi(c.Query("top", "100"))
	if top <= 0 || top > 500 {
		top = 100
	}

	var entries []models.ContestEntry
	err = s.DB.Where("contest_id = ?", contestID).
		Order("score DESC, entered_at ASC").
		Limit(top).
		Find(&entries).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load contest leaderboard"})
	}
	return c.JSON(entries)
}
