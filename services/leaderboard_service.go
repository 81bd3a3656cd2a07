package services

import (
	"errors"
	"log"
	"strconv"
	"time"

	"tricky-turns-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidScore rejects submissions before they touch storage.
var ErrInvalidScore = errors.New("score must be zero or positive")

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// RankResult is the caller's standing in one mode.
type RankResult struct {
	Rank  int64 `json:"rank"`
	Score int64 `json:"score"`
}

// SubmitScore appends a history entry and raises the best score if beaten.
// The upsert is a single INSERT ... ON CONFLICT DO UPDATE ... WHERE
// score < excluded.score, so concurrent submissions for the same
// (owner, mode) serialize in the database and a lower score can never
// overwrite a higher one. Ties do not touch achieved_at.
func (s *LeaderboardService) SubmitScore(ownerID string, modeID uint, score int64, sessionID, ipAddress, deviceInfo string) error {
	if score < 0 {
		return ErrInvalidScore
	}

	now := time.Now().UTC()
	return s.DB.Transaction(func(tx *gorm.DB) error {
		history := models.ScoreHistory{
			OwnerID:    ownerID,
			ModeID:     modeID,
			Score:      score,
			SessionID:  sessionID,
			IPAddress:  ipAddress,
			DeviceInfo: deviceInfo,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}

		best := models.LeaderboardScore{
			OwnerID:    ownerID,
			ModeID:     modeID,
			Score:      score,
			AchievedAt: now,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}, {Name: "mode_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":       gorm.Expr("excluded.score"),
				"achieved_at": gorm.Expr("excluded.achieved_at"),
			}),
			Where: clause.Where{Exprs: []clause.Expression{
				gorm.Expr("leaderboard_scores.score < excluded.score"),
			}},
		}).Create(&best).Error
	})
}

// BestScore returns the caller's best-score row for a mode, or
// gorm.ErrRecordNotFound if they have never scored in it.
func (s *LeaderboardService) BestScore(ownerID string, modeID uint) (*models.LeaderboardScore, error) {
	var entry models.LeaderboardScore
	err := s.DB.Where("owner_id = ? AND mode_id = ?", ownerID, modeID).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Rank is 1 + count of best-score rows in the mode with a strictly greater
// score. Equal top scores each compute rank 1; the ranking is not dense.
func (s *LeaderboardService) Rank(ownerID string, modeID uint) (*RankResult, error) {
	entry, err := s.BestScore(ownerID, modeID)
	if err != nil {
		return nil, err
	}

	var above int64
	err = s.DB.Model(&models.LeaderboardScore{}).
		Where("mode_id = ? AND score > ?", modeID, entry.Score).
		Count(&above).Error
	if err != nil {
		return nil, err
	}
	return &RankResult{Rank: above + 1, Score: entry.Score}, nil
}

// LeaderboardEntry is one leaderboard row with the player's display name
// joined in. Username is presentation only; owner_id stays the key.
type LeaderboardEntry struct {
	OwnerID    string    `json:"owner_id"`
	Username   string    `json:"username,omitempty"`
	ModeID     uint      `json:"mode_id"`
	Score      int64     `json:"score"`
	AchievedAt time.Time `json:"achieved_at"`
}

// TopScores lists the mode's leaderboard, score descending with achieved_at
// ascending as the tie-break (earlier achievement ranks first), so the
// ordering is deterministic.
func (s *LeaderboardService) TopScores(modeID uint, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var entries []LeaderboardEntry
	err := s.DB.Model(&models.LeaderboardScore{}).
		Select("leaderboard_scores.owner_id, users.username AS username, leaderboard_scores.mode_id, leaderboard_scores.score, leaderboard_scores.achieved_at").
		Joins("LEFT JOIN users ON users.owner_id = leaderboard_scores.owner_id").
		Where("leaderboard_scores.mode_id = ?", modeID).
		Order("leaderboard_scores.score DESC, leaderboard_scores.achieved_at ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// History lists the caller's own submission attempts, newest first.
func (s *LeaderboardService) History(ownerID string, modeID uint, limit int) ([]models.ScoreHistory, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	q := s.DB.Where("owner_id = ?", ownerID)
	if modeID != 0 {
		q = q.Where("mode_id = ?", modeID)
	}
	var entries []models.ScoreHistory
	err := q.Order("submitted_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// WipeAll deletes every best-score row. History is untouched. Destructive:
// only reachable through the admin console.
func (s *LeaderboardService) WipeAll() error {
	return s.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.LeaderboardScore{}).Error
}

// ---- HTTP handlers ----

type scoreSubmitRequest struct {
	ModeID    uint   `json:"mode_id" validate:"required"`
	Score     int64  `json:"score" validate:"min=0"`
	SessionID string `json:"session_id" validate:"required"`
}

// GetLeaderboard handles GET /leaderboard?mode_id=&top= (public).
func (s *LeaderboardService) GetLeaderboard(c *fiber.Ctx) error {
	modeID, err := strconv.ParseUint(c.Query("mode_id"), 10, 32)
	if err != nil || modeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mode_id query parameter is required"})
	}
	top, _ := strconv.Atoi(c.Query("top", "100"))

	entries, err := s.TopScores(uint(modeID), top)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load leaderboard"})
	}
	return c.JSON(entries)
}

// GetMyScore handles GET /leaderboard/me?mode_id= (auth required).
func (s *LeaderboardService) GetMyScore(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	modeID, err := strconv.ParseUint(c.Query("mode_id"), 10, 32)
	if err != nil || modeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mode_id query parameter is required"})
	}

	entry, err := s.BestScore(ownerID, uint(modeID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no score found for this user and mode"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load score"})
	}
	return c.JSON(entry)
}

// GetMyRank handles GET /leaderboard/rank?mode_id= (auth required).
func (s *LeaderboardService) GetMyRank(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	modeID, err := strconv.ParseUint(c.Query("mode_id"), 10, 32)
	if err != nil || modeID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mode_id query parameter is required"})
	}

	rank, err := s.Rank(ownerID, uint(modeID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no score found for this user and mode"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to compute rank"})
	}
	return c.JSON(rank)
}

// SubmitScoreHandler handles POST /score/submit (auth required).
func (s *LeaderboardService) SubmitScoreHandler(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	var req scoreSubmitRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	err := s.SubmitScore(ownerID, req.ModeID, req.Score, req.SessionID, c.IP(), c.Get("User-Agent"))
	if err != nil {
		if errors.Is(err, ErrInvalidScore) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("[LEADERBOARD] submit failed for %s: %v", ownerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record score"})
	}
	return c.JSON(fiber.Map{"message": "Score processed"})
}

// GetMyHistory handles GET /score/history?mode_id=&limit= (auth required).
func (s *LeaderboardService) GetMyHistory(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)
	modeID, _ := strconv.ParseUint(c.Query("mode_id", "0"), 10, 32)
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	entries, err := s.History(ownerID, uint(modeID), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load history"})
	}
	return c.JSON(entries)
}
