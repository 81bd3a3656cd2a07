package services

import (
	"errors"
	"time"

	"tricky-turns-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// Start opens a play session and returns its id.
func (s *SessionService) Start(ownerID string, modeID uint, deviceID, platform, clientVersion string) (*models.GameSession, error) {
	session := models.GameSession{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		ModeID:        modeID,
		StartedAt:     time.Now().UTC(),
		DeviceID:      deviceID,
		Platform:      platform,
		ClientVersion: clientVersion,
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// End closes the caller's session exactly once. The conditional UPDATE is
// scoped to the owner and to still-open sessions, so a player cannot close
// someone else's session and a second end call is a no-op miss.
func (s *SessionService) End(ownerID, sessionID string, finalScore int64) error {
	res := s.DB.Model(&models.GameSession{}).
		Where("id = ? AND owner_id = ? AND ended_at IS NULL", sessionID, ownerID).
		Updates(map[string]interface{}{
			"ended_at":    time.Now().UTC(),
			"final_score": finalScore,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---- HTTP handlers ----

type sessionStartRequest struct {
	ModeID        uint   `json:"mode_id" validate:"required"`
	DeviceID      string `json:"device_id" validate:"max=128"`
	Platform      string `json:"platform" validate:"max=64"`
	ClientVersion string `json:"client_version" validate:"max=64"`
}

type sessionEndRequest struct {
	SessionID  string `json:"session_id" validate:"required"`
	FinalScore int64  `json:"final_score" validate:"min=0"`
}

// StartSession handles POST /session/start (auth required).
func (s *SessionService) StartSession(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	var req sessionStartRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	session, err := s.Start(ownerID, req.ModeID, req.DeviceID, req.Platform, req.ClientVersion)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to start session"})
	}
	return c.JSON(fiber.Map{"session_id": session.ID})
}

// EndSession handles POST /session/end (auth required).
func (s *SessionService) EndSession(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	var req sessionEndRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	if err := s.End(ownerID, req.SessionID, req.FinalScore); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no open session found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to end session"})
	}
	return c.JSON(fiber.Map{"message": "Session ended"})
}
