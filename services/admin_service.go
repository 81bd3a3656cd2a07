package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"os"
	"time"

	"tricky-turns-backend/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	adminSessionTTL    = 24 * time.Hour
	AdminSessionCookie = "admin_session"
)

var (
	ErrAdminUnauthorized = errors.New("not authenticated as admin")
	ErrAdminInactive     = errors.New("inactive admin account")
)

// dummyPasswordHash keeps the unknown-username login path doing the same
// bcrypt work as the bad-password path.
var dummyPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder"), bcrypt.DefaultCost)

type AdminService struct {
	DB *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{DB: db}
}

func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Bootstrap seeds the first admin account from ADMIN_USERNAME /
// ADMIN_PASSWORD when the admins table is empty. Without it a fresh
// deployment has no way into the console.
func (s *AdminService) Bootstrap() error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("⚠️  [ADMIN] no admins exist and ADMIN_USERNAME/ADMIN_PASSWORD not set — admin console unreachable")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.Admin{
		Username:     username,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("[ADMIN] bootstrapped initial admin account %q", username)
	return nil
}

// Login verifies credentials and issues a DB-backed session token.
func (s *AdminService) Login(username, password string) (*models.Admin, string, error) {
	var admin models.Admin
	err := s.DB.Where("username = ?", username).First(&admin).Error
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		return nil, "", ErrAdminUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrAdminUnauthorized
	}
	if !admin.IsActive {
		return nil, "", ErrAdminInactive
	}

	token, err := randomToken(32)
	if err != nil {
		return nil, "", err
	}
	session := models.AdminSession{
		ID:        token,
		AdminID:   admin.ID,
		ExpiresAt: time.Now().UTC().Add(adminSessionTTL),
	}
	if err := s.DB.Create(&session).Error; err != nil {
		return nil, "", err
	}
	return &admin, token, nil
}

// CurrentAdmin resolves a session token to its admin. Expired sessions are
// deleted on sight; a deactivated account invalidates every live session.
func (s *AdminService) CurrentAdmin(token string) (*models.Admin, error) {
	if token == "" {
		return nil, ErrAdminUnauthorized
	}

	var session models.AdminSession
	if err := s.DB.Where("id = ?", token).First(&session).Error; err != nil {
		return nil, ErrAdminUnauthorized
	}
	if time.Now().UTC().After(session.ExpiresAt) {
		s.DB.Delete(&models.AdminSession{}, "id = ?", token)
		return nil, ErrAdminUnauthorized
	}

	var admin models.Admin
	if err := s.DB.First(&admin, session.AdminID).Error; err != nil {
		return nil, ErrAdminUnauthorized
	}
	if !admin.IsActive {
		return nil, ErrAdminInactive
	}
	return &admin, nil
}

// Logout deletes the session row.
func (s *AdminService) Logout(token string) error {
	return s.DB.Delete(&models.AdminSession{}, "id = ?", token).Error
}

// PurgeExpiredSessions removes sessions past their expiry. Run periodically
// by the scheduler.
func (s *AdminService) PurgeExpiredSessions() (int64, error) {
	res := s.DB.Where("expires_at < ?", time.Now().UTC()).Delete(&models.AdminSession{})
	return res.RowsAffected, res.Error
}

// Audit records a mutating admin action.
func (s *AdminService) Audit(adminUsername, action, targetTable string, targetID uint, notes string) {
	entry := models.AdminAuditLog{
		AdminUsername: adminUsername,
		Action:        action,
		TargetTable:   targetTable,
		TargetID:      targetID,
		Notes:         notes,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("[ADMIN] failed to write audit log entry (%s %s): %v", action, targetTable, err)
	}
}

// ---- HTTP handlers ----

type adminLoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=128"`
}

// LoginHandler handles POST /admin/login.
func (s *AdminService) LoginHandler(c *fiber.Ctx) error {
	var req adminLoginRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	admin, token, err := s.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrAdminInactive):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrAdminUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     AdminSessionCookie,
		Value:    token,
		HTTPOnly: true,
		MaxAge:   int(adminSessionTTL.Seconds()),
		SameSite: "Strict",
	})
	s.Audit(admin.Username, "login", "admins", admin.ID, "")
	return c.JSON(fiber.Map{"message": "Logged in", "admin": admin.Username})
}

// LogoutHandler handles POST /admin/logout (admin auth required).
func (s *AdminService) LogoutHandler(c *fiber.Ctx) error {
	admin := c.Locals("admin").(*models.Admin)
	token := c.Locals("admin_token").(string)

	if err := s.Logout(token); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "logout failed"})
	}
	c.Cookie(&fiber.Cookie{
		Name:     AdminSessionCookie,
		Value:    "",
		HTTPOnly: true,
		MaxAge:   -1,
	})
	s.Audit(admin.Username, "logout", "admins", admin.ID, "")
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me handles GET /admin/me (admin auth required).
func (s *AdminService) Me(c *fiber.Ctx) error {
	admin := c.Locals("admin").(*models.Admin)
	return c.JSON(fiber.Map{"admin": admin.Username})
}
