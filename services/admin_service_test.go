package services

import (
	"errors"
	"testing"
	"time"

	"tricky-turns-backend/models"

	"golang.org/x/crypto/bcrypt"
)

func seedAdmin(t *testing.T, s *AdminService, username, password string, active bool) *models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	admin := models.Admin{Username: username, PasswordHash: string(hash), IsActive: active}
	if err := s.DB.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}
	return &admin
}

func TestAdminLoginIssuesUsableSession(t *testing.T) {
	db := openTestDB(t)
	s := NewAdminService(db)
	seedAdmin(t, s, "root", "hunter22", true)

	admin, token, err := s.Login("root", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected session token")
	}

	resolved, err := s.CurrentAdmin(token)
	if err != nil {
		t.Fatalf("session resolve failed: %v", err)
	}
	if resolved.ID != admin.ID {
		t.Fatalf("expected admin %d, got %d", admin.ID, resolved.ID)
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	db := openTestDB(t)
	s := NewAdminService(db)
	seedAdmin(t, s, "root", "hunter22", true)

	if _, _, err := s.Login("root", "wrong"); !errors.Is(err, ErrAdminUnauthorized) {
		t.Fatalf("expected ErrAdminUnauthorized for bad password, got %v", err)
	}
	if _, _, err := s.Login("ghost", "hunter22"); !errors.Is(err, ErrAdminUnauthorized) {
		t.Fatalf("expected ErrAdminUnauthorized for unknown user, got %v", err)
	}
}

func TestAdminLoginRejectsInactiveAccount(t *testing.T) {
	db := openTestDB(t)
	s := NewAdminService(db)
	seedAdmin(t, s, "retired", "hunter22", false)

	if _, _, err := s.Login("retired", "hunter22"); !errors.Is(err, ErrAdminInactive) {
		t.Fatalf("expected ErrAdminInactive, got %v", err)
	}
}

func TestAdminSessionExpiryCheckedOnUse(t *testing.T) {
	db := openTestDB(t)
	s := NewAdminService(db)
	admin := seedAdmin(t, s, "root", "hunter22", true)

	session := models.AdminSession{
		ID:        "expired-token",
		AdminID:   admin.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	if err := db.Create(&session).Error; err != nil {
		t.Fatalf("seed session failed: %v", err)
	}

	if _, err := s.CurrentAdmin("expired-token"); !errors.Is(err, ErrAdminUnauthorized) {
		t.Fatalf("expected expired session to be unauthorized, got %v", err)
	}

	// The expired row is gone after being seen.
	var count int64
	db.Model(&models.AdminSession{}).Where("id = ?", "expired-token").Count(&count)
	if count != 0 {
		t.Fatalf("expired session row should have been deleted")
	}
}

func TestAdminDeactivationInvalidatesLiveSessions(t *testing.T) {
	db := openTestDB(t)
	s := NewAdminService(db)
	admin := seedAdmin(t, s, "root", "hunter22", true)

	_, token, err := s.Login("root", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	db.Model(&models.Admin{}).Where("id = ?", admin.ID).Update("is_active", false)

	if _, err := s.CurrentAdmin(token); !errors.Is(err, ErrAdminInactive) {
		t.Fatalf("expected ErrAdminInactive for deactivated account, got %v", err)
	}
}

func TestAdminLogoutDeletesSession(t *testing.T) {
	db := openTestDB(t)
	s := NewAdminService(db)
	seedAdmin(t, s, "root", "hunter22", true)

	_, token, err := s.Login("root", "hunter22")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := s.Logout(token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := s.CurrentAdmin(token); !errors.Is(err, ErrAdminUnauthorized) {
		t.Fatalf("expected logged-out session to be unauthorized, got %v", err)
	}
}

func TestPurgeExpiredSessions(t *testing.T) {
	db := openTestDB(t)
	s := NewAdminService(db)
	admin := seedAdmin(t, s, "root", "hunter22", true)

	db.Create(&models.AdminSession{ID: "old", AdminID: admin.ID, ExpiresAt: time.Now().UTC().Add(-time.Hour)})
	db.Create(&models.AdminSession{ID: "live", AdminID: admin.ID, ExpiresAt: time.Now().UTC().Add(time.Hour)})

	purged, err := s.PurgeExpiredSessions()
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged session, got %d", purged)
	}

	var count int64
	db.Model(&models.AdminSession{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 remaining session, got %d", count)
	}
}
