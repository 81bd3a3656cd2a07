package services

import (
	"sync"
	"testing"

	"tricky-turns-backend/models"
)

func TestEnsureUserIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	s := NewUserService(db)

	first, err := s.EnsureUser(&PiIdentity{OwnerID: "uid-1", Username: "alice"})
	if err != nil {
		t.Fatalf("first ensure failed: %v", err)
	}
	second, err := s.EnsureUser(&PiIdentity{OwnerID: "uid-1", Username: "alice"})
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same user row, got ids %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.User{}).Where("owner_id = ?", "uid-1").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one user row, got %d", count)
	}
}

func TestEnsureUserKeepsUsernameWhenStrategyOmitsIt(t *testing.T) {
	db := openTestDB(t)
	s := NewUserService(db)

	if _, err := s.EnsureUser(&PiIdentity{OwnerID: "uid-1", Username: "alice"}); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	// A jwt-strategy login carries no username claim.
	user, err := s.EnsureUser(&PiIdentity{OwnerID: "uid-1"})
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("empty username blanked the stored display name, got %q", user.Username)
	}
}

func TestEnsureUserUpdatesDisplayName(t *testing.T) {
	db := openTestDB(t)
	s := NewUserService(db)

	if _, err := s.EnsureUser(&PiIdentity{OwnerID: "uid-1", Username: "alice"}); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	user, err := s.EnsureUser(&PiIdentity{OwnerID: "uid-1", Username: "alice_renamed"})
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if user.Username != "alice_renamed" {
		t.Fatalf("expected updated display name, got %q", user.Username)
	}
}

func TestEnsureUserConcurrentFirstLogin(t *testing.T) {
	db := openTestDB(t)
	s := NewUserService(db)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.EnsureUser(&PiIdentity{OwnerID: "uid-1", Username: "alice"}); err != nil {
				t.Errorf("concurrent ensure failed: %v", err)
			}
		}()
	}
	wg.Wait()

	var count int64
	db.Model(&models.User{}).Where("owner_id = ?", "uid-1").Count(&count)
	if count != 1 {
		t.Fatalf("expected one user row after concurrent logins, got %d", count)
	}
}
