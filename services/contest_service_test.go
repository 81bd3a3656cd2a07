package services

import (
	"errors"
	"testing"
	"time"

	"tricky-turns-backend/models"

	"gorm.io/gorm"
)

func seedContest(t *testing.T, db *gorm.DB, status string, start, end time.Time) *models.Contest {
	t.Helper()
	contest := models.Contest{
		Name:    "weekly",
		ModeID:  1,
		StartAt: start,
		EndAt:   end,
		Status:  status,
	}
	if err := db.Create(&contest).Error; err != nil {
		t.Fatalf("seed contest failed: %v", err)
	}
	return &contest
}

func TestContestEnterWithinWindow(t *testing.T) {
	db := openTestDB(t)
	s := NewContestService(db)

	now := time.Now().UTC()
	contest := seedContest(t, db, models.ContestStatusActive, now.Add(-time.Hour), now.Add(time.Hour))

	if err := s.Enter(contest.ID, "alice", "sess-1", 120); err != nil {
		t.Fatalf("enter failed: %v", err)
	}

	var count int64
	db.Model(&models.ContestEntry{}).Where("contest_id = ?", contest.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 entry, got %d", count)
	}
}

func TestContestEnterRejectsOutsideWindow(t *testing.T) {
	db := openTestDB(t)
	s := NewContestService(db)

	now := time.Now().UTC()
	ended := seedContest(t, db, models.ContestStatusActive, now.Add(-2*time.Hour), now.Add(-time.Hour))
	scheduled := seedContest(t, db, models.ContestStatusScheduled, now.Add(-time.Hour), now.Add(time.Hour))

	if err := s.Enter(ended.ID, "alice", "sess", 10); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected rejection for ended contest, got %v", err)
	}
	if err := s.Enter(scheduled.ID, "alice", "sess", 10); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected rejection for not-yet-active contest, got %v", err)
	}
}
