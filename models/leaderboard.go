package models

import (
	"time"
)

// LeaderboardScore holds the single best score per (player, mode). The
// composite unique index is the enforcement mechanism for the one-row-per-key
// invariant; writes go through an ON CONFLICT upsert that only raises the
// score, never lowers it.
type LeaderboardScore struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerID    string    `gorm:"uniqueIndex:uix_owner_mode;not null" json:"owner_id"`
	ModeID     uint      `gorm:"uniqueIndex:uix_owner_mode;not null" json:"mode_id"`
	Score      int64     `gorm:"not null" json:"score"`
	AchievedAt time.Time `gorm:"not null" json:"achieved_at"`
}

// ScoreHistory is append-only: one row per submission attempt, whether or
// not it beat the stored best. Never mutated or deleted.
type ScoreHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"index;not null" json:"owner_id"`
	ModeID      uint      `gorm:"not null" json:"mode_id"`
	Score       int64     `gorm:"not null" json:"score"`
	SessionID   string    `json:"session_id"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	IPAddress   string    `json:"ip_address,omitempty"`
	DeviceInfo  string    `json:"device_info,omitempty"`
}
