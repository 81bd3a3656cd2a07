package models

import (
	"time"
)

// Contest statuses. The scheduler flips scheduled → active → finished as the
// start/end window passes.
const (
	ContestStatusScheduled = "scheduled"
	ContestStatusActive    = "active"
	ContestStatusFinished  = "finished"
)

// Contest is a time-windowed paid competition on one mode.
type Contest struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	ModeID        uint      `gorm:"not null" json:"mode_id"`
	StartAt       time.Time `gorm:"not null;index" json:"start_at"`
	EndAt         time.Time `gorm:"not null;index" json:"end_at"`
	EntryFee      float64   `json:"entry_fee"`
	RewardPool    float64   `json:"reward_pool"`
	Status        string    `gorm:"default:'scheduled';index" json:"status"`
	WinnerOwnerID string    `json:"winner_owner_id,omitempty"`
}

// ContestEntry is one player's submission into a contest.
type ContestEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ContestID    uint      `gorm:"index;not null" json:"contest_id"`
	OwnerID      string    `gorm:"index;not null" json:"owner_id"`
	SessionID    string    `json:"session_id,omitempty"`
	Score        int64     `json:"score"`
	EnteredAt    time.Time `gorm:"autoCreateTime" json:"entered_at"`
	PrizeAwarded float64   `json:"prize_awarded,omitempty"`
}
