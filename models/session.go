package models

import (
	"time"
)

// GameSession is one play session: created on /session/start, closed exactly
// once on /session/end. Kept for anti-fraud, analytics and contest linkage.
type GameSession struct {
	ID               string     `gorm:"primaryKey" json:"id"` // uuid
	OwnerID          string     `gorm:"index;not null" json:"owner_id"`
	ModeID           uint       `gorm:"not null" json:"mode_id"`
	StartedAt        time.Time  `gorm:"not null" json:"started_at"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
	FinalScore       *int64     `json:"final_score,omitempty"`
	DeviceID         string     `json:"device_id,omitempty"`
	Platform         string     `json:"platform,omitempty"`
	ClientVersion    string     `json:"client_version,omitempty"`
	CheatFlag        bool       `gorm:"default:false" json:"cheat_flag"`
	DisconnectReason string     `json:"disconnect_reason,omitempty"`
}
