package models

import (
	"time"
)

// Admin is a backend console account, separate from player identities.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `gorm:"not null" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// AdminSession is a server-issued opaque token row. It lives in the database
// so sessions survive restarts and work across multiple server instances;
// expiry is checked on every use.
type AdminSession struct {
	ID        string    `gorm:"primaryKey" json:"id"` // random token, base64url
	AdminID   uint      `gorm:"not null;index" json:"admin_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`

	Admin Admin `gorm:"foreignKey:AdminID" json:"-"`
}

// AdminAuditLog records every mutating admin action.
type AdminAuditLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AdminUsername string    `gorm:"index" json:"admin_username"`
	Action        string    `json:"action"`
	TargetTable   string    `json:"target_table"`
	TargetID      uint      `json:"target_id,omitempty"`
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	Timestamp     time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
