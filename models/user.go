package models

import (
	"time"
)

// User is a player record. OwnerID is the Pi-platform-issued UID and is the
// canonical identity key for every other table; Username is a display
// attribute that may change between logins and is never used as a join key.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	OwnerID   string     `gorm:"uniqueIndex;not null" json:"owner_id"`
	Username  string     `gorm:"index" json:"username"`
	IsBanned  bool       `gorm:"default:false" json:"is_banned"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
