package models

import (
	"time"
)

// SupportTicket is a player-filed support request.
type SupportTicket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   string    `gorm:"index;not null" json:"owner_id"`
	Subject   string    `gorm:"not null" json:"subject"`
	Message   string    `gorm:"type:text" json:"message"`
	Status    string    `gorm:"default:'open'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
