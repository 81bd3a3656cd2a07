package models

import (
	"time"
)

// ShopItem is a purchasable virtual good (skin, boost, ticket, ...).
type ShopItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Price       float64 `gorm:"not null" json:"price"`
	Type        string  `json:"type,omitempty"`
	IsActive    bool    `gorm:"default:true" json:"is_active"`
}

// Purchase statuses.
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
)

// Purchase records one in-app purchase. Inserted as pending; the payment
// verification worker settles it against the Pi platform afterwards.
type Purchase struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"index;not null" json:"owner_id"`
	ItemID      uint      `gorm:"not null" json:"item_id"`
	Amount      float64   `json:"amount"`
	TxHash      string    `gorm:"index" json:"tx_hash,omitempty"`
	PurchasedAt time.Time `gorm:"autoCreateTime" json:"purchased_at"`
	Status      string    `gorm:"default:'pending';index" json:"status"`
}
