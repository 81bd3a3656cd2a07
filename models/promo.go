package models

// PromoCode is a marketing/referral code. MaxUses == 0 means unlimited.
// Redemption increments Uses with a conditional UPDATE so concurrent redeems
// cannot race past the cap.
type PromoCode struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Code     string `gorm:"uniqueIndex;not null" json:"code"`
	Reward   string `json:"reward,omitempty"`
	Uses     int    `gorm:"default:0" json:"uses"`
	MaxUses  int    `gorm:"default:0" json:"max_uses"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}
