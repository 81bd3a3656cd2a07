package models

// FeatureToggle gates client features (readiness, A/B tests). Players only
// ever see the enabled set.
type FeatureToggle struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Enabled     bool   `gorm:"default:false" json:"enabled"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}
