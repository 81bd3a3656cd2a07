package services

import (
	"time"

	"tricky-turns-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// EnsureUser upserts the player row for a verified identity. Keyed on
// owner_id with ON CONFLICT so concurrent first-time verifications for the
// same identity cannot create duplicate rows; username and last_login are
// refreshed on every hit.
func (s *UserService) EnsureUser(identity *PiIdentity) (*models.User, error) {
	now := time.Now().UTC()
	user := models.User{
		OwnerID:   identity.OwnerID,
		Username:  identity.Username,
		LastLogin: &now,
	}
	// The jwt and insecure strategies may not carry a username; never blank
	// out a stored display name with an empty one.
	updated := []string{"last_login"}
	if identity.Username != "" {
		updated = append(updated, "username")
	}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.AssignmentColumns(updated),
	}).Create(&user).Error
	if err != nil {
		return nil, err
	}

	// Re-read: on conflict the in-memory struct does not carry the stored
	// row's id / is_banned.
	var stored models.User
	if err := s.DB.Where("owner_id = ?", identity.OwnerID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
