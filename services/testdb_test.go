package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"tricky-turns-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter atomic.Int64

// openTestDB gives each test its own in-memory database with the full
// schema. cache=shared keeps the database alive across pool connections;
// a single open connection sidesteps sqlite write contention.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.AdminSession{},
		&models.AdminAuditLog{},
		&models.GameMode{},
		&models.LeaderboardScore{},
		&models.ScoreHistory{},
		&models.GameSession{},
		&models.ShopItem{},
		&models.Purchase{},
		&models.Contest{},
		&models.ContestEntry{},
		&models.SupportTicket{},
		&models.PromoCode{},
		&models.FeatureToggle{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}
