package testutil

import (
	"productivity-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Threshold{},
		&models.Notification{},
		&models.Note{},
		&models.Checklist{},
		&models.ChecklistItem{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
