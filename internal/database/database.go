package database

import (
	"log"
	"os"
	"productivity-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection and runs migrations.
// Using glebarez/sqlite, a pure Go SQLite driver (no CGO required).
func InitDB() {
	var err error

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "productivity.db"
	}

	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate the schema (creates tables if they don't exist)
	err = DB.AutoMigrate(
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
		log.Fatal("Failed to migrate database: ", err)
	}

	log.Println("Database connected and migrated")
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
