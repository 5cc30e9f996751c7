package database

import (
	"log"

	"github.com/snowpeak-resort/station-api/internal/config"
	"github.com/snowpeak-resort/station-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate
	err = db.AutoMigrate(
		&models.Skier{},
		&models.Course{},
		&models.Instructor{},
		&models.Piste{},
		&models.Registration{},
		&models.Subscription{},
		&models.Staff{},
		&models.APIKey{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	return db
}
