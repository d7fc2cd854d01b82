package utils

import (
	"fmt"
	"project/backend/config"
	"project/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var defaultSubjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"Computer Science",
	"Economics",
	"History",
	"Philosophy",
	"Languages",
	"Statistics",
}

// InitDB opens the Postgres connection pool and prepares the schema.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedSubjects(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates all tables used by the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.UserSubject{},
		&models.Subject{},
		&models.Group{},
		&models.GroupMembership{},
		&models.Message{},
	)
}

// SeedSubjects inserts the reference subject list when the table is empty.
func SeedSubjects(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range defaultSubjects {
		if err := db.Create(&models.Subject{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
