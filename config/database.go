package config

import (
	"fmt"
	"log"
	"os"

	"github.com/cleanflow-mumbai/api-go/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectDatabase() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	}

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func InitDB() *gorm.DB {
	db, err := ConnectDatabase()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto Migrate models
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.Report{},
		&models.Activity{},
		&models.Drive{},
		&models.DriveParticipant{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	seedRoles(db)

	return db
}

func seedRoles(db *gorm.DB) {
	for _, name := range []string{"user", "moderator"} {
		var role models.Role
		if err := db.Where("name = ?", name).First(&role).Error; err == gorm.ErrRecordNotFound {
			db.Create(&models.Role{Name: name})
		}
	}
}
