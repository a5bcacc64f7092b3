package database

import (
	"log"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"
)

// Migrate creates or updates the tables for every entity the site stores.
// The composite unique index on likes (photo_id, user_id) is created here
// as part of the Like model definition.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Photo{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Error running database migrations: %v", err)
	}
}
