package database

import (
	"fmt"
	"log"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Fetch configuration values from environment or config files
	host := config.Config("DB_HOST")
	port := config.Config("DB_PORT")
	user := config.Config("DB_USER")
	password := config.Config("DB_PASSWORD")
	dbname := config.Config("DB_NAME")

	// Build the connection string
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Unique-constraint violations must surface as gorm.ErrDuplicatedKey
		// (the like toggle relies on it under concurrent double-taps).
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	fmt.Println("Database successfully connected!")
}
