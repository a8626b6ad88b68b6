package models

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL must be set")
	}

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the store relies on.
	db, err := gorm.Open(mysql.Open(dbURL), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&Site{}, &Team{}, &Worker{}, &AttendanceRecord{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database connected.")
	DB = db
}
