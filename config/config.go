package config

import (
	"log"
	"os"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

var JWT_KEY []byte

// Load reads .env and fills the package keys. Called once from main.
func Load() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal("Error loading .env file")
	}

	key := os.Getenv("JWT_KEY")
	if key == "" {
		log.Fatal("JWT_KEY must be set")
	}
	JWT_KEY = []byte(key)
}

// QRSecret signs worker QR payloads. Empty means expiry-only verification.
func QRSecret() string {
	return os.Getenv("QR_SECRET")
}

// CronSecret guards the sweep endpoint. Empty disables the check.
func CronSecret() string {
	return os.Getenv("CRON_SECRET")
}

type JWTClaims struct {
	WorkerID string `json:"worker_id"`
	jwt.RegisteredClaims
}
