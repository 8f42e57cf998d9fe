package env

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// LoadEnv loads a .env file when present; otherwise environment variables are
// assumed to be set directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, assuming environment variables are set directly.")
	}
}

// MustGetEnv returns the value of a required environment variable and exits
// when it is unset.
func MustGetEnv(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("Environment variable %s not set", key)
	}
	return val
}

// GetEnv returns the value of an environment variable or a default.
func GetEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
