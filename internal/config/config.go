package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds server configuration, read from the environment with an
// optional .env file.
type Config struct {
	Addr     string
	DBPath   string
	LogLevel string
}

// Load reads configuration from the environment. A missing .env file is not
// an error (e.g. prod).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Addr:     getEnv("WISHBOX_ADDR", ":8080"),
		DBPath:   getEnv("WISHBOX_DB", "wishbox.sqlite3"),
		LogLevel: getEnv("WISHBOX_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
