// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Addr       string
	DBPath     string
	BackupDir  string
	SessionTTL time.Duration
	JWTSecret  string
	AccessTTL  time.Duration
}

// Load reads .env files (when present) and then the environment.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment.
func FromEnv() (*Config, error) {
	sessionTTL, err := duration("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	accessTTL, err := duration("ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return nil, err
	}

	return &Config{
		Addr:       getenv("ADDR", ":8080"),
		DBPath:     getenv("DB_PATH", "data/badger"),
		BackupDir:  getenv("BACKUP_DIR", "data/backups"),
		SessionTTL: sessionTTL,
		JWTSecret:  getenv("JWT_SECRET", ""),
		AccessTTL:  accessTTL,
	}, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}
