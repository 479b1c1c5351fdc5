package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/kylianebat7/gudlft/internal/club"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup. Every key has a default, and invalid
// numbers or booleans are fatal.
func FromEnv(lookup func(string) (string, bool)) Config {
	getEnv := func(key, fallback string) string {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		raw := getEnv(key, "")
		if raw == "" {
			return fallback
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			log.Fatalf("Error: environment variable %s must be a non-negative integer, got %q", key, raw)
		}
		return value
	}
	getBool := func(key string, fallback bool) bool {
		raw := getEnv(key, "")
		if raw == "" {
			return fallback
		}
		value, err := strconv.ParseBool(raw)
		if err != nil {
			log.Fatalf("Error: environment variable %s must be a boolean, got %q", key, raw)
		}
		return value
	}

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		DataDir:             getEnv("DATA_DIR", "."),
		MaxPlacesPerBooking: getInt("MAX_PLACES_PER_BOOKING", 0),
		RefreshCompetitions: getBool("REFRESH_COMPETITIONS", true),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		Slack: SlackConfig{
			Token:         getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID:     getEnv("SLACK_CHANNEL_ID", ""),
			SigningSecret: getEnv("SLACK_SIGNING_SECRET", ""),
		},
		ProjectID: getEnv("GCP_PROJECT", ""),
	}
	cfg.ClubsFile = getEnv("CLUBS_FILE", filepath.Join(cfg.DataDir, "clubs.json"))
	cfg.CompetitionsFile = getEnv("COMPETITIONS_FILE", filepath.Join(cfg.DataDir, "competitions.json"))
	cfg.BookingsFile = getEnv("BOOKINGS_FILE", filepath.Join(cfg.DataDir, "bookings.json"))
	return cfg
}

// Paths returns the collection files the club store reads and writes.
func (c Config) Paths() club.Paths {
	return club.Paths{
		Clubs:        c.ClubsFile,
		Competitions: c.CompetitionsFile,
		Bookings:     c.BookingsFile,
	}
}
