package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/kylianebat7/gudlft/internal/club"
	"github.com/kylianebat7/gudlft/internal/config"
)

// Writes a small sample data set to the configured data files.
// Existing files are left alone unless SEED_OVERWRITE=true.
func main() {
	log.Info("Starting data seeder...")
	cfg := config.Load()
	paths := cfg.Paths()

	if os.Getenv("SEED_OVERWRITE") != "true" {
		for _, path := range []string{paths.Clubs, paths.Competitions, paths.Bookings} {
			if _, err := os.Stat(path); err == nil {
				log.Fatalf("Refusing to overwrite %s, set SEED_OVERWRITE=true to replace it", path)
			} else if !errors.Is(err, os.ErrNotExist) {
				log.Fatalf("Failed to inspect %s: %s", path, err)
			}
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %s", err)
	}

	clubs := []club.Club{
		{Name: "Simply Lift", Email: "john@simplylift.co", Points: 13},
		{Name: "Iron Temple", Email: "admin@irontemple.com", Points: 4},
		{Name: "She Lifts", Email: "kate@shelifts.co.uk", Points: 12},
	}
	competitions := []club.Competition{
		{Name: "Spring Festival 2026", Date: "2026-03-27 10:00:00", NumberOfPlaces: 25, Category: "Open"},
		{Name: "Summer Strength Cup", Date: "2027-07-10 09:30:00", NumberOfPlaces: 30, Category: "Senior"},
		{Name: "Fall Classic", Date: "2020-10-22 13:30:00", NumberOfPlaces: 13},
	}

	if err := club.Seed(paths, clubs, competitions, nil); err != nil {
		log.Fatalf("Failed to seed data files: %s", err)
	}
	log.Info("Seeding complete", "clubs", len(clubs), "competitions", len(competitions),
		"clubs_file", paths.Clubs, "competitions_file", paths.Competitions, "bookings_file", paths.Bookings)
}
