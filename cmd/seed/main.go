// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"warbler/internal/config"
	"warbler/internal/database"
	"warbler/internal/seed"
)

func main() {
	profilePath := flag.String("profile", "", "Path to a YAML seed profile (defaults built in)")
	numUsers := flag.Int("users", 0, "Override the number of users to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	profile := seed.DefaultProfile()
	if *profilePath != "" {
		profile, err = seed.LoadProfile(*profilePath)
		if err != nil {
			log.Fatalf("Failed to load seed profile: %v", err)
		}
	}
	if *numUsers > 0 {
		profile.Users = *numUsers
	}
	profile.Clean = *shouldClean

	log.Printf("Seeding: %d users, %d messages each, clean=%v", profile.Users, profile.MessagesPerUser, profile.Clean)

	if err := seed.NewSeeder(db).Run(profile); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
