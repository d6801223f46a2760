// Command migrate applies the database schema.
package main

import (
	"log"

	"warbler/internal/config"
	"warbler/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	log.Println("schema applied")
	return nil
}
