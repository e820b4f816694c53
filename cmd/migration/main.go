package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/haeunkim/luthier-crm/internal/infrastructure/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env file not found: %v", err)
	}

	path := os.Getenv("MIGRATIONS_PATH")
	if path == "" {
		path = "migrations"
	}

	if err := database.RunMigrations(path); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("migrations applied")
}
