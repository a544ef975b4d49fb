package main

import (
	"log"
	"os"

	"github.com/AlexTLDR/gather/internal/auth"
	"github.com/AlexTLDR/gather/internal/config"
	"github.com/AlexTLDR/gather/internal/database"
	"github.com/AlexTLDR/gather/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file (ignore error if a file doesn't exist)
	if err := godotenv.Overload(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func(db *database.DB) {
		if err := db.Close(); err != nil {
			log.Fatalf("Failed to close database: %v", err)
		}
	}(db)

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create and start the server
	authService := auth.New(db, auth.LogMailer{}, cfg.BaseURL)
	srv := server.New(cfg, db, authService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on :%s", port)
	if err := srv.Start(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
