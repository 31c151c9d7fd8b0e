package main

import (
	"context" // Context for the seed

	"donation_system/internal/config"  // Custom import path (Config)
	"donation_system/internal/db"      // Custom import path (Database)
	"donation_system/internal/repo"    // User store for the seed
	"donation_system/internal/service" // Auth service for the seed

	"github.com/sirupsen/logrus"
)

// Main entry point for migration and the optional bootstrap seed
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	database, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(database); err != nil {
		logrus.Fatalf("%v", err) // Log fatal error if migration fails
	}

	auth := service.NewAuthService(repo.NewUsers(database), cfg.JWTSecret, cfg.TokenTTL)
	if err := db.Seed(context.Background(), auth, cfg); err != nil {
		logrus.Fatalf("%v", err)
	}
}
