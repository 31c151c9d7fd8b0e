package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Redis ping timeout

	"donation_system/internal/api"     // Custom package for API handlers
	"donation_system/internal/config"  // Custom package for configuration
	"donation_system/internal/db"      // Database connection
	"donation_system/internal/repo"    // Data access
	"donation_system/internal/service" // Business operations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	database, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client; the count cache is optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_, err = redisClient.Ping(ctx).Result() // Test Redis connection
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, count caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	donors := repo.NewDonors(database)
	donations := repo.NewDonations(database)
	r := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(repo.NewUsers(database), cfg.JWTSecret, cfg.TokenTTL),
		Donors:      service.NewDonorService(donors, donations, redisClient),
		Donations:   service.NewDonationService(donors, donations, redisClient),
		JWTSecret:   cfg.JWTSecret,
		BasePath:    cfg.BasePath,
		CORSOrigins: cfg.CORSOrigins(),
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithField("base_path", cfg.BasePath).Info("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {                                     // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
