package db

import (
	"context" // Context for the bootstrap seed

	"donation_system/internal/config"  // Application configuration
	"donation_system/internal/domain"  // Importing domain models
	"donation_system/internal/service" // Auth service creates the bootstrap admin

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
	"gorm.io/gorm/logger"
)

// Open connects to the configured MySQL database
func Open(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsProd {
		level = logger.Error
	}
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true, // Surface duplicate keys as gorm.ErrDuplicatedKey
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}
	return db, nil
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err := db.AutoMigrate(domain.Models()...)
	if err != nil {
		return errors.Wrap(err, "migration failed")
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}

// Seed creates the bootstrap foundation and its first admin when configured.
// Running it again is a no-op.
func Seed(ctx context.Context, auth *service.AuthService, cfg *config.Config) error {
	if !cfg.HasBootstrap() {
		logrus.Info("No bootstrap foundation configured, skipping seed")
		return nil
	}
	foundation := &domain.Foundation{Name: cfg.BootstrapFoundation}
	if err := auth.CreateFoundationAdmin(ctx, foundation, cfg.BootstrapAdminUser, cfg.BootstrapAdminPassword); err != nil {
		return errors.Wrap(err, "seed bootstrap admin")
	}
	logrus.WithFields(logrus.Fields{
		"foundation_id": foundation.ID,
		"admin":         cfg.BootstrapAdminUser,
	}).Info("Bootstrap foundation ready")
	return nil
}
