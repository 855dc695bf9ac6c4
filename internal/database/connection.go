// internal/database/connection.go
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/certview/internal/config"
	"github.com/javajoker/certview/internal/models"
)

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}

func Initialize(cfg config.DatabaseConfig, log *logrus.Logger) (*gorm.DB, error) {
	// Route GORM's own logging through logrus
	gormConfig := &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB, log *logrus.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("Error closing database connection")
	} else {
		log.Info("Database connection closed successfully")
	}
}

// PublicViewSQL builds the DDL of the read-only projection anonymous lookups
// run against. Only active, non-deleted products are visible through it.
func PublicViewSQL(view string) string {
	return fmt.Sprintf(
		"CREATE OR REPLACE VIEW %s AS SELECT %s FROM certified_products WHERE status = '%s' AND deleted_at IS NULL",
		pq.QuoteIdentifier(view),
		strings.Join(models.PublicColumns, ", "),
		models.ProductStatusActive,
	)
}

func RunMigrations(db *gorm.DB, view string, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	// gen_random_uuid() on PostgreSQL < 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	// Run auto-migrations
	if err := db.AutoMigrate(&models.CertifiedProduct{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := db.Exec(PublicViewSQL(view)).Error; err != nil {
		return fmt.Errorf("failed to create public view %s: %w", view, err)
	}

	// Create indexes
	createIndexes(db, log)

	log.WithField("view", view).Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB, log *logrus.Logger) {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_certified_products_public_active ON certified_products(public_id) WHERE status = 'active' AND deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_certified_products_manufacturer ON certified_products(manufacturer)",
		"CREATE INDEX IF NOT EXISTS idx_certified_products_certified_at ON certified_products(certification_date DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// Continue with other indexes instead of failing completely
			log.WithError(err).WithField("statement", index).Warn("Failed to create index")
		}
	}
}

// WithTransaction runs fn in a transaction, rolling back on error or panic.
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
