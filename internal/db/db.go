package db

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rootedtour/checkpoint/internal/models"
)

// Open opens (or creates) the sqlite database at path and migrates the
// schema. The handle is handed to whoever needs it; there is no
// package-level connection.
func Open(path string) (*gorm.DB, error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		// Surface unique-constraint violations as gorm.ErrDuplicatedKey so
		// the registry can retry with a fresh ticket id.
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single writer; cap the pool accordingly.
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(&models.Registration{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	// Composite index that GORM doesn't auto-create from struct tags; the
	// dashboard and export paths filter on status + checkin_time.
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_reg_status_checkin ON registrations(status, checkin_time)")

	return conn, nil
}
