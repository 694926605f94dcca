package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultMaxConns = 10

// NewConnection opens the document database. maxConns bounds the pool, zero uses the default.
func NewConnection(dsn string, maxConns int) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database dsn")
	}
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %w", err)
	}

	sqlDb.SetMaxOpenConns(maxConns)
	sqlDb.SetMaxIdleConns(max(1, maxConns/2))
	sqlDb.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDb.Ping(); err != nil {
		_ = sqlDb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
