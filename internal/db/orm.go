package db

import (
	"fmt"

	gormModels "infinite-experiment/airportd/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ormConfig keeps dangling city/country references loadable: no FK constraints are created on migrate.
func ormConfig() *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	}
}

func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), ormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

// InitSQLiteORM opens a sqlite database. The pool is pinned to one connection so that
// in-memory databases are shared by every query instead of one empty database per connection.
func InitSQLiteORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), ormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates the countries, cities and airports tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(gormModels.Models()...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
