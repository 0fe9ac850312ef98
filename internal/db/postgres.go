package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// InitPostgres opens an sqlx handle over lib/pq, retrying while the database comes up.
func InitPostgres(dsn string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres (sqlx): %w", err)
}

// WrapSQLX exposes the connection pool of an open gorm database through sqlx.
// driverName selects the bind variable style ("sqlite3" or "postgres").
func WrapSQLX(orm *gorm.DB, driverName string) (*sqlx.DB, error) {
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}
