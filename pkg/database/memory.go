package database

import (
	"fmt"

	"gorm.io/gorm"
)

// OpenMemory opens a private in-memory SQLite database with foreign keys
// enforced. Databases with different names never share state; the data
// lives as long as the returned pool.
func OpenMemory(name string) (*gorm.DB, error) {
	db, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	// One connection keeps the in-memory database alive and serializes
	// writers, which SQLite requires anyway.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	sqlDB.SetConnMaxIdleTime(0)
	return db, nil
}
