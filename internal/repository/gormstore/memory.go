package gormstore

import (
	"fmt"
	"regexp"

	"gorm.io/gorm"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// OpenInMemory opens a private in-memory database named name. Databases with
// different names never share data.
func OpenInMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", unsafeNameChars.ReplaceAllString(name, "_"))
	db, err := Open(dsn, false)
	if err != nil {
		return nil, err
	}

	// The database lives as long as a connection does; one connection also
	// keeps SQLite's shared-cache locking out of the way.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}
