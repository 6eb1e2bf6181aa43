package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/backlog/internal/config"
	"github.com/example/backlog/internal/ports/secondary"
)

var db *sql.DB

var dbInitialized bool

// GetDB returns the database connection, initializing if needed.
// Open failures are reported as secondary.ErrStorageUnavailable with the
// resolved path so the operator knows what to fix.
func GetDB() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}

	dbPath, err := config.DBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("%w: cannot create directory for %s: %v", secondary.ErrStorageUnavailable, dbPath, err)
	}

	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open backlog database at %s: %v (check the path or set BACKLOG_DB)", secondary.ErrStorageUnavailable, dbPath, err)
	}

	// Enable foreign keys and wait on concurrent writers instead of failing
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("%w: failed to enable foreign keys: %v", secondary.ErrStorageUnavailable, err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("%w: failed to set busy timeout: %v", secondary.ErrStorageUnavailable, err)
	}

	if !dbInitialized {
		dbInitialized = true
		if err := InitSchema(db); err != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return db, nil
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
