// Package sqlite_test contains integration tests for SQLite repositories.
//
// This file is the single point where the database schema is loaded for
// tests. All setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema and cannot drift from production.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/backlog/internal/adapters/sqlite"
	"github.com/example/backlog/internal/db"
	"github.com/example/backlog/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is capped at one connection: each sqlite :memory: connection is
// its own database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := db.InitSchema(testDB); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedProject inserts a test project and returns its ID.
func seedProject(t *testing.T, testDB *sql.DB, id, name, prefix string) string {
	t.Helper()
	if id == "" {
		id = "PROJ-001"
	}
	if name == "" {
		name = "Demo"
	}
	if prefix == "" {
		prefix = "DM"
	}
	_, err := testDB.Exec("INSERT INTO projects (id, name, prefix) VALUES (?, ?, ?)", id, name, prefix)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// createTestTask creates a task through the repository and returns the
// record with its allocated ID.
func createTestTask(t *testing.T, repo *sqlite.TaskRepository, record *secondary.TaskRecord) *secondary.TaskRecord {
	t.Helper()

	if record.ProjectID == "" {
		record.ProjectID = "PROJ-001"
	}
	if record.ProjectPrefix == "" {
		record.ProjectPrefix = "DM"
	}
	if record.Type == "" {
		record.Type = "task"
	}
	if record.Status == "" {
		record.Status = "ready"
	}
	if record.Priority == 0 {
		record.Priority = 3
	}
	if record.Action == "" {
		record.Action = "do the thing"
	}

	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return record
}
