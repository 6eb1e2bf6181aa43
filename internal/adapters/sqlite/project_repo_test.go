package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/backlog/internal/adapters/sqlite"
	"github.com/example/backlog/internal/ports/secondary"
)

func TestProjectRepository_Create(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewProjectRepository(testDB)
	ctx := context.Background()

	project := &secondary.ProjectRecord{
		ID:          "PROJ-001",
		Name:        "Demo",
		Prefix:      "DM",
		Description: "A demo project",
	}

	if err := repo.Create(ctx, project); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	retrieved, err := repo.GetByPrefix(ctx, "DM")
	if err != nil {
		t.Fatalf("GetByPrefix failed: %v", err)
	}
	if retrieved.Name != "Demo" {
		t.Errorf("expected name 'Demo', got '%s'", retrieved.Name)
	}
	if retrieved.Description != "A demo project" {
		t.Errorf("expected description to round-trip, got '%s'", retrieved.Description)
	}
	if retrieved.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}
}

func TestProjectRepository_Create_DuplicatePrefix(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewProjectRepository(testDB)
	ctx := context.Background()

	first := &secondary.ProjectRecord{ID: "PROJ-001", Name: "Demo", Prefix: "DM"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	second := &secondary.ProjectRecord{ID: "PROJ-002", Name: "Other", Prefix: "DM"}
	err := repo.Create(ctx, second)
	if err == nil {
		t.Fatal("expected duplicate prefix to be rejected")
	}
	if !errors.Is(err, secondary.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestProjectRepository_GetByPrefix_NotFound(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewProjectRepository(testDB)

	_, err := repo.GetByPrefix(context.Background(), "XX")
	if err == nil {
		t.Fatal("expected error for unknown prefix")
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectRepository_List(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewProjectRepository(testDB)
	ctx := context.Background()

	projects, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected empty list, got %d", len(projects))
	}

	seedProject(t, testDB, "PROJ-001", "Demo", "DM")
	seedProject(t, testDB, "PROJ-002", "JaCore", "JC")

	projects, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
}

func TestProjectRepository_GetNextID(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewProjectRepository(testDB)
	ctx := context.Background()

	nextID, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if nextID != "PROJ-001" {
		t.Errorf("expected PROJ-001, got %s", nextID)
	}

	seedProject(t, testDB, "PROJ-001", "Demo", "DM")
	seedProject(t, testDB, "PROJ-007", "Gap", "GP")

	nextID, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if nextID != "PROJ-008" {
		t.Errorf("expected PROJ-008 after gap, got %s", nextID)
	}
}
