package app_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/backlog/internal/adapters/sqlite"
	"github.com/example/backlog/internal/app"
	"github.com/example/backlog/internal/db"
	"github.com/example/backlog/internal/ports/primary"
)

// services bundles the application services wired over one in-memory database.
type services struct {
	projects *app.ProjectServiceImpl
	tasks    *app.TaskServiceImpl
	summary  *app.SummaryServiceImpl
}

// setupServices wires the services the way production does, over an
// in-memory database with the authoritative schema.
func setupServices(t *testing.T) *services {
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
	t.Cleanup(func() { testDB.Close() })

	projectRepo := sqlite.NewProjectRepository(testDB)
	taskRepo := sqlite.NewTaskRepository(testDB)

	return &services{
		projects: app.NewProjectService(projectRepo),
		tasks:    app.NewTaskService(taskRepo, projectRepo, 0),
		summary:  app.NewSummaryService(taskRepo, projectRepo),
	}
}

// seedDemoProject creates the Demo project with prefix DM.
func seedDemoProject(t *testing.T, svc *services) {
	t.Helper()
	_, err := svc.projects.CreateProject(context.Background(), primary.CreateProjectRequest{
		Name:   "Demo",
		Prefix: "DM",
	})
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
}

// mustCreateTask creates a task and fails the test on error.
func mustCreateTask(t *testing.T, svc *services, req primary.CreateTaskRequest) *primary.CreateTaskResponse {
	t.Helper()
	if req.Project == "" {
		req.Project = "DM"
	}
	if req.Type == "" {
		req.Type = "task"
	}
	if req.Action == "" {
		req.Action = "do the thing"
	}
	resp, err := svc.tasks.CreateTask(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	return resp
}
