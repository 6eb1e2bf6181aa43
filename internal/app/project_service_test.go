package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/backlog/internal/ports/primary"
	"github.com/example/backlog/internal/ports/secondary"
)

func TestCreateProject(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	resp, err := svc.projects.CreateProject(ctx, primary.CreateProjectRequest{
		Name:        "Demo",
		Prefix:      "dm",
		Description: "a demo project",
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if resp.ID != "PROJ-001" {
		t.Errorf("expected PROJ-001, got %s", resp.ID)
	}
	if resp.Prefix != "DM" {
		t.Errorf("expected prefix normalized to DM, got %s", resp.Prefix)
	}

	second, err := svc.projects.CreateProject(ctx, primary.CreateProjectRequest{Name: "Other", Prefix: "OT"})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if second.ID != "PROJ-002" {
		t.Errorf("expected PROJ-002, got %s", second.ID)
	}
}

func TestCreateProject_Validation(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	if _, err := svc.projects.CreateProject(ctx, primary.CreateProjectRequest{Prefix: "DM"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := svc.projects.CreateProject(ctx, primary.CreateProjectRequest{Name: "Demo"}); err == nil {
		t.Error("expected error for missing prefix")
	}
}

func TestCreateProject_DuplicatePrefix(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	seedDemoProject(t, svc)

	_, err := svc.projects.CreateProject(ctx, primary.CreateProjectRequest{Name: "Clone", Prefix: "dm"})
	if !errors.Is(err, secondary.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestListProjects(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	projects, err := svc.projects.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected empty list, got %d", len(projects))
	}

	seedDemoProject(t, svc)

	projects, err = svc.projects.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Prefix != "DM" {
		t.Errorf("expected one project with prefix DM, got %v", projects)
	}
}
