// Package app implements the primary ports as application services with
// injected repository dependencies.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/backlog/internal/ports/primary"
	"github.com/example/backlog/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo secondary.ProjectRepository
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(projectRepo secondary.ProjectRepository) *ProjectServiceImpl {
	return &ProjectServiceImpl{projectRepo: projectRepo}
}

// CreateProject creates a new project namespace. The prefix is normalized
// to uppercase and must be unique.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.CreateProjectResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	prefix := strings.ToUpper(strings.TrimSpace(req.Prefix))
	if prefix == "" {
		return nil, fmt.Errorf("project prefix is required")
	}

	nextID, err := s.projectRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project ID: %w", err)
	}

	record := &secondary.ProjectRecord{
		ID:          nextID,
		Name:        req.Name,
		Prefix:      prefix,
		Description: req.Description,
	}
	if err := s.projectRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &primary.CreateProjectResponse{ID: record.ID, Prefix: record.Prefix}, nil
}

// ListProjects lists all projects.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = recordToProject(r)
	}
	return projects, nil
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
