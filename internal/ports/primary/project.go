// Package primary defines the primary ports (driving interfaces) for the
// application: the plain function-call contract through which any transport
// (CLI, MCP tools) invokes the engine.
package primary

import "context"

// ProjectService defines the primary port for project operations.
type ProjectService interface {
	// CreateProject creates a new project namespace.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*CreateProjectResponse, error)

	// ListProjects lists all projects.
	ListProjects(ctx context.Context) ([]*Project, error)
}

// CreateProjectRequest contains parameters for creating a project.
type CreateProjectRequest struct {
	Name        string
	Prefix      string // normalized to uppercase
	Description string // Optional
}

// CreateProjectResponse contains the result of creating a project.
type CreateProjectResponse struct {
	ID     string
	Prefix string
}

// Project represents a project at the port boundary.
type Project struct {
	ID          string
	Name        string
	Prefix      string
	Description string
	CreatedAt   string
}
