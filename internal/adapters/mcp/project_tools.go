package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/example/backlog/internal/ports/primary"
)

// createProjectTool creates a project namespace.
type createProjectTool struct {
	projects primary.ProjectService
}

func newCreateProjectTool(projects primary.ProjectService) *createProjectTool {
	return &createProjectTool{projects: projects}
}

func (t *createProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project namespace for tasks."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name"),
		),
		mcp.WithString("prefix",
			mcp.Required(),
			mcp.Description("Short ID prefix, e.g. \"JC\" (normalized to uppercase)"),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description"),
		),
	)
}

func (t *createProjectTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	prefix, err := request.RequireString("prefix")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := t.projects.CreateProject(ctx, primary.CreateProjectRequest{
		Name:        name,
		Prefix:      prefix,
		Description: request.GetString("description", ""),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"created": true,
		"id":      resp.ID,
		"prefix":  resp.Prefix,
	}), nil
}

// listProjectsTool lists all projects.
type listProjectsTool struct {
	projects primary.ProjectService
}

func newListProjectsTool(projects primary.ProjectService) *listProjectsTool {
	return &listProjectsTool{projects: projects}
}

func (t *listProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List all projects with name and prefix."),
	)
}

func (t *listProjectsTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.projects.ListProjects(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	payload := make([]map[string]any, len(projects))
	for i, p := range projects {
		payload[i] = map[string]any{
			"id":          p.ID,
			"name":        p.Name,
			"prefix":      p.Prefix,
			"description": p.Description,
			"created_at":  p.CreatedAt,
		}
	}

	return jsonResult(map[string]any{
		"projects": payload,
		"count":    len(payload),
	}), nil
}
