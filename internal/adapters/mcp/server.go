// Package mcp wires the tool surface over the primary ports.
//
// This is a composition root in the DIP sense: it receives the services and
// registers the tools that depend on them. No business logic lives here.
package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/example/backlog/internal/ports/primary"
)

const serverName = "backlog"

// New creates the MCP server with all backlog tools registered.
func New(
	projectService primary.ProjectService,
	taskService primary.TaskService,
	summaryService primary.SummaryService,
	version string,
) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions),
	)

	createProject := newCreateProjectTool(projectService)
	s.AddTool(createProject.Definition(), createProject.Handle)

	listProjects := newListProjectsTool(projectService)
	s.AddTool(listProjects.Definition(), listProjects.Handle)

	listTasks := newListTasksTool(taskService)
	s.AddTool(listTasks.Definition(), listTasks.Handle)

	getTask := newGetTaskTool(taskService)
	s.AddTool(getTask.Definition(), getTask.Handle)

	getNextTask := newGetNextTaskTool(taskService)
	s.AddTool(getNextTask.Definition(), getNextTask.Handle)

	createTask := newCreateTaskTool(taskService)
	s.AddTool(createTask.Definition(), createTask.Handle)

	updateStatus := newUpdateTaskStatusTool(taskService)
	s.AddTool(updateStatus.Definition(), updateStatus.Handle)

	completeTask := newCompleteTaskTool(taskService)
	s.AddTool(completeTask.Definition(), completeTask.Handle)

	deleteTask := newDeleteTaskTool(taskService)
	s.AddTool(deleteTask.Definition(), deleteTask.Handle)

	backlogSummary := newBacklogSummaryTool(summaryService)
	s.AddTool(backlogSummary.Definition(), backlogSummary.Handle)

	return s
}

// ServeStdio runs the server over stdio until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const serverInstructions = `Task backlog manager enforcing single-task focus.

List operations return summaries only (id, name, status, priority, type).
Use get_task or get_next_task for the full implementation context of ONE
task. Completing a task automatically promotes backlog dependents whose
dependencies are all done.`

// jsonResult marshals a payload map into a text tool result. Marshal
// failure on these flat map shapes would be a programming error.
func jsonResult(payload map[string]any) *mcp.CallToolResult {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(encoded))
}

// errorResult reports an operation failure as a structured payload, never
// as a protocol-level fault.
func errorResult(err error) *mcp.CallToolResult {
	return jsonResult(map[string]any{"error": err.Error()})
}

// taskPayload is the full-detail wire shape for a single task.
func taskPayload(t *primary.Task) map[string]any {
	return map[string]any{
		"id":                  t.TaskID,
		"project":             t.ProjectPrefix,
		"type":                t.Type,
		"name":                t.Name,
		"status":              t.Status,
		"priority":            t.Priority,
		"description":         t.Description,
		"action":              t.Action,
		"files_exclusive":     t.FilesExclusive,
		"files_readonly":      t.FilesReadonly,
		"files_forbidden":     t.FilesForbidden,
		"verify":              t.Verify,
		"done_criteria":       t.DoneCriteria,
		"depends_on":          t.DependsOn,
		"parent_id":           t.ParentID,
		"execution_strategy":  t.ExecutionStrategy,
		"checkpoint_type":     t.CheckpointType,
		"suggested_model":     t.SuggestedModel,
		"blocker_reason":      t.BlockerReason,
		"blocker_needs":       t.BlockerNeeds,
		"summary":             t.Summary,
		"commits":             t.Commits,
		"resolved_by_episode": t.ResolvedByEpisode,
		"created_at":          t.CreatedAt,
		"updated_at":          t.UpdatedAt,
	}
}

// summaryPayload is the minimal wire shape used by list operations.
func summaryPayload(t *primary.TaskSummary) map[string]any {
	return map[string]any{
		"id":       t.TaskID,
		"name":     t.Name,
		"status":   t.Status,
		"priority": t.Priority,
		"type":     t.Type,
		"project":  t.ProjectPrefix,
	}
}
