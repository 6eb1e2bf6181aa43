package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/example/backlog/internal/ports/primary"
	"github.com/example/backlog/internal/ports/secondary"
)

// listTasksNote reminds callers that list results carry no implementation
// context.
const listTasksNote = "Summaries only. Use get_task(id) for full context."

// listTasksTool lists task summaries.
type listTasksTool struct {
	tasks primary.TaskService
}

func newListTasksTool(tasks primary.TaskService) *listTasksTool {
	return &listTasksTool{tasks: tasks}
}

func (t *listTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List task summaries only. Use get_task for the full context of one task."),
		mcp.WithString("project",
			mcp.Description("Filter by project prefix, e.g. \"JC\""),
		),
		mcp.WithString("status",
			mcp.Description("Filter by status (backlog, ready, in_progress, blocked, done)"),
		),
		mcp.WithString("task_type",
			mcp.Description("Filter by type (task, bug, spike, epic)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results (default 20)"),
		),
	)
}

func (t *listTasksTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summaries, err := t.tasks.ListTasks(ctx, primary.ListTasksRequest{
		Project: request.GetString("project", ""),
		Status:  request.GetString("status", ""),
		Type:    request.GetString("task_type", ""),
		Limit:   request.GetInt("limit", 0),
	})
	if err != nil {
		return errorResult(err), nil
	}

	payload := make([]map[string]any, len(summaries))
	for i, s := range summaries {
		payload[i] = summaryPayload(s)
	}

	return jsonResult(map[string]any{
		"tasks": payload,
		"count": len(payload),
		"note":  listTasksNote,
	}), nil
}

// getTaskTool returns the full context for one task.
type getTaskTool struct {
	tasks primary.TaskService
}

func newGetTaskTool(tasks primary.TaskService) *getTaskTool {
	return &getTaskTool{tasks: tasks}
}

func (t *getTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("get_task",
		mcp.WithDescription("Get the full implementation context for ONE task."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID, e.g. \"JC-TASK-001\""),
		),
	)
}

func (t *getTaskTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := t.tasks.GetTask(ctx, taskID)
	if errors.Is(err, secondary.ErrNotFound) {
		return jsonResult(map[string]any{
			"found": false,
			"error": fmt.Sprintf("Task '%s' not found", taskID),
		}), nil
	}
	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"found": true,
		"task":  taskPayload(task),
	}), nil
}

// getNextTaskTool selects the highest-priority ready task.
type getNextTaskTool struct {
	tasks primary.TaskService
}

func newGetNextTaskTool(tasks primary.TaskService) *getNextTaskTool {
	return &getNextTaskTool{tasks: tasks}
}

func (t *getNextTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("get_next_task",
		mcp.WithDescription("Get the highest-priority READY task with full context."),
		mcp.WithString("project",
			mcp.Description("Filter by project prefix"),
		),
		mcp.WithString("task_type",
			mcp.Description("Filter by type (task, bug, spike, epic)"),
		),
	)
}

func (t *getNextTaskTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := t.tasks.GetNextTask(ctx, primary.NextTaskRequest{
		Project: request.GetString("project", ""),
		Type:    request.GetString("task_type", ""),
	})
	if err != nil {
		return errorResult(err), nil
	}
	if task == nil {
		return jsonResult(map[string]any{
			"found":   false,
			"message": "No ready tasks found",
		}), nil
	}

	return jsonResult(map[string]any{
		"found": true,
		"task":  taskPayload(task),
	}), nil
}

// createTaskTool creates a new task in the backlog.
type createTaskTool struct {
	tasks primary.TaskService
}

func newCreateTaskTool(tasks primary.TaskService) *createTaskTool {
	return &createTaskTool{tasks: tasks}
}

func (t *createTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task in the backlog."),
		mcp.WithString("project",
			mcp.Required(),
			mcp.Description("Project prefix, e.g. \"JC\""),
		),
		mcp.WithString("task_type",
			mcp.Required(),
			mcp.Description("Type (task, bug, spike, epic)"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Task name"),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Implementation instructions"),
		),
		mcp.WithNumber("priority",
			mcp.Description("1=critical, 2=high, 3=medium, 4=low (default 3)"),
		),
		mcp.WithString("description",
			mcp.Description("Optional longer description"),
		),
		mcp.WithArray("files_exclusive",
			mcp.Description("Files only this task modifies"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("files_readonly",
			mcp.Description("Files this task can only read"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("files_forbidden",
			mcp.Description("Files this task must not touch"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("verify",
			mcp.Description("Verification commands/checks"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("done_criteria",
			mcp.Description("Completion checklist items"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("depends_on",
			mcp.Description("Task IDs that must complete first"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("parent_id",
			mcp.Description("Parent epic ID"),
		),
		mcp.WithString("execution_strategy",
			mcp.Description("A (auto), B (human-verify), C (decision)"),
		),
		mcp.WithString("checkpoint_type",
			mcp.Description("auto, human-verify, decision"),
		),
		mcp.WithString("suggested_model",
			mcp.Description("haiku, sonnet, opus"),
		),
	)
}

func (t *createTaskTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	taskType, err := request.RequireString("task_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action, err := request.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp, err := t.tasks.CreateTask(ctx, primary.CreateTaskRequest{
		Project:           project,
		Type:              taskType,
		Name:              name,
		Action:            action,
		Priority:          request.GetInt("priority", 0),
		Description:       request.GetString("description", ""),
		FilesExclusive:    request.GetStringSlice("files_exclusive", nil),
		FilesReadonly:     request.GetStringSlice("files_readonly", nil),
		FilesForbidden:    request.GetStringSlice("files_forbidden", nil),
		Verify:            request.GetStringSlice("verify", nil),
		DoneCriteria:      request.GetStringSlice("done_criteria", nil),
		DependsOn:         request.GetStringSlice("depends_on", nil),
		ParentID:          request.GetString("parent_id", ""),
		ExecutionStrategy: request.GetString("execution_strategy", ""),
		CheckpointType:    request.GetString("checkpoint_type", ""),
		SuggestedModel:    request.GetString("suggested_model", ""),
	})
	if err != nil {
		return errorResult(err), nil
	}

	payload := map[string]any{
		"created": true,
		"id":      resp.TaskID,
		"status":  resp.Status,
	}
	if resp.SuggestedModel != "" {
		payload["suggested_model"] = resp.SuggestedModel
	}
	return jsonResult(payload), nil
}

// updateTaskStatusTool applies a status transition.
type updateTaskStatusTool struct {
	tasks primary.TaskService
}

func newUpdateTaskStatusTool(tasks primary.TaskService) *updateTaskStatusTool {
	return &updateTaskStatusTool{tasks: tasks}
}

func (t *updateTaskStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task_status",
		mcp.WithDescription("Update task status."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID to update"),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status (backlog, ready, in_progress, blocked, done)"),
		),
		mcp.WithString("blocker_reason",
			mcp.Description("Reason if setting to blocked"),
		),
		mcp.WithString("blocker_needs",
			mcp.Description("What's needed to unblock"),
		),
	)
}

func (t *updateTaskStatusTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	status, err := request.RequireString("status")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = t.tasks.UpdateTaskStatus(ctx, primary.UpdateStatusRequest{
		TaskID:        taskID,
		Status:        status,
		BlockerReason: request.GetString("blocker_reason", ""),
		BlockerNeeds:  request.GetString("blocker_needs", ""),
	})
	if err != nil {
		return jsonResult(map[string]any{
			"updated": false,
			"error":   err.Error(),
		}), nil
	}

	return jsonResult(map[string]any{
		"updated": true,
		"id":      taskID,
		"status":  status,
	}), nil
}

// completeTaskTool marks a task done and reports unblocked dependents.
type completeTaskTool struct {
	tasks primary.TaskService
}

func newCompleteTaskTool(tasks primary.TaskService) *completeTaskTool {
	return &completeTaskTool{tasks: tasks}
}

func (t *completeTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription("Mark task as done and unblock dependent tasks."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID to complete"),
		),
		mcp.WithString("summary",
			mcp.Description("Brief summary of what was done"),
		),
		mcp.WithArray("commits",
			mcp.Description("List of commit hashes/messages"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("resolved_by_episode",
			mcp.Description("Episode or session that resolved the task"),
		),
	)
}

func (t *completeTaskTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolvedBy := request.GetString("resolved_by_episode", "")
	unblocked, err := t.tasks.CompleteTask(ctx, primary.CompleteTaskRequest{
		TaskID:            taskID,
		Summary:           request.GetString("summary", ""),
		Commits:           request.GetStringSlice("commits", nil),
		ResolvedByEpisode: resolvedBy,
	})
	if err != nil {
		return jsonResult(map[string]any{
			"completed": false,
			"error":     err.Error(),
		}), nil
	}

	if unblocked == nil {
		unblocked = []string{}
	}
	payload := map[string]any{
		"completed": true,
		"id":        taskID,
		"unblocked": unblocked,
	}
	if resolvedBy != "" {
		payload["resolved_by_episode"] = resolvedBy
	}
	return jsonResult(payload), nil
}

// deleteTaskTool removes a task from the backlog.
type deleteTaskTool struct {
	tasks primary.TaskService
}

func newDeleteTaskTool(tasks primary.TaskService) *deleteTaskTool {
	return &deleteTaskTool{tasks: tasks}
}

func (t *deleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task from the backlog."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID to delete"),
		),
	)
}

func (t *deleteTaskTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := t.tasks.DeleteTask(ctx, taskID); err != nil {
		return jsonResult(map[string]any{
			"deleted": false,
			"error":   err.Error(),
		}), nil
	}

	return jsonResult(map[string]any{
		"deleted": true,
		"id":      taskID,
	}), nil
}
