package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/backlog/internal/config"
	coretask "github.com/example/backlog/internal/core/task"
	"github.com/example/backlog/internal/ports/primary"
	"github.com/example/backlog/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo     secondary.TaskRepository
	projectRepo  secondary.ProjectRepository
	defaultLimit int
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(
	taskRepo secondary.TaskRepository,
	projectRepo secondary.ProjectRepository,
	defaultLimit int,
) *TaskServiceImpl {
	if defaultLimit <= 0 {
		defaultLimit = config.DefaultListLimit
	}
	return &TaskServiceImpl{
		taskRepo:     taskRepo,
		projectRepo:  projectRepo,
		defaultLimit: defaultLimit,
	}
}

// CreateTask creates a new task. The initial status is decided at birth:
// ready when the dependency list is empty or every dependency is done,
// backlog otherwise. Creation fails if any dependency does not exist.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.CreateTaskResponse, error) {
	taskType := strings.ToLower(strings.TrimSpace(req.Type))
	if result := coretask.ValidType(taskType); !result.Allowed {
		return nil, result.Error()
	}
	if result := coretask.ValidModel(req.SuggestedModel); !result.Allowed {
		return nil, result.Error()
	}

	priority := req.Priority
	if priority == 0 {
		priority = 3
	}
	if result := coretask.ValidPriority(priority); !result.Allowed {
		return nil, result.Error()
	}

	if req.Name == "" {
		return nil, fmt.Errorf("task name is required")
	}
	if req.Action == "" {
		return nil, fmt.Errorf("task action is required")
	}

	project, err := s.projectRepo.GetByPrefix(ctx, strings.ToUpper(strings.TrimSpace(req.Project)))
	if err != nil {
		return nil, err
	}

	// All dependencies must exist before the task can reference them.
	var depStatuses []string
	if len(req.DependsOn) > 0 {
		statuses, err := s.taskRepo.DependencyStatuses(ctx, req.DependsOn)
		if err != nil {
			return nil, fmt.Errorf("failed to validate dependencies: %w", err)
		}
		for _, dep := range req.DependsOn {
			status, ok := statuses[dep]
			if !ok {
				return nil, fmt.Errorf("dependency %s %w", dep, secondary.ErrNotFound)
			}
			depStatuses = append(depStatuses, status)
		}
	}

	record := &secondary.TaskRecord{
		ProjectID:         project.ID,
		ProjectPrefix:     project.Prefix,
		Type:              taskType,
		Name:              req.Name,
		Status:            coretask.InitialStatus(depStatuses),
		Priority:          priority,
		Description:       req.Description,
		Action:            req.Action,
		FilesExclusive:    req.FilesExclusive,
		FilesReadonly:     req.FilesReadonly,
		FilesForbidden:    req.FilesForbidden,
		Verify:            req.Verify,
		DoneCriteria:      req.DoneCriteria,
		DependsOn:         req.DependsOn,
		ParentID:          req.ParentID,
		ExecutionStrategy: req.ExecutionStrategy,
		CheckpointType:    req.CheckpointType,
		SuggestedModel:    req.SuggestedModel,
	}

	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &primary.CreateTaskResponse{
		TaskID:         record.TaskID,
		Status:         record.Status,
		SuggestedModel: record.SuggestedModel,
	}, nil
}

// GetTask retrieves the full detail for one task.
func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID string) (*primary.Task, error) {
	record, err := s.taskRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return recordToTask(record), nil
}

// GetNextTask retrieves the highest-priority, oldest ready task matching
// the filters, or nil if no ready task exists.
func (s *TaskServiceImpl) GetNextTask(ctx context.Context, req primary.NextTaskRequest) (*primary.Task, error) {
	filters, err := s.resolveFilters(ctx, req.Project, "", req.Type)
	if err != nil {
		return nil, err
	}

	record, err := s.taskRepo.NextReady(ctx, filters)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return recordToTask(record), nil
}

// ListTasks lists task summaries only; full detail requires GetTask per task.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, req primary.ListTasksRequest) ([]*primary.TaskSummary, error) {
	filters, err := s.resolveFilters(ctx, req.Project, req.Status, req.Type)
	if err != nil {
		return nil, err
	}

	filters.Limit = req.Limit
	if filters.Limit <= 0 {
		filters.Limit = s.defaultLimit
	}

	records, err := s.taskRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	summaries := make([]*primary.TaskSummary, len(records))
	for i, r := range records {
		summaries[i] = recordToSummary(r)
	}
	return summaries, nil
}

// UpdateTaskStatus applies a caller-requested status transition. Any of the
// five valid names is accepted verbatim; blocker fields persist only while
// blocked and are cleared on any transition away from it.
func (s *TaskServiceImpl) UpdateTaskStatus(ctx context.Context, req primary.UpdateStatusRequest) error {
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if result := coretask.ValidStatus(status); !result.Allowed {
		return result.Error()
	}

	return s.taskRepo.UpdateStatus(ctx, req.TaskID, status, req.BlockerReason, req.BlockerNeeds)
}

// CompleteTask marks a task done, records the completion fields, and runs
// the dependency cascade. Completing an already-done task re-applies the
// fields and re-runs the cascade, which is safe because promotion is
// idempotent.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, req primary.CompleteTaskRequest) ([]string, error) {
	return s.taskRepo.Complete(ctx, secondary.CompleteRequest{
		TaskID:            req.TaskID,
		Summary:           req.Summary,
		Commits:           req.Commits,
		ResolvedByEpisode: req.ResolvedByEpisode,
	})
}

// DeleteTask removes a task. Dependents retain their depends_on entries;
// a dangling reference can never be satisfied afterward.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID string) error {
	return s.taskRepo.Delete(ctx, taskID)
}

// resolveFilters validates the optional project prefix and task type and
// maps them to repository filters.
func (s *TaskServiceImpl) resolveFilters(ctx context.Context, project, status, taskType string) (secondary.TaskFilters, error) {
	filters := secondary.TaskFilters{}

	if project != "" {
		record, err := s.projectRepo.GetByPrefix(ctx, strings.ToUpper(strings.TrimSpace(project)))
		if err != nil {
			return filters, err
		}
		filters.ProjectID = record.ID
	}

	if status != "" {
		status = strings.ToLower(strings.TrimSpace(status))
		if result := coretask.ValidStatus(status); !result.Allowed {
			return filters, result.Error()
		}
		filters.Status = status
	}

	if taskType != "" {
		taskType = strings.ToLower(strings.TrimSpace(taskType))
		if result := coretask.ValidType(taskType); !result.Allowed {
			return filters, result.Error()
		}
		filters.Type = taskType
	}

	return filters, nil
}

// Ensure TaskServiceImpl implements the interface
var _ primary.TaskService = (*TaskServiceImpl)(nil)
