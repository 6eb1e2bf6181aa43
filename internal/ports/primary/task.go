package primary

import "context"

// TaskService defines the primary port for task operations.
type TaskService interface {
	// CreateTask creates a new task. Status is decided at birth from the
	// dependency list; creation fails if any dependency does not exist.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*CreateTaskResponse, error)

	// GetTask retrieves the full detail for one task.
	GetTask(ctx context.Context, taskID string) (*Task, error)

	// GetNextTask retrieves the highest-priority, oldest ready task matching
	// the filters, or nil if no ready task exists.
	GetNextTask(ctx context.Context, req NextTaskRequest) (*Task, error)

	// ListTasks lists task summaries only. Full detail requires GetTask.
	ListTasks(ctx context.Context, req ListTasksRequest) ([]*TaskSummary, error)

	// UpdateTaskStatus applies a caller-requested status transition.
	UpdateTaskStatus(ctx context.Context, req UpdateStatusRequest) error

	// CompleteTask marks a task done and unblocks dependents whose
	// dependencies are all satisfied. Returns the unblocked task IDs.
	CompleteTask(ctx context.Context, req CompleteTaskRequest) ([]string, error)

	// DeleteTask removes a task. Dependents retain their depends_on entries.
	DeleteTask(ctx context.Context, taskID string) error
}

// CreateTaskRequest contains parameters for creating a task.
type CreateTaskRequest struct {
	Project           string // project prefix, normalized to uppercase
	Type              string // task, bug, spike, epic - normalized to lowercase
	Name              string
	Action            string // implementation instructions
	Priority          int    // 1=critical .. 4=low; 0 means default (3)
	Description       string
	FilesExclusive    []string
	FilesReadonly     []string
	FilesForbidden    []string
	Verify            []string
	DoneCriteria      []string
	DependsOn         []string
	ParentID          string
	ExecutionStrategy string
	CheckpointType    string
	SuggestedModel    string // haiku, sonnet, opus
}

// CreateTaskResponse contains the result of creating a task.
type CreateTaskResponse struct {
	TaskID         string
	Status         string
	SuggestedModel string
}

// NextTaskRequest contains filters for selecting the next ready task.
type NextTaskRequest struct {
	Project string // Optional project prefix
	Type    string // Optional task type
}

// ListTasksRequest contains filters for listing task summaries.
type ListTasksRequest struct {
	Project string // Optional project prefix
	Status  string // Optional
	Type    string // Optional
	Limit   int    // 0 means default (20)
}

// UpdateStatusRequest contains parameters for a status transition.
type UpdateStatusRequest struct {
	TaskID        string
	Status        string
	BlockerReason string // persisted only when Status is blocked
	BlockerNeeds  string // persisted only when Status is blocked
}

// CompleteTaskRequest contains the completion fields for a task.
type CompleteTaskRequest struct {
	TaskID            string
	Summary           string
	Commits           []string
	ResolvedByEpisode string
}

// TaskSummary is the minimal projection used by list operations. It never
// carries action, file lists, verify, or done criteria: a consumer cannot
// assemble full implementation context for more than one task without an
// explicit full-detail call per task.
type TaskSummary struct {
	TaskID        string
	Name          string
	Status        string
	Priority      int
	Type          string
	ProjectPrefix string
}

// Task is the full-detail projection returned for single-task retrieval.
type Task struct {
	TaskID            string
	ProjectPrefix     string
	Type              string
	Name              string
	Status            string
	Priority          int
	Description       string
	Action            string
	FilesExclusive    []string
	FilesReadonly     []string
	FilesForbidden    []string
	Verify            []string
	DoneCriteria      []string
	DependsOn         []string
	ParentID          string
	ExecutionStrategy string
	CheckpointType    string
	SuggestedModel    string
	BlockerReason     string
	BlockerNeeds      string
	Summary           string
	Commits           []string
	ResolvedByEpisode string
	CreatedAt         string
	UpdatedAt         string
}
