// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// the persistent store; the concrete store is chosen at wiring time.
package secondary

import "context"

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// Create persists a new project. Returns ErrDuplicate if the prefix is taken.
	Create(ctx context.Context, project *ProjectRecord) error

	// GetByPrefix retrieves a project by its uppercase prefix.
	GetByPrefix(ctx context.Context, prefix string) (*ProjectRecord, error)

	// List retrieves all projects ordered by creation time.
	List(ctx context.Context) ([]*ProjectRecord, error)

	// GetNextID returns the next available project ID.
	GetNextID(ctx context.Context) (string, error)
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID          string
	Name        string
	Prefix      string // unique, uppercase
	Description string // Empty string means null
	CreatedAt   string
}

// TaskRepository defines the secondary port for task persistence.
type TaskRepository interface {
	// Create persists a new task. The adapter allocates the external task ID
	// inside the insert transaction and retries on a uniqueness collision;
	// the assigned ID is written back to record.TaskID.
	Create(ctx context.Context, record *TaskRecord) error

	// GetByTaskID retrieves a task by its external ID.
	GetByTaskID(ctx context.Context, taskID string) (*TaskRecord, error)

	// List retrieves tasks matching the given filters, ordered by priority
	// ascending then creation time ascending.
	List(ctx context.Context, filters TaskFilters) ([]*TaskRecord, error)

	// NextReady retrieves the highest-priority, oldest ready task matching
	// the filters, or nil if none exists.
	NextReady(ctx context.Context, filters TaskFilters) (*TaskRecord, error)

	// UpdateStatus updates the status and blocker fields. Blocker fields are
	// persisted only for a transition to blocked and cleared otherwise.
	UpdateStatus(ctx context.Context, taskID, status, blockerReason, blockerNeeds string) error

	// Complete marks a task done, records the completion fields, and promotes
	// newly satisfied backlog dependents to ready within the same
	// transaction. Returns the task IDs that became ready.
	Complete(ctx context.Context, req CompleteRequest) ([]string, error)

	// Delete removes a task from persistence. Dependents keep their
	// depends_on entries; dangling references are accepted.
	Delete(ctx context.Context, taskID string) error

	// DependencyStatuses returns the current status for each of the given
	// task IDs. IDs with no row are absent from the result.
	DependencyStatuses(ctx context.Context, taskIDs []string) (map[string]string, error)

	// Summarize computes the backlog dashboard counts, optionally scoped to
	// a project.
	Summarize(ctx context.Context, projectID string) (*BacklogSummaryRecord, error)
}

// TaskRecord represents a task as stored in persistence.
type TaskRecord struct {
	ID                int64  // internal row ID
	TaskID            string // external ID, e.g. "DM-TASK-001"
	ProjectID         string
	ProjectPrefix     string // populated on reads via join
	Type              string
	Name              string
	Status            string
	Priority          int
	Description       string // Empty string means null
	Action            string
	FilesExclusive    []string
	FilesReadonly     []string
	FilesForbidden    []string
	Verify            []string
	DoneCriteria      []string
	DependsOn         []string
	ParentID          string // Empty string means null - optional epic back-reference
	ExecutionStrategy string // Empty string means null
	CheckpointType    string // Empty string means null
	SuggestedModel    string // Empty string means null
	BlockerReason     string // Empty string means null - present only while blocked
	BlockerNeeds      string // Empty string means null - present only while blocked
	Summary           string // Empty string means null
	Commits           []string
	ResolvedByEpisode string // Empty string means null
	CreatedAt         string
	UpdatedAt         string
}

// TaskFilters contains filter options for querying tasks.
type TaskFilters struct {
	ProjectID string
	Status    string
	Type      string
	Limit     int
}

// CompleteRequest carries the completion fields for a task.
type CompleteRequest struct {
	TaskID            string
	Summary           string
	Commits           []string
	ResolvedByEpisode string
}

// BacklogSummaryRecord holds the dashboard counts for the backlog.
type BacklogSummaryRecord struct {
	ByStatus   map[string]int
	ByType     map[string]int
	InProgress []*TaskRecord
	Blocked    []*TaskRecord
	Total      int
}
