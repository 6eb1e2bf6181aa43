package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/backlog/internal/core/ident"
	coretask "github.com/example/backlog/internal/core/task"
	"github.com/example/backlog/internal/ports/secondary"
)

// createMaxAttempts bounds identifier-allocation retries. Two concurrent
// creations can observe the same maximum suffix; the loser re-derives.
const createMaxAttempts = 3

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskSelectCols = "t.id, t.task_id, t.project_id, p.prefix, t.type, t.name, t.status, t.priority, " +
	"t.description, t.action, t.files_exclusive, t.files_readonly, t.files_forbidden, t.verify, " +
	"t.done_criteria, t.depends_on, t.parent_id, t.execution_strategy, t.checkpoint_type, " +
	"t.suggested_model, t.blocker_reason, t.blocker_needs, t.summary, t.commits, " +
	"t.resolved_by_episode, t.created_at, t.updated_at"

const taskFromClause = " FROM tasks t JOIN projects p ON t.project_id = p.id"

// marshalList encodes a string list as a JSON TEXT column. Empty lists are
// stored as NULL.
func marshalList(list []string) (sql.NullString, error) {
	if len(list) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalList decodes a JSON TEXT column into a string list.
func unmarshalList(col sql.NullString) ([]string, error) {
	if !col.Valid || col.String == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(col.String), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// scanTask scans a task row into a TaskRecord.
func scanTask(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TaskRecord, error) {
	var (
		desc, filesExclusive, filesReadonly, filesForbidden sql.NullString
		verify, doneCriteria, dependsOn, parentID           sql.NullString
		executionStrategy, checkpointType, suggestedModel   sql.NullString
		blockerReason, blockerNeeds, summary, commits       sql.NullString
		resolvedByEpisode, createdAt, updatedAt             sql.NullString
	)

	record := &secondary.TaskRecord{}
	err := scanner.Scan(
		&record.ID, &record.TaskID, &record.ProjectID, &record.ProjectPrefix,
		&record.Type, &record.Name, &record.Status, &record.Priority,
		&desc, &record.Action, &filesExclusive, &filesReadonly, &filesForbidden, &verify,
		&doneCriteria, &dependsOn, &parentID, &executionStrategy, &checkpointType,
		&suggestedModel, &blockerReason, &blockerNeeds, &summary, &commits,
		&resolvedByEpisode, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.ParentID = parentID.String
	record.ExecutionStrategy = executionStrategy.String
	record.CheckpointType = checkpointType.String
	record.SuggestedModel = suggestedModel.String
	record.BlockerReason = blockerReason.String
	record.BlockerNeeds = blockerNeeds.String
	record.Summary = summary.String
	record.ResolvedByEpisode = resolvedByEpisode.String
	record.CreatedAt = createdAt.String
	record.UpdatedAt = updatedAt.String

	for _, col := range []struct {
		src sql.NullString
		dst *[]string
	}{
		{filesExclusive, &record.FilesExclusive},
		{filesReadonly, &record.FilesReadonly},
		{filesForbidden, &record.FilesForbidden},
		{verify, &record.Verify},
		{doneCriteria, &record.DoneCriteria},
		{dependsOn, &record.DependsOn},
		{commits, &record.Commits},
	} {
		list, err := unmarshalList(col.src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode list column: %w", err)
		}
		*col.dst = list
	}

	return record, nil
}

// Create persists a new task. The external ID is re-derived inside the
// insert transaction and retried on a uniqueness collision.
func (r *TaskRepository) Create(ctx context.Context, record *secondary.TaskRecord) error {
	var lastErr error
	for attempt := 0; attempt < createMaxAttempts; attempt++ {
		taskID, err := r.tryCreate(ctx, record)
		if err == nil {
			record.TaskID = taskID
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("task ID allocation for %s/%s exhausted %d attempts: %w",
		record.ProjectPrefix, record.Type, createMaxAttempts, lastErr)
}

func (r *TaskRepository) tryCreate(ctx context.Context, record *secondary.TaskRecord) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var prefix string
	err = tx.QueryRowContext(ctx, "SELECT prefix FROM projects WHERE id = ?", record.ProjectID).Scan(&prefix)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("project %s %w", record.ProjectID, secondary.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve project prefix: %w", err)
	}
	record.ProjectPrefix = prefix

	rows, err := tx.QueryContext(ctx,
		"SELECT task_id FROM tasks WHERE project_id = ? AND type = ?",
		record.ProjectID, record.Type,
	)
	if err != nil {
		return "", fmt.Errorf("failed to scan existing task IDs: %w", err)
	}
	var existing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return "", fmt.Errorf("failed to scan task ID: %w", err)
		}
		existing = append(existing, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("failed to scan existing task IDs: %w", err)
	}

	taskID := ident.FormatTaskID(prefix, record.Type, ident.NextSuffix(existing))

	cols := map[string]sql.NullString{}
	for name, list := range map[string][]string{
		"files_exclusive": record.FilesExclusive,
		"files_readonly":  record.FilesReadonly,
		"files_forbidden": record.FilesForbidden,
		"verify":          record.Verify,
		"done_criteria":   record.DoneCriteria,
		"depends_on":      record.DependsOn,
	} {
		encoded, err := marshalList(list)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", name, err)
		}
		cols[name] = encoded
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tasks (task_id, project_id, type, name, status, priority, description, action,
			files_exclusive, files_readonly, files_forbidden, verify, done_criteria, depends_on,
			parent_id, execution_strategy, checkpoint_type, suggested_model)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		taskID, record.ProjectID, record.Type, record.Name, record.Status, record.Priority,
		nullable(record.Description), record.Action,
		cols["files_exclusive"], cols["files_readonly"], cols["files_forbidden"],
		cols["verify"], cols["done_criteria"], cols["depends_on"],
		nullable(record.ParentID), nullable(record.ExecutionStrategy),
		nullable(record.CheckpointType), nullable(record.SuggestedModel),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", err
		}
		return "", fmt.Errorf("failed to create task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit task creation: %w", err)
	}
	return taskID, nil
}

// nullable converts an empty string to a NULL column value.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// GetByTaskID retrieves a task by its external ID.
func (r *TaskRepository) GetByTaskID(ctx context.Context, taskID string) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskSelectCols+taskFromClause+" WHERE t.task_id = ?",
		taskID,
	)

	record, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s %w", taskID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return record, nil
}

// List retrieves tasks matching the given filters, most urgent and
// oldest first.
func (r *TaskRepository) List(ctx context.Context, filters secondary.TaskFilters) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskSelectCols + taskFromClause + " WHERE 1=1"
	args := []any{}

	if filters.ProjectID != "" {
		query += " AND t.project_id = ?"
		args = append(args, filters.ProjectID)
	}
	if filters.Status != "" {
		query += " AND t.status = ?"
		args = append(args, filters.Status)
	}
	if filters.Type != "" {
		query += " AND t.type = ?"
		args = append(args, filters.Type)
	}

	query += " ORDER BY t.priority ASC, t.created_at ASC, t.id ASC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, record)
	}

	return tasks, rows.Err()
}

// NextReady retrieves the highest-priority, oldest ready task, or nil.
func (r *TaskRepository) NextReady(ctx context.Context, filters secondary.TaskFilters) (*secondary.TaskRecord, error) {
	filters.Status = "ready"
	filters.Limit = 1

	tasks, err := r.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return tasks[0], nil
}

// UpdateStatus updates the status and blocker fields. Blocker fields are
// cleared on any transition away from blocked.
func (r *TaskRepository) UpdateStatus(ctx context.Context, taskID, status, blockerReason, blockerNeeds string) error {
	var reason, needs sql.NullString
	if coretask.KeepsBlockerFields(status) {
		reason = nullable(blockerReason)
		needs = nullable(blockerNeeds)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET status = ?, blocker_reason = ?, blocker_needs = ?, updated_at = CURRENT_TIMESTAMP WHERE task_id = ?",
		status, reason, needs, taskID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("task %s %w", taskID, secondary.ErrNotFound)
	}

	return nil
}

// Complete marks a task done and promotes newly satisfied backlog
// dependents to ready. The completion write and the cascade share one
// transaction so no dependent is observable in a stale backlog state after
// the completion is visible.
func (r *TaskRepository) Complete(ctx context.Context, req secondary.CompleteRequest) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE tasks SET status = 'done', blocker_reason = NULL, blocker_needs = NULL, updated_at = CURRENT_TIMESTAMP"
	args := []any{}

	if req.Summary != "" {
		query += ", summary = ?"
		args = append(args, req.Summary)
	}
	if len(req.Commits) > 0 {
		encoded, err := marshalList(req.Commits)
		if err != nil {
			return nil, fmt.Errorf("failed to encode commits: %w", err)
		}
		query += ", commits = ?"
		args = append(args, encoded)
	}
	if req.ResolvedByEpisode != "" {
		query += ", resolved_by_episode = ?"
		args = append(args, req.ResolvedByEpisode)
	}

	query += " WHERE task_id = ?"
	args = append(args, req.TaskID)

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, fmt.Errorf("task %s %w", req.TaskID, secondary.ErrNotFound)
	}

	candidates, err := backlogDependents(ctx, tx, req.TaskID)
	if err != nil {
		return nil, err
	}

	statusByID, err := dependencyStatusesTx(ctx, tx, dependencyUniverse(candidates))
	if err != nil {
		return nil, err
	}

	unblocked := coretask.ResolveCascade(req.TaskID, candidates, statusByID)
	for _, id := range unblocked {
		if _, err := tx.ExecContext(ctx,
			"UPDATE tasks SET status = 'ready', updated_at = CURRENT_TIMESTAMP WHERE task_id = ? AND status = 'backlog'",
			id,
		); err != nil {
			return nil, fmt.Errorf("failed to promote dependent %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit completion: %w", err)
	}
	return unblocked, nil
}

// backlogDependents finds backlog tasks whose depends_on list names the
// completed task. The LIKE filter narrows the scan; exact membership is
// decided on the decoded list.
func backlogDependents(ctx context.Context, tx *sql.Tx, completedID string) ([]coretask.Dependent, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT task_id, status, depends_on FROM tasks WHERE status = 'backlog' AND depends_on LIKE ?`,
		"%\""+completedID+"\"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan dependents: %w", err)
	}
	defer rows.Close()

	var candidates []coretask.Dependent
	for rows.Next() {
		var taskID, status string
		var dependsOn sql.NullString
		if err := rows.Scan(&taskID, &status, &dependsOn); err != nil {
			return nil, fmt.Errorf("failed to scan dependent: %w", err)
		}
		deps, err := unmarshalList(dependsOn)
		if err != nil {
			return nil, fmt.Errorf("failed to decode depends_on for %s: %w", taskID, err)
		}
		candidates = append(candidates, coretask.Dependent{TaskID: taskID, Status: status, DependsOn: deps})
	}

	return candidates, rows.Err()
}

// dependencyUniverse collects the distinct dependency IDs of all candidates.
func dependencyUniverse(candidates []coretask.Dependent) []string {
	seen := map[string]bool{}
	var ids []string
	for _, c := range candidates {
		for _, dep := range c.DependsOn {
			if !seen[dep] {
				seen[dep] = true
				ids = append(ids, dep)
			}
		}
	}
	return ids
}

func dependencyStatusesTx(ctx context.Context, tx *sql.Tx, taskIDs []string) (map[string]string, error) {
	statuses := make(map[string]string, len(taskIDs))
	if len(taskIDs) == 0 {
		return statuses, nil
	}

	placeholders := strings.Repeat("?,", len(taskIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(taskIDs))
	for i, id := range taskIDs {
		args[i] = id
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT task_id, status FROM tasks WHERE task_id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dependency statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, fmt.Errorf("failed to scan dependency status: %w", err)
		}
		statuses[id] = status
	}

	return statuses, rows.Err()
}

// Delete removes a task from persistence. Dependents keep their depends_on
// entries (dangling references are accepted).
func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE task_id = ?", taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("task %s %w", taskID, secondary.ErrNotFound)
	}

	return nil
}

// DependencyStatuses returns the current status for each given task ID.
// IDs with no row are absent from the result.
func (r *TaskRepository) DependencyStatuses(ctx context.Context, taskIDs []string) (map[string]string, error) {
	statuses := make(map[string]string, len(taskIDs))
	if len(taskIDs) == 0 {
		return statuses, nil
	}

	placeholders := strings.Repeat("?,", len(taskIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(taskIDs))
	for i, id := range taskIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT task_id, status FROM tasks WHERE task_id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get dependency statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, status string
		if err := rows.Scan(&id, &status); err != nil {
			return nil, fmt.Errorf("failed to scan dependency status: %w", err)
		}
		statuses[id] = status
	}

	return statuses, rows.Err()
}

// Summarize computes the backlog dashboard counts, optionally scoped to a project.
func (r *TaskRepository) Summarize(ctx context.Context, projectID string) (*secondary.BacklogSummaryRecord, error) {
	summary := &secondary.BacklogSummaryRecord{
		ByStatus: map[string]int{},
		ByType:   map[string]int{},
	}

	scope := ""
	args := []any{}
	if projectID != "" {
		scope = " WHERE project_id = ?"
		args = append(args, projectID)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM tasks"+scope+" GROUP BY status", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		summary.ByStatus[status] = count
		summary.Total += count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.db.QueryContext(ctx, "SELECT type, COUNT(*) FROM tasks"+scope+" GROUP BY type", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count by type: %w", err)
	}
	for rows.Next() {
		var taskType string
		var count int
		if err := rows.Scan(&taskType, &count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		summary.ByType[taskType] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	inProgress, err := r.List(ctx, secondary.TaskFilters{ProjectID: projectID, Status: "in_progress"})
	if err != nil {
		return nil, err
	}
	summary.InProgress = inProgress

	blocked, err := r.List(ctx, secondary.TaskFilters{ProjectID: projectID, Status: "blocked"})
	if err != nil {
		return nil, err
	}
	summary.Blocked = blocked

	return summary, nil
}

// Ensure TaskRepository implements the interface
var _ secondary.TaskRepository = (*TaskRepository)(nil)
