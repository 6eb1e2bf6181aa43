package app

import (
	"github.com/example/backlog/internal/ports/primary"
	"github.com/example/backlog/internal/ports/secondary"
)

// recordToTask maps a persistence record to the full-detail projection.
func recordToTask(r *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		TaskID:            r.TaskID,
		ProjectPrefix:     r.ProjectPrefix,
		Type:              r.Type,
		Name:              r.Name,
		Status:            r.Status,
		Priority:          r.Priority,
		Description:       r.Description,
		Action:            r.Action,
		FilesExclusive:    r.FilesExclusive,
		FilesReadonly:     r.FilesReadonly,
		FilesForbidden:    r.FilesForbidden,
		Verify:            r.Verify,
		DoneCriteria:      r.DoneCriteria,
		DependsOn:         r.DependsOn,
		ParentID:          r.ParentID,
		ExecutionStrategy: r.ExecutionStrategy,
		CheckpointType:    r.CheckpointType,
		SuggestedModel:    r.SuggestedModel,
		BlockerReason:     r.BlockerReason,
		BlockerNeeds:      r.BlockerNeeds,
		Summary:           r.Summary,
		Commits:           r.Commits,
		ResolvedByEpisode: r.ResolvedByEpisode,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// recordToSummary maps a persistence record to the summary projection.
// Action, file lists, verify, and done criteria are deliberately absent.
func recordToSummary(r *secondary.TaskRecord) *primary.TaskSummary {
	return &primary.TaskSummary{
		TaskID:        r.TaskID,
		Name:          r.Name,
		Status:        r.Status,
		Priority:      r.Priority,
		Type:          r.Type,
		ProjectPrefix: r.ProjectPrefix,
	}
}

// recordToProject maps a persistence record to the port type.
func recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:          r.ID,
		Name:        r.Name,
		Prefix:      r.Prefix,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}
