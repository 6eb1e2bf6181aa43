package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/backlog/internal/ports/primary"
	"github.com/example/backlog/internal/ports/secondary"
)

// SummaryServiceImpl implements the SummaryService interface.
type SummaryServiceImpl struct {
	taskRepo    secondary.TaskRepository
	projectRepo secondary.ProjectRepository
}

// NewSummaryService creates a new SummaryService with injected dependencies.
func NewSummaryService(
	taskRepo secondary.TaskRepository,
	projectRepo secondary.ProjectRepository,
) *SummaryServiceImpl {
	return &SummaryServiceImpl{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// GetBacklogSummary returns counts by status and type plus the in-progress
// and blocked task lists, optionally scoped to a project prefix. The task
// lists are summary projections only.
func (s *SummaryServiceImpl) GetBacklogSummary(ctx context.Context, project string) (*primary.BacklogSummary, error) {
	projectID := ""
	if project != "" {
		record, err := s.projectRepo.GetByPrefix(ctx, strings.ToUpper(strings.TrimSpace(project)))
		if err != nil {
			return nil, err
		}
		projectID = record.ID
	}

	record, err := s.taskRepo.Summarize(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize backlog: %w", err)
	}

	summary := &primary.BacklogSummary{
		ByStatus: record.ByStatus,
		ByType:   record.ByType,
		Total:    record.Total,
	}
	for _, r := range record.InProgress {
		summary.InProgress = append(summary.InProgress, recordToSummary(r))
	}
	for _, r := range record.Blocked {
		summary.Blocked = append(summary.Blocked, recordToSummary(r))
	}
	return summary, nil
}

// Ensure SummaryServiceImpl implements the interface
var _ primary.SummaryService = (*SummaryServiceImpl)(nil)
