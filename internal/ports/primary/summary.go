package primary

import "context"

// SummaryService defines the primary port for the backlog dashboard view.
type SummaryService interface {
	// GetBacklogSummary returns counts by status and type plus the active
	// and blocked task lists, optionally scoped to a project.
	GetBacklogSummary(ctx context.Context, project string) (*BacklogSummary, error)
}

// BacklogSummary is the dashboard projection of the backlog.
type BacklogSummary struct {
	ByStatus   map[string]int
	ByType     map[string]int
	InProgress []*TaskSummary
	Blocked    []*TaskSummary
	Total      int
}
