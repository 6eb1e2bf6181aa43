package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/example/backlog/internal/ports/primary"
)

// backlogSummaryTool returns the dashboard view of the backlog.
type backlogSummaryTool struct {
	summary primary.SummaryService
}

func newBacklogSummaryTool(summary primary.SummaryService) *backlogSummaryTool {
	return &backlogSummaryTool{summary: summary}
}

func (t *backlogSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("get_backlog_summary",
		mcp.WithDescription("Get backlog overview: counts by status/type and active items."),
		mcp.WithString("project",
			mcp.Description("Filter by project prefix"),
		),
	)
}

func (t *backlogSummaryTool) Handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary, err := t.summary.GetBacklogSummary(ctx, request.GetString("project", ""))
	if err != nil {
		return errorResult(err), nil
	}

	inProgress := make([]map[string]any, len(summary.InProgress))
	for i, s := range summary.InProgress {
		inProgress[i] = summaryPayload(s)
	}
	blocked := make([]map[string]any, len(summary.Blocked))
	for i, s := range summary.Blocked {
		blocked[i] = summaryPayload(s)
	}

	return jsonResult(map[string]any{
		"summary": map[string]any{
			"by_status":   summary.ByStatus,
			"by_type":     summary.ByType,
			"in_progress": inProgress,
			"blocked":     blocked,
			"total":       summary.Total,
		},
	}), nil
}
