package mcp

import (
	"testing"

	"github.com/example/backlog/internal/ports/primary"
)

func TestTaskPayloadCarriesEveryField(t *testing.T) {
	task := &primary.Task{
		TaskID:            "DM-TASK-001",
		ProjectPrefix:     "DM",
		Type:              "task",
		Name:              "Full detail",
		Status:            "done",
		Priority:          2,
		Description:       "desc",
		Action:            "act",
		FilesExclusive:    []string{"a.go"},
		Verify:            []string{"check"},
		DependsOn:         []string{"DM-TASK-000"},
		ParentID:          "DM-EPIC-001",
		ExecutionStrategy: "A",
		CheckpointType:    "auto",
		SuggestedModel:    "sonnet",
		BlockerReason:     "was stuck",
		BlockerNeeds:      "help",
		Summary:           "did it",
		Commits:           []string{"abc123"},
		ResolvedByEpisode: "ep-42",
		CreatedAt:         "2026-01-01 00:00:00",
		UpdatedAt:         "2026-01-02 00:00:00",
	}

	payload := taskPayload(task)

	// The full-detail projection carries every persisted field.
	for _, key := range []string{
		"id", "project", "type", "name", "status", "priority",
		"description", "action", "files_exclusive", "files_readonly",
		"files_forbidden", "verify", "done_criteria", "depends_on",
		"parent_id", "execution_strategy", "checkpoint_type",
		"suggested_model", "blocker_reason", "blocker_needs",
		"summary", "commits", "resolved_by_episode",
		"created_at", "updated_at",
	} {
		if _, ok := payload[key]; !ok {
			t.Errorf("full-detail payload missing %q", key)
		}
	}

	if payload["resolved_by_episode"] != "ep-42" {
		t.Errorf("expected resolved_by_episode ep-42, got %v", payload["resolved_by_episode"])
	}
	if payload["execution_strategy"] != "A" || payload["checkpoint_type"] != "auto" {
		t.Errorf("expected execution fields carried, got %v / %v",
			payload["execution_strategy"], payload["checkpoint_type"])
	}
}

func TestSummaryPayloadIsMinimal(t *testing.T) {
	payload := summaryPayload(&primary.TaskSummary{
		TaskID:        "DM-TASK-001",
		Name:          "Summary only",
		Status:        "ready",
		Priority:      3,
		Type:          "task",
		ProjectPrefix: "DM",
	})

	if len(payload) != 6 {
		t.Errorf("expected 6 summary fields, got %d: %v", len(payload), payload)
	}
	for _, key := range []string{"action", "verify", "files_exclusive", "done_criteria"} {
		if _, ok := payload[key]; ok {
			t.Errorf("summary payload must not carry %q", key)
		}
	}
}
